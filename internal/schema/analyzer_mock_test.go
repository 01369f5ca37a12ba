package schema_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-clone/internal/dialect"
	"db-clone/internal/schema"
)

func TestAnalyzeMySQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT DATABASE").
		WillReturnRows(sqlmock.NewRows([]string{"database()"}).AddRow("app"))
	mock.ExpectQuery("SHOW TABLES").
		WillReturnRows(sqlmock.NewRows([]string{"Tables_in_app"}).AddRow("users").AddRow("orders"))

	colCols := []string{"TABLE_NAME", "COLUMN_NAME", "DATA_TYPE", "CHARACTER_MAXIMUM_LENGTH", "IS_NULLABLE", "COLUMN_KEY", "EXTRA", "IS_UNIQUE"}
	mock.ExpectQuery("SELECT TABLE_NAME, COLUMN_NAME").
		WithArgs("app").
		WillReturnRows(sqlmock.NewRows(colCols).
			AddRow("users", "id", "int", nil, "NO", "PRI", "auto_increment", nil).
			AddRow("users", "email", "varchar", "120", "NO", "UNI", "", "UNIQUE").
			AddRow("orders", "id", "int", nil, "NO", "PRI", "auto_increment", nil).
			AddRow("orders", "user_id", "int", nil, "NO", "MUL", "", nil))

	fkCols := []string{"TABLE_NAME", "CONSTRAINT_NAME", "COLUMN_NAME", "REFERENCED_TABLE_NAME", "REFERENCED_COLUMN_NAME"}
	mock.ExpectQuery("SELECT TABLE_NAME, CONSTRAINT_NAME").
		WithArgs("app").
		WillReturnRows(sqlmock.NewRows(fkCols).
			AddRow("orders", "fk_orders_users", "user_id", "users", "id"))

	tables, err := schema.Analyze(db, &dialect.MysqlDialect{})
	require.NoError(t, err)
	require.Len(t, tables, 2)

	// Dependency order: users before orders.
	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, "orders", tables[1].Name)

	users := tables[0]
	require.Len(t, users.Columns, 2)
	assert.True(t, users.Columns[0].IsPK)
	assert.True(t, users.Columns[0].IsAutoInc)
	assert.True(t, users.Columns[1].IsUnique)
	assert.Equal(t, 120, users.Columns[1].Length)

	orders := tables[1]
	require.Len(t, orders.ForeignKeys, 1)
	assert.Equal(t, "user_id", orders.ForeignKeys[0].Column)
	assert.Equal(t, "users", orders.ForeignKeys[0].RefTable)
}
