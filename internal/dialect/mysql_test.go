package dialect

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMysqlNormalizeDDL(t *testing.T) {
	d := &MysqlDialect{}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips auto increment counter",
			in:   "CREATE TABLE `t` (\n  `id` int NOT NULL AUTO_INCREMENT,\n  PRIMARY KEY (`id`)\n) ENGINE=InnoDB AUTO_INCREMENT=482 DEFAULT CHARSET=utf8mb4",
			want: "CREATE TABLE `t` (\n  `id` int NOT NULL AUTO_INCREMENT,\n  PRIMARY KEY (`id`)\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		},
		{
			name: "no counter is a no-op",
			in:   "CREATE TABLE `t` (`name` varchar(50)) ENGINE=InnoDB",
			want: "CREATE TABLE `t` (`name` varchar(50)) ENGINE=InnoDB",
		},
		{
			name: "strips every occurrence",
			in:   "AUTO_INCREMENT=1 x AUTO_INCREMENT=99999 y",
			want: "x y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.NormalizeDDL(tt.in))
		})
	}
}

func TestMysqlQuoteIdent(t *testing.T) {
	d := &MysqlDialect{}
	assert.Equal(t, "`users`", d.QuoteIdent("users"))
	assert.Equal(t, "`we``ird`", d.QuoteIdent("we`ird"))
}

func TestMysqlInsertQuery(t *testing.T) {
	d := &MysqlDialect{}
	got := d.InsertQuery("users", []string{"id", "name"})
	assert.Equal(t, "INSERT INTO `users` (`id`, `name`) VALUES (?, ?)", got)
}

func TestMysqlDropTableSQL(t *testing.T) {
	d := &MysqlDialect{}
	assert.Equal(t, "DROP TABLE IF EXISTS `users`", d.DropTableSQL("users"))
}

func TestMysqlCreateTableSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	raw := "CREATE TABLE `users` (`id` int NOT NULL AUTO_INCREMENT) ENGINE=InnoDB AUTO_INCREMENT=17 DEFAULT CHARSET=utf8mb4"
	mock.ExpectQuery("SHOW CREATE TABLE `users`").
		WillReturnRows(sqlmock.NewRows([]string{"Table", "Create Table"}).AddRow("users", raw))

	d := &MysqlDialect{}
	ddl, err := d.CreateTableSQL(context.Background(), db, "users")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `users` (`id` int NOT NULL AUTO_INCREMENT) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4", ddl)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMysqlCreateTableSQLMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SHOW CREATE TABLE `gone`").
		WillReturnError(assert.AnError)

	d := &MysqlDialect{}
	_, err = d.CreateTableSQL(context.Background(), db, "gone")
	assert.Error(t, err)
}

func TestMysqlListTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SHOW TABLES").
		WillReturnRows(sqlmock.NewRows([]string{"Tables_in_app"}).AddRow("users").AddRow("orders"))

	d := &MysqlDialect{}
	tables, err := d.ListTables(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "orders"}, tables)
}
