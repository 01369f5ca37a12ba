package dialect

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresPlaceholder(t *testing.T) {
	d := &PostgresDialect{}
	assert.Equal(t, "$1", d.Placeholder(0))
	assert.Equal(t, "$3", d.Placeholder(2))
}

func TestPostgresInsertQuery(t *testing.T) {
	d := &PostgresDialect{}
	got := d.InsertQuery("users", []string{"id", "name"})
	assert.Equal(t, `INSERT INTO "users" ("id", "name") VALUES ($1, $2)`, got)
}

func TestPostgresDropTableSQL(t *testing.T) {
	d := &PostgresDialect{}
	assert.Equal(t, `DROP TABLE IF EXISTS "users" CASCADE`, d.DropTableSQL("users"))
}

func TestPostgresNormalizeDDL(t *testing.T) {
	d := &PostgresDialect{}
	in := `CREATE TABLE "t" ("id" integer DEFAULT nextval('t_id_seq'::regclass) NOT NULL)`
	want := `CREATE TABLE "t" ("id" integer NOT NULL)`
	assert.Equal(t, want, d.NormalizeDDL(in))
}

func TestPostgresCreateTableSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT a\.attname, format_type`).
		WithArgs(`"users"`).
		WillReturnRows(sqlmock.NewRows([]string{"attname", "format_type", "attnotnull", "default"}).
			AddRow("id", "integer", true, "nextval('users_id_seq'::regclass)").
			AddRow("name", "character varying(50)", false, "").
			AddRow("created_at", "timestamp without time zone", true, "now()"))

	mock.ExpectQuery(`SELECT a\.attname FROM pg_index`).
		WithArgs(`"users"`).
		WillReturnRows(sqlmock.NewRows([]string{"attname"}).AddRow("id"))

	d := &PostgresDialect{}
	ddl, err := d.CreateTableSQL(context.Background(), db, "users")
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "users" ("id" serial NOT NULL, "name" character varying(50), "created_at" timestamp without time zone DEFAULT now() NOT NULL, PRIMARY KEY ("id"))`, ddl)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateTableSQLNoColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT a\.attname, format_type`).
		WithArgs(`"empty"`).
		WillReturnRows(sqlmock.NewRows([]string{"attname", "format_type", "attnotnull", "default"}))

	d := &PostgresDialect{}
	_, err = d.CreateTableSQL(context.Background(), db, "empty")
	assert.Error(t, err)
}

func TestSerialType(t *testing.T) {
	assert.Equal(t, "serial", serialType("integer"))
	assert.Equal(t, "bigserial", serialType("bigint"))
	assert.Equal(t, "smallserial", serialType("smallint"))
}
