package dialect

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql handles the dialect needs.
// Both *sql.DB and *sql.Conn satisfy it, so dialect operations run the
// same way on a pooled handle or on a single checked-out connection.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Dialect abstracts database-specific operations. Source and target are
// always the same dialect; cross-engine translation is out of scope.
type Dialect interface {
	Name() string
	QuoteIdent(name string) string
	Placeholder(index int) string // Returns ?, $1, etc.

	// Schema capture and replay
	ListTables(ctx context.Context, q Querier) ([]string, error)
	CurrentSchema(ctx context.Context, q Querier) (string, error)
	CreateTableSQL(ctx context.Context, q Querier, table string) (string, error)
	NormalizeDDL(ddl string) string
	DropTableSQL(table string) string

	// Query Generation
	InsertQuery(table string, cols []string) string

	// Metadata Queries (column/FK introspection for the seeder)
	ColumnsQuery() string
	ForeignKeysQuery() string
}
