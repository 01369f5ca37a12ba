package dialect

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// autoIncRe matches the AUTO_INCREMENT counter MySQL embeds in SHOW CREATE
// TABLE output. The counter reflects insert history, not structure, so it is
// stripped before the statement is replayed on the target.
var autoIncRe = regexp.MustCompile(`AUTO_INCREMENT=\d+\s`)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string {
	return "mysql"
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) ListTables(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (d *MysqlDialect) CurrentSchema(ctx context.Context, q Querier) (string, error) {
	var schema string
	if err := q.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&schema); err != nil {
		return "", fmt.Errorf("failed to get database name: %w", err)
	}
	if schema == "" {
		return "", fmt.Errorf("no database selected in DSN")
	}
	return schema, nil
}

// CreateTableSQL returns the normalized SHOW CREATE TABLE statement.
func (d *MysqlDialect) CreateTableSQL(ctx context.Context, q Querier, table string) (string, error) {
	var name, ddl string
	row := q.QueryRowContext(ctx, fmt.Sprintf("SHOW CREATE TABLE %s", d.QuoteIdent(table)))
	if err := row.Scan(&name, &ddl); err != nil {
		return "", fmt.Errorf("failed to read schema for %s: %w", table, err)
	}
	return d.NormalizeDDL(ddl), nil
}

func (d *MysqlDialect) NormalizeDDL(ddl string) string {
	return autoIncRe.ReplaceAllString(ddl, "")
}

func (d *MysqlDialect) DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.QuoteIdent(table))
}

func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", d.QuoteIdent(table), strings.Join(quoted, ", "), vals)
}

func (d *MysqlDialect) ColumnsQuery() string {
	return `SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, CHARACTER_MAXIMUM_LENGTH, IS_NULLABLE, COLUMN_KEY, EXTRA, IF(COLUMN_KEY='UNI', 'UNIQUE', NULL) AS IS_UNIQUE FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

func (d *MysqlDialect) ForeignKeysQuery() string {
	return `SELECT TABLE_NAME, CONSTRAINT_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME FROM information_schema.KEY_COLUMN_USAGE WHERE TABLE_SCHEMA = ? AND REFERENCED_TABLE_NAME IS NOT NULL`
}
