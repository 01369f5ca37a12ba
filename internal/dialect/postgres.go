package dialect

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// nextvalRe matches sequence-backed column defaults. Like MySQL's
// AUTO_INCREMENT counter, the bound sequence is live state on the source and
// must not be carried into the replayed statement.
var nextvalRe = regexp.MustCompile(`\s+DEFAULT nextval\('[^']*'(::regclass)?\)`)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string {
	return "postgres"
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) ListTables(ctx context.Context, q Querier) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'`)
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

func (d *PostgresDialect) CurrentSchema(ctx context.Context, q Querier) (string, error) {
	var schema string
	if err := q.QueryRowContext(ctx, "SELECT current_schema()").Scan(&schema); err != nil {
		return "", fmt.Errorf("failed to get current schema: %w", err)
	}
	return schema, nil
}

// CreateTableSQL assembles a CREATE TABLE statement from the catalog, since
// Postgres has no SHOW CREATE TABLE. Sequence-backed integer columns come out
// as serial pseudotypes so the target creates its own sequence instead of
// referencing the source's.
func (d *PostgresDialect) CreateTableSQL(ctx context.Context, q Querier, table string) (string, error) {
	colRows, err := q.QueryContext(ctx, `SELECT a.attname, format_type(a.atttypid, a.atttypmod), a.attnotnull, COALESCE(pg_get_expr(ad.adbin, ad.adrelid), '') FROM pg_attribute a LEFT JOIN pg_attrdef ad ON ad.adrelid = a.attrelid AND ad.adnum = a.attnum WHERE a.attrelid = $1::regclass AND a.attnum > 0 AND NOT a.attisdropped ORDER BY a.attnum`, d.QuoteIdent(table))
	if err != nil {
		return "", fmt.Errorf("failed to read columns for %s: %w", table, err)
	}
	defer colRows.Close()

	var colDefs []string
	for colRows.Next() {
		var name, dataType, defaultVal string
		var notNull bool
		if err := colRows.Scan(&name, &dataType, &notNull, &defaultVal); err != nil {
			return "", fmt.Errorf("failed to scan column for %s: %w", table, err)
		}

		def := d.QuoteIdent(name) + " "
		if strings.Contains(defaultVal, "nextval(") {
			def += serialType(dataType)
			defaultVal = ""
		} else {
			def += dataType
		}
		if defaultVal != "" {
			def += " DEFAULT " + defaultVal
		}
		if notNull {
			def += " NOT NULL"
		}
		colDefs = append(colDefs, def)
	}
	if err := colRows.Err(); err != nil {
		return "", fmt.Errorf("error iterating columns for %s: %w", table, err)
	}
	if len(colDefs) == 0 {
		return "", fmt.Errorf("table %s has no columns", table)
	}

	pkRows, err := q.QueryContext(ctx, `SELECT a.attname FROM pg_index i JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey) WHERE i.indrelid = $1::regclass AND i.indisprimary ORDER BY a.attnum`, d.QuoteIdent(table))
	if err != nil {
		return "", fmt.Errorf("failed to read primary key for %s: %w", table, err)
	}
	defer pkRows.Close()

	var pkCols []string
	for pkRows.Next() {
		var name string
		if err := pkRows.Scan(&name); err != nil {
			return "", fmt.Errorf("failed to scan primary key for %s: %w", table, err)
		}
		pkCols = append(pkCols, d.QuoteIdent(name))
	}
	if err := pkRows.Err(); err != nil {
		return "", fmt.Errorf("error iterating primary key for %s: %w", table, err)
	}
	if len(pkCols) > 0 {
		colDefs = append(colDefs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pkCols, ", ")))
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", d.QuoteIdent(table), strings.Join(colDefs, ", "))
	return d.NormalizeDDL(ddl), nil
}

func serialType(dataType string) string {
	switch dataType {
	case "bigint":
		return "bigserial"
	case "smallint":
		return "smallserial"
	default:
		return "serial"
	}
}

func (d *PostgresDialect) NormalizeDDL(ddl string) string {
	return nextvalRe.ReplaceAllString(ddl, "")
}

func (d *PostgresDialect) DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", d.QuoteIdent(table))
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", d.QuoteIdent(table), strings.Join(quoted, ", "), vals)
}

func (d *PostgresDialect) ColumnsQuery() string {
	return `SELECT
    c.table_name,
    c.column_name,
    c.data_type,
    c.character_maximum_length,
    c.is_nullable,
    (SELECT 'PRI' FROM information_schema.table_constraints tc
     JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name
     WHERE tc.constraint_type = 'PRIMARY KEY'
     AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name LIMIT 1) AS column_key,
    c.column_default,
    (SELECT 'UNIQUE' FROM information_schema.table_constraints tc
     JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name
     WHERE tc.constraint_type = 'UNIQUE'
     AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name LIMIT 1) AS is_unique
FROM information_schema.columns c
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`
}

func (d *PostgresDialect) ForeignKeysQuery() string {
	return `SELECT kcu.table_name, kcu.constraint_name, kcu.column_name, ccu.table_name AS referenced_table_name, ccu.column_name AS referenced_column_name FROM information_schema.key_column_usage kcu JOIN information_schema.constraint_column_usage ccu ON kcu.constraint_name = ccu.constraint_name JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name WHERE kcu.table_schema = $1 AND tc.constraint_type = 'FOREIGN KEY'`
}
