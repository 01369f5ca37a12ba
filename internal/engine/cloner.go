package engine

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"

	"db-clone/internal/dialect"
)

// LargeTableThreshold is the row count above which a table earns an advisory
// warning suggesting it be added to the ignore configuration.
const LargeTableThreshold = 1_000_000

// Row is one source row at snapshot time: an ordered mapping from column name
// to driver-native value. Each row carries its own column list and its insert
// statement is built from that list, not from a cached schema.
type Row struct {
	Columns []string
	Values  []interface{}
}

// Cloner copies single tables end to end: schema first, then rows.
type Cloner struct {
	Source  *sql.DB
	Target  *sql.DB
	Dialect dialect.Dialect
}

func NewCloner(source, target *sql.DB, d dialect.Dialect) *Cloner {
	return &Cloner{Source: source, Target: target, Dialect: d}
}

// CloneTable clones one table and returns its outcome. A failure at any stage
// short-circuits the remaining stages and is folded into the outcome; it never
// propagates as an error to the caller. Rows already written before a row
// failure are left in place, there is no per-table transaction.
func (c *Cloner) CloneTable(table string) Outcome {
	err := c.cloneTable(context.Background(), table)
	return Outcome{Table: table, Err: err}
}

func (c *Cloner) cloneTable(ctx context.Context, table string) error {
	src, err := c.Source.Conn(ctx)
	if err != nil {
		return &StageError{Stage: StageConnect, Table: table, Err: err}
	}
	defer src.Close()

	tgt, err := c.Target.Conn(ctx)
	if err != nil {
		return &StageError{Stage: StageConnect, Table: table, Err: err}
	}
	defer tgt.Close()

	ddl, err := c.Dialect.CreateTableSQL(ctx, src, table)
	if err != nil {
		return &StageError{Stage: StageSchemaRead, Table: table, Err: err}
	}

	log.Debugf("Dropping table %s", table)
	if _, err := tgt.ExecContext(ctx, c.Dialect.DropTableSQL(table)); err != nil {
		return &StageError{Stage: StageSchemaWrite, Table: table, Err: err}
	}

	log.Debugf("Creating table %s", table)
	if _, err := tgt.ExecContext(ctx, ddl); err != nil {
		return &StageError{Stage: StageSchemaWrite, Table: table, Err: err}
	}

	rows, err := c.fetchRows(ctx, src, table)
	if err != nil {
		return &StageError{Stage: StageRowRead, Table: table, Err: err}
	}

	if len(rows) == 0 {
		log.Debugf("Table %s is empty, nothing to insert", table)
		return nil
	}

	if len(rows) > LargeTableThreshold {
		log.Warnf("Table %s has more than %d rows, consider adding it to IGNORE_TABLES", table, LargeTableThreshold)
	}

	log.Debugf("Inserting into table %s with %d rows", table, len(rows))
	written, err := c.writeRows(ctx, tgt, table, rows)
	if err != nil {
		return &StageError{Stage: StageRowWrite, Table: table,
			Err: fmt.Errorf("after %d of %d rows: %w", written, len(rows), err)}
	}
	log.Debugf("Inserted into table %s with %d rows", table, written)
	return nil
}

// fetchRows materializes the whole table in one statement. No cursor is held
// open past the read.
func (c *Cloner) fetchRows(ctx context.Context, src *sql.Conn, table string) ([]Row, error) {
	result, err := src.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", c.Dialect.QuoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer result.Close()

	cols, err := result.Columns()
	if err != nil {
		return nil, err
	}

	var rows []Row
	for result.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := result.Scan(ptrs...); err != nil {
			return nil, err
		}
		rows = append(rows, Row{Columns: cols, Values: values})
	}
	return rows, result.Err()
}

// writeRows issues one parameterized insert per row, sequentially, stopping at
// the first rejected row. Each statement is built from the row's own column
// set, so heterogeneous rows still round-trip.
func (c *Cloner) writeRows(ctx context.Context, tgt *sql.Conn, table string, rows []Row) (int, error) {
	for i, row := range rows {
		insert := c.Dialect.InsertQuery(table, row.Columns)
		if _, err := tgt.ExecContext(ctx, insert, row.Values...); err != nil {
			return i, err
		}
	}
	return len(rows), nil
}
