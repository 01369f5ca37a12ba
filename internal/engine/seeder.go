package engine

import (
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"

	"db-clone/internal/dialect"
	"db-clone/internal/schema"
)

// SeedResult reports how one table fared during seeding.
type SeedResult struct {
	Table     string
	Requested int
	Inserted  int
	Err       error
}

// Seed fills every table with generated rows, in dependency order so foreign
// keys can point at already-seeded parents. Rows that violate a constraint are
// retried with fresh values, up to 10x the requested count per table.
func Seed(db *sql.DB, d dialect.Dialect, tables []*schema.Table, count int, onRow func()) []SeedResult {
	fkPool := make(map[string][]interface{})
	results := make([]SeedResult, 0, len(tables))

	for _, table := range tables {
		results = append(results, seedTable(db, d, table, count, fkPool, onRow))
		refreshFKPool(db, d, table, fkPool)
	}
	return results
}

func seedTable(db *sql.DB, d dialect.Dialect, table *schema.Table, count int, fkPool map[string][]interface{}, onRow func()) SeedResult {
	res := SeedResult{Table: table.Name, Requested: count}

	var insertCols []*schema.Column
	var colNames []string
	for _, c := range table.Columns {
		if !c.IsAutoInc {
			insertCols = append(insertCols, c)
			colNames = append(colNames, c.Name)
		}
	}
	if len(insertCols) == 0 {
		res.Err = fmt.Errorf("table %s has no insertable columns", table.Name)
		return res
	}

	query := d.InsertQuery(table.Name, colNames)
	inserted := 0
	attempts := 0

	for inserted < count && attempts < count*10 {
		attempts++
		values := generateRow(table, insertCols, fkPool, attempts)
		if values == nil {
			break // FK pool is empty and the column is not nullable
		}
		if _, err := db.Exec(query, values...); err != nil {
			if attempts <= 3 {
				log.Debugf("Table %s attempt %d: %v", table.Name, attempts, err)
			}
			continue
		}
		inserted++
		if onRow != nil {
			onRow()
		}
	}

	res.Inserted = inserted
	if inserted < count {
		res.Err = fmt.Errorf("inserted %d of %d rows", inserted, count)
	}
	return res
}

func generateRow(table *schema.Table, cols []*schema.Column, fkPool map[string][]interface{}, attempt int) []interface{} {
	values := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		val, ok := valueFor(col, table, fkPool, attempt)
		if !ok {
			return nil
		}
		values = append(values, val)
	}
	return values
}

func valueFor(col *schema.Column, t *schema.Table, fkPool map[string][]interface{}, attempt int) (interface{}, bool) {
	for _, fk := range t.ForeignKeys {
		if fk.Column != col.Name {
			continue
		}
		if vals, ok := fkPool[fk.RefTable]; ok && len(vals) > 0 {
			return vals[attempt%len(vals)], true
		}
		if col.IsNullable {
			return nil, true
		}
		return nil, false
	}
	return GenerateValue(col), true
}

// refreshFKPool collects the table's primary key values so child tables seeded
// afterwards can reference them.
func refreshFKPool(db *sql.DB, d dialect.Dialect, table *schema.Table, fkPool map[string][]interface{}) {
	var pk string
	for _, c := range table.Columns {
		if c.IsPK {
			pk = c.Name
			break
		}
	}
	if pk == "" {
		return
	}

	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %s", d.QuoteIdent(pk), d.QuoteIdent(table.Name)))
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var id interface{}
		if err := rows.Scan(&id); err == nil {
			fkPool[table.Name] = append(fkPool[table.Name], id)
		}
	}
}
