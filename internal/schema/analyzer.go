package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"db-clone/internal/dialect"
)

// Analyze introspects the current schema and returns its tables with columns
// and foreign keys, sorted so that referenced tables come before referencing
// ones. The seed command relies on that order to satisfy FK constraints.
func Analyze(db *sql.DB, d dialect.Dialect) ([]*Table, error) {
	ctx := context.Background()

	schemaName, err := d.CurrentSchema(ctx, db)
	if err != nil {
		return nil, err
	}

	names, err := d.ListTables(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}

	tableMap := make(map[string]*Table)
	var tables []*Table
	for _, name := range names {
		t := &Table{Name: name, Dependencies: []string{}}
		tableMap[strings.ToUpper(name)] = t
		tables = append(tables, t)
	}

	colRows, err := db.QueryContext(ctx, d.ColumnsQuery(), schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var tName, cName, dType, isNull, cKey, extra, isUnique sql.NullString
		var cLen sql.NullString

		if err := colRows.Scan(&tName, &cName, &dType, &cLen, &isNull, &cKey, &extra, &isUnique); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue
		}

		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}

		isAutoInc := false
		if extra.Valid {
			extraLower := strings.ToLower(extra.String)
			isAutoInc = strings.Contains(extraLower, "auto_increment") ||
				strings.Contains(extraLower, "nextval")
		}

		col := &Column{
			Name:       cName.String,
			DataType:   strings.ToLower(dType.String),
			IsNullable: isNull.String == "YES",
			IsPK:       strings.Contains(cKey.String, "PRI"),
			IsAutoInc:  isAutoInc,
			IsUnique:   isUnique.Valid && strings.Contains(isUnique.String, "UNIQUE"),
		}
		if cLen.Valid && cLen.String != "" {
			var length int
			if _, err := fmt.Sscanf(cLen.String, "%d", &length); err == nil {
				col.Length = length
			}
		}
		t.Columns = append(t.Columns, col)
	}
	if err := colRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	fkRows, err := db.QueryContext(ctx, d.ForeignKeysQuery(), schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer fkRows.Close()

	for fkRows.Next() {
		var tName, cConst, cName, rTable, rCol sql.NullString
		if err := fkRows.Scan(&tName, &cConst, &cName, &rTable, &rCol); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if !tName.Valid || !rTable.Valid || tName.String == rTable.String {
			continue
		}

		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}
		ref, ok := tableMap[strings.ToUpper(rTable.String)]
		if !ok {
			continue // external reference, nothing to seed against
		}
		t.Dependencies = append(t.Dependencies, ref.Name)
		t.ForeignKeys = append(t.ForeignKeys, &ForeignKey{
			Column:    cName.String,
			RefTable:  ref.Name,
			RefColumn: rCol.String,
		})
	}
	if err := fkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys: %w", err)
	}

	return SortByDependency(tables), nil
}

// SortByDependency orders tables so dependencies come first. Cycles are broken
// by taking the remaining table with the fewest unmet dependencies, name as
// tie-breaker for determinism.
func SortByDependency(tables []*Table) []*Table {
	var sorted []*Table
	processed := make(map[string]bool)

	for len(sorted) < len(tables) {
		added := false

		for _, t := range tables {
			if processed[t.Name] {
				continue
			}
			satisfied := true
			for _, dep := range t.Dependencies {
				if !processed[dep] {
					satisfied = false
					break
				}
			}
			if satisfied {
				sorted = append(sorted, t)
				processed[t.Name] = true
				added = true
			}
		}

		if !added {
			var best *Table
			bestUnmet := 0
			for _, t := range tables {
				if processed[t.Name] {
					continue
				}
				unmet := 0
				for _, dep := range t.Dependencies {
					if !processed[dep] {
						unmet++
					}
				}
				if best == nil || unmet < bestUnmet || (unmet == bestUnmet && t.Name < best.Name) {
					best = t
					bestUnmet = unmet
				}
			}
			if best == nil {
				break
			}
			sorted = append(sorted, best)
			processed[best.Name] = true
		}
	}

	return sorted
}
