package schema_test

import (
	"testing"

	"db-clone/internal/schema"
)

func TestSortByDependency_Simple(t *testing.T) {
	// Users -> Orders -> OrderItems
	tables := []*schema.Table{
		{Name: "OrderItems", Dependencies: []string{"Orders"}},
		{Name: "Orders", Dependencies: []string{"Users"}},
		{Name: "Users", Dependencies: []string{}},
	}

	sorted := schema.SortByDependency(tables)

	if sorted[0].Name != "Users" {
		t.Errorf("Expected Users first, got %s", sorted[0].Name)
	}
	if sorted[1].Name != "Orders" {
		t.Errorf("Expected Orders second, got %s", sorted[1].Name)
	}
	if sorted[2].Name != "OrderItems" {
		t.Errorf("Expected OrderItems third, got %s", sorted[2].Name)
	}
}

func TestSortByDependency_Circular(t *testing.T) {
	// A -> B -> C -> A (cycle), D -> C, E independent
	tables := []*schema.Table{
		{Name: "A", Dependencies: []string{"B"}},
		{Name: "B", Dependencies: []string{"C"}},
		{Name: "C", Dependencies: []string{"A"}},
		{Name: "D", Dependencies: []string{"C"}},
		{Name: "E", Dependencies: []string{}},
	}

	sorted := schema.SortByDependency(tables)

	if len(sorted) != len(tables) {
		t.Fatalf("Expected %d tables, got %d", len(tables), len(sorted))
	}

	visited := make(map[string]bool)
	for _, tbl := range sorted {
		visited[tbl.Name] = true
	}
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		if !visited[name] {
			t.Errorf("Table %s missing from sorted list", name)
		}
	}

	// The independent table must come out before the cycle is broken.
	if sorted[0].Name != "E" {
		t.Errorf("Expected independent table E first, got %s", sorted[0].Name)
	}
}
