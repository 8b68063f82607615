package ui

import (
	"strings"
	"testing"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Listings", "ID", "Crop", "Price")
	table.AddRow("L001", "Tomato (Roma)", "₹45/kg")

	view := table.View(DefaultStyles())
	t.Logf("View:\n%q", view)

	for _, want := range []string{"Listings", "Crop", "L001", "Tomato (Roma)", "₹45/kg"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestSimpleTable_Empty(t *testing.T) {
	view := NewSimpleTable("Pools", "ID").View(DefaultStyles())
	if !strings.Contains(view, "No results.") {
		t.Errorf("empty table should say so, got %q", view)
	}
}

func TestSimpleTable_RowsArePadded(t *testing.T) {
	table := NewSimpleTable("", "A", "B", "C")
	table.AddRow("only")
	table.AddRow("1", "2", "3", "dropped")

	if len(table.Rows[0]) != 3 || len(table.Rows[1]) != 3 {
		t.Fatalf("rows should match header count: %v", table.Rows)
	}
	if strings.Contains(table.View(DefaultStyles()), "dropped") {
		t.Error("extra cells should be truncated")
	}
}
