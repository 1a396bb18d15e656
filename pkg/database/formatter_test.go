package database

import (
	"testing"

	"fensql/pkg/parser/statements"
	"fensql/pkg/row"
)

func TestResultFormatter_FormatSelect(t *testing.T) {
	f := NewResultFormatter()
	records := []row.Row{
		row.New(1, "fendross", "foo@bar.com"),
		row.New(4294967295, "", ""),
	}

	result := f.FormatSelect(records)

	if !result.Success {
		t.Fatal("expected success")
	}
	if result.Type != statements.Select {
		t.Errorf("expected select, got %v", result.Type)
	}
	if len(result.Columns) != 3 || result.Columns[0] != "id" {
		t.Errorf("unexpected columns %v", result.Columns)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if got := result.Rows[1][0]; got != "4294967295" {
		t.Errorf("expected id 4294967295, got %s", got)
	}
	if result.Message != ExecutedMessage {
		t.Errorf("expected %q, got %q", ExecutedMessage, result.Message)
	}
}

func TestResultFormatter_FormatSelectEmpty(t *testing.T) {
	result := NewResultFormatter().FormatSelect(nil)

	if !result.Success {
		t.Fatal("expected success")
	}
	if result.Rows == nil || len(result.Rows) != 0 {
		t.Errorf("expected empty non-nil rows, got %v", result.Rows)
	}
}

func TestResultFormatter_FormatDML(t *testing.T) {
	result := NewResultFormatter().FormatDML(1)

	if result.RowsAffected != 1 {
		t.Errorf("expected 1 row affected, got %d", result.RowsAffected)
	}
	if result.Type != statements.Insert {
		t.Errorf("expected insert, got %v", result.Type)
	}
}
