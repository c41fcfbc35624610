package utils

import (
	"strings"
	"testing"
)

func TestFormatRecordsAsTable(t *testing.T) {
	headers := []string{"Region", "Sales"}
	records := []map[string]any{
		{"Region": "North", "Sales": int64(120)},
		{"Region": "South", "Sales": 99.5},
	}

	got := FormatRecordsAsTable(headers, records)
	want := "| Region | Sales |\n| --- | --- |\n| North | 120 |\n| South | 99.5 |"
	if got != want {
		t.Fatalf("table mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatRecordsAsTableMissingAndNilValues(t *testing.T) {
	headers := []string{"A", "B"}
	records := []map[string]any{
		{"A": "x"},
		{"A": "y", "B": nil},
	}

	got := FormatRecordsAsTable(headers, records)
	if strings.Contains(got, "<nil>") {
		t.Fatalf("nil leaked into table: %s", got)
	}
	if !strings.Contains(got, "| x |  |") {
		t.Fatalf("missing value should render as empty cell: %s", got)
	}
}

func TestFormatRecordsAsTableEscapesPipes(t *testing.T) {
	headers := []string{"Note"}
	records := []map[string]any{{"Note": "a|b"}}

	got := FormatRecordsAsTable(headers, records)
	if strings.Contains(got, "| a|b |") {
		t.Fatalf("pipe in cell must not split the row: %s", got)
	}
	if !strings.Contains(got, "a/b") {
		t.Fatalf("pipe should be replaced, got %s", got)
	}
}

func TestFormatRecordsAsTableClipsLongCells(t *testing.T) {
	headers := []string{"Text"}
	records := []map[string]any{{"Text": strings.Repeat("x", 200)}}

	got := FormatRecordsAsTable(headers, records)
	if !strings.Contains(got, "...") {
		t.Fatalf("long cell should be clipped: %s", got)
	}
	if strings.Contains(got, strings.Repeat("x", 100)) {
		t.Fatalf("cell not clipped: %s", got)
	}
}

func TestFormatRecordsAsTableEmptyHeaders(t *testing.T) {
	if got := FormatRecordsAsTable(nil, nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
