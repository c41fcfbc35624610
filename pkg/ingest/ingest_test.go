package ingest

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	in := strings.NewReader("Region,Count,Share\nNorth,10,0.5\nSouth,5,n/a\n\nWest,2\n")
	ds, err := ParseCSV(in)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if !reflect.DeepEqual(ds.Headers, []string{"Region", "Count", "Share"}) {
		t.Errorf("headers = %v", ds.Headers)
	}
	if len(ds.Records) != 3 {
		t.Fatalf("records = %d, want 3 (empty line skipped)", len(ds.Records))
	}
	if ds.Records[0]["Count"] != int64(10) {
		t.Errorf("Count = %#v, want int64(10)", ds.Records[0]["Count"])
	}
	if ds.Records[0]["Share"] != 0.5 {
		t.Errorf("Share = %#v, want 0.5", ds.Records[0]["Share"])
	}
	if ds.Records[1]["Share"] != "n/a" {
		t.Errorf("non-numeric cell = %#v, want string", ds.Records[1]["Share"])
	}
	// The short row is padded with empty cells.
	if ds.Records[2]["Share"] != "" {
		t.Errorf("missing cell = %#v, want empty string", ds.Records[2]["Share"])
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"Category", "Count"},
		{"A", 10},
		{"B", 5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	ds, err := ParseXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseXLSX: %v", err)
	}
	if !reflect.DeepEqual(ds.Headers, []string{"Category", "Count"}) {
		t.Errorf("headers = %v", ds.Headers)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(ds.Records))
	}
	if ds.Records[0]["Category"] != "A" || ds.Records[0]["Count"] != int64(10) {
		t.Errorf("first record = %v", ds.Records[0])
	}
}

func TestParseDispatchesOnExtension(t *testing.T) {
	if _, err := Parse("data.csv", strings.NewReader("A,B\n1,2\n")); err != nil {
		t.Errorf("csv upload: %v", err)
	}
	if _, err := Parse("data.txt", strings.NewReader("whatever")); err == nil {
		t.Error("unsupported extension should be rejected")
	}
}

func TestParseEmptyUpload(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Error("empty upload should be rejected")
	}
}

func TestNormalizeHeaders(t *testing.T) {
	got := normalizeHeaders([]string{" Region ", "", "Count", "Count"})
	want := []string{"Region", "Column 2", "Count", "Count 2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeHeaders = %v, want %v", got, want)
	}
}

func TestTruncate(t *testing.T) {
	ds := &Dataset{
		Headers: []string{"A"},
		Records: []map[string]any{{"A": int64(1)}, {"A": int64(2)}, {"A": int64(3)}},
	}
	if got := ds.Truncate(2); len(got.Records) != 2 {
		t.Errorf("Truncate(2) kept %d records", len(got.Records))
	}
	if got := ds.Truncate(10); len(got.Records) != 3 {
		t.Errorf("Truncate beyond length should keep everything, got %d", len(got.Records))
	}
}
