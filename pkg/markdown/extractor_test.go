package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractBasicTable(t *testing.T) {
	input := "| Category | Count |\n|---|---|\n| A | 10 |\n| B | 5 |\n"

	tables := Extract(input)
	if len(tables) != 1 {
		t.Fatalf("table count = %d, want 1", len(tables))
	}

	tbl := tables[0]
	if !reflect.DeepEqual(tbl.Headers, []string{"Category", "Count"}) {
		t.Errorf("Headers = %v, want [Category Count]", tbl.Headers)
	}

	wantRows := []map[string]any{
		{"Category": "A", "Count": int64(10)},
		{"Category": "B", "Count": int64(5)},
	}
	if !reflect.DeepEqual(tbl.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", tbl.Rows, wantRows)
	}
}

func TestExtractTableCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "no tables",
			input: "# Heading\n\nJust a paragraph.\n",
			want:  0,
		},
		{
			name:  "two tables in order",
			input: "intro\n\n| A | B |\n|-|-|\n| 1 | 2 |\n\nmiddle\n\n| C | D |\n|-|-|\n| 3 | 4 |\n",
			want:  2,
		},
		{
			name:  "single pipe line is not a table",
			input: "text\n| lonely |\nmore text\n",
			want:  0,
		},
		{
			name:  "header plus separator only is a valid empty table",
			input: "| A | B |\n|---|---|\n",
			want:  1,
		},
		{
			name:  "duplicate headers reject the table",
			input: "| A | A |\n|-|-|\n| 1 | 2 |\n",
			want:  0,
		},
		{
			name:  "empty header cell rejects the table",
			input: "| A |  | C |\n|-|-|-|\n| 1 | 2 | 3 |\n",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if len(got) != tt.want {
				t.Errorf("table count = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestExtractTableOrderAndFigures(t *testing.T) {
	input := "| A | B |\n|-|-|\n| 1 | 2 |\n\n| C | D |\n|-|-|\n\n| E | F |\n|-|-|\n| 5 | 6 |\n"

	tables := Extract(input)
	if len(tables) != 3 {
		t.Fatalf("table count = %d, want 3", len(tables))
	}
	for i, tbl := range tables {
		if tbl.Index != i {
			t.Errorf("tables[%d].Index = %d, want %d", i, tbl.Index, i)
		}
		if tbl.FigureNumber() != i+1 {
			t.Errorf("tables[%d].FigureNumber() = %d, want %d", i, tbl.FigureNumber(), i+1)
		}
	}
	if tables[0].Headers[0] != "A" || tables[1].Headers[0] != "C" || tables[2].Headers[0] != "E" {
		t.Errorf("tables not in document order: %v %v %v", tables[0].Headers, tables[1].Headers, tables[2].Headers)
	}
}

func TestExtractDropsShortRows(t *testing.T) {
	input := "| A | B | C |\n|-|-|-|\n| 1 | 2 | 3 |\n| only | two |\n| 4 | 5 | 6 |\n\n| X | Y |\n|-|-|\n| 7 | 8 |\n"

	tables := Extract(input)
	if len(tables) != 2 {
		t.Fatalf("table count = %d, want 2 (short row must not break later tables)", len(tables))
	}
	if len(tables[0].Rows) != 2 {
		t.Errorf("first table row count = %d, want 2 (short row dropped)", len(tables[0].Rows))
	}
	for _, row := range tables[0].Rows {
		if len(row) != len(tables[0].Headers) {
			t.Errorf("row value count = %d, want %d", len(row), len(tables[0].Headers))
		}
	}
	if len(tables[1].Rows) != 1 {
		t.Errorf("second table row count = %d, want 1", len(tables[1].Rows))
	}
}

func TestExtractChartOptions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "valid annotation",
			input: "<!-- chart-options {\"kind\":\"pie\",\"title\":\"Split\"} -->\n| A | B |\n|-|-|\n| 1 | 2 |\n",
			want:  map[string]any{"kind": "pie", "title": "Split"},
		},
		{
			name:  "invalid json ignored",
			input: "<!-- chart-options {kind: pie} -->\n| A | B |\n|-|-|\n| 1 | 2 |\n",
			want:  nil,
		},
		{
			name:  "no annotation",
			input: "some text\n\n| A | B |\n|-|-|\n| 1 | 2 |\n",
			want:  nil,
		},
		{
			name:  "annotation separated by blank line",
			input: "<!-- chart-options {\"kind\":\"bar\"} -->\n\n| A | B |\n|-|-|\n| 1 | 2 |\n",
			want:  map[string]any{"kind": "bar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := Extract(tt.input)
			if len(tables) != 1 {
				t.Fatalf("table count = %d, want 1", len(tables))
			}
			if !reflect.DeepEqual(tables[0].ChartOptions, tt.want) {
				t.Errorf("ChartOptions = %v, want %v", tables[0].ChartOptions, tt.want)
			}
		})
	}
}

func TestExtractToleratesToggleCaption(t *testing.T) {
	input := "<!-- Toggle: Switch to Chart [Count] -->\n| Category | Count |\n|---|---|\n| A | 10 |\n"

	tables := Extract(input)
	if len(tables) != 1 {
		t.Fatalf("table count = %d, want 1", len(tables))
	}
	if tables[0].ChartOptions != nil {
		t.Errorf("ChartOptions = %v, want nil (toggle caption is not chart-options)", tables[0].ChartOptions)
	}
}

func TestExtractDeterminism(t *testing.T) {
	input := "intro\n<!-- chart-options {\"kind\":\"line\"} -->\n| A | B |\n|-|-|\n| 1 | x |\n| 2.5 | y |\n"

	first := Extract(input)
	second := Extract(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Extract is not deterministic: %v vs %v", first, second)
	}
}

func TestCoerceCell(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"10", int64(10)},
		{"-3", int64(-3)},
		{"2.5", 2.5},
		{"10x", "10x"},
		{"hello", "hello"},
		{"", ""},
		{"1e3", 1000.0},
	}
	for _, tt := range tests {
		if got := coerceCell(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("coerceCell(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestSplitRow(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"| A | B |", []string{"A", "B"}},
		{"|A|B|", []string{"A", "B"}},
		{"| A | B", []string{"A", "B"}},
		{"|  | B |", []string{"", "B"}},
	}
	for _, tt := range tests {
		if got := splitRow(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitRow(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTableRun(t *testing.T) {
	headers, rows, ok := ParseTableRun([]string{
		"| City | Count |",
		"|------|-------|",
		"| Oslo | 12 |",
		"| Oslo | 12 | extra |",
		"| Bergen | 7 |",
	})
	if !ok {
		t.Fatal("ParseTableRun rejected a valid run")
	}
	if !reflect.DeepEqual(headers, []string{"City", "Count"}) {
		t.Errorf("headers = %v", headers)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2 (short/long rows dropped)", len(rows))
	}
	if !reflect.DeepEqual(rows[1], []string{"Bergen", "7"}) {
		t.Errorf("rows[1] = %v", rows[1])
	}

	for _, run := range [][]string{
		{"| A | B |"},                        // no separator row
		{"| A | A |", "|-|-|", "| 1 | 2 |"},  // duplicate header
		{"| A |  |", "|-|-|", "| 1 | 2 |"},   // empty header
	} {
		if _, _, ok := ParseTableRun(run); ok {
			t.Errorf("ParseTableRun(%v) accepted an invalid run", run)
		}
	}
}

func TestTableHTMLEscapes(t *testing.T) {
	input := "| Name | Note |\n|-|-|\n| <b>bold</b> | ok |\n"

	tables := Extract(input)
	if len(tables) != 1 {
		t.Fatalf("table count = %d, want 1", len(tables))
	}
	if strings.Contains(tables[0].HTML, "<b>") {
		t.Errorf("table HTML contains unescaped markup: %s", tables[0].HTML)
	}
	if !strings.Contains(tables[0].HTML, "&lt;b&gt;") {
		t.Errorf("table HTML missing escaped cell content: %s", tables[0].HTML)
	}
}
