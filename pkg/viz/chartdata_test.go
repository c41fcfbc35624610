package viz

import (
	"reflect"
	"strings"
	"testing"

	"ai-reportgen-be/pkg/markdown"
)

func TestChartDataPie(t *testing.T) {
	tbl := &markdown.ExtractedTable{
		Headers: []string{"Category", "Count"},
		Rows: []map[string]any{
			{"Category": "A", "Count": int64(10)},
			{"Category": "B", "Count": int64(5)},
		},
	}
	tg := NewToggle(tbl)
	if err := tg.SetView("pie"); err != nil {
		t.Fatal(err)
	}
	want := [][]any{{"Label", "Value"}, {"A", 10.0}, {"B", 5.0}}
	if got := tg.ChartData(); !reflect.DeepEqual(got, want) {
		t.Errorf("ChartData() = %v, want %v", got, want)
	}
}

func TestChartDataPieUsesFirstValueColumnOnly(t *testing.T) {
	tg := NewToggle(salesTable(0))
	tg.SetView("pie")
	got := tg.ChartData()
	if len(got) != 3 {
		t.Fatalf("row count = %d, want 3", len(got))
	}
	if len(got[1]) != 2 {
		t.Errorf("pie rows should carry a single value, got %v", got[1])
	}
	if got[1][1] != 10.0 {
		t.Errorf("pie should use Q1, got %v", got[1][1])
	}
}

func TestChartDataMultiSeries(t *testing.T) {
	tg := NewToggle(salesTable(0))
	tg.SetView("line")
	want := [][]any{
		{"Region", "Q1", "Q2"},
		{"North", 10.0, 20.0},
		{"South", 5.0, 8.0},
	}
	if got := tg.ChartData(); !reflect.DeepEqual(got, want) {
		t.Errorf("ChartData() = %v, want %v", got, want)
	}
}

func TestChartDataCoercesNonNumericToZero(t *testing.T) {
	tbl := &markdown.ExtractedTable{
		Headers: []string{"Item", "Score"},
		Rows: []map[string]any{
			{"Item": "x", "Score": "n/a"},
			{"Item": "y", "Score": float64(1.5)},
			{"Item": "z"},
		},
	}
	tg := NewToggle(tbl)
	tg.SetView("column")
	got := tg.ChartData()
	if got[1][1] != 0.0 {
		t.Errorf("non-numeric cell = %v, want 0", got[1][1])
	}
	if got[2][1] != 1.5 {
		t.Errorf("float cell = %v, want 1.5", got[2][1])
	}
	if got[3][1] != 0.0 {
		t.Errorf("missing cell = %v, want 0", got[3][1])
	}
}

func TestChartDataScatter(t *testing.T) {
	tg := NewToggle(salesTable(0))
	tg.SetView("scatter")
	want := [][]any{
		{"Q1", "Q2"},
		{10.0, 20.0},
		{5.0, 8.0},
	}
	if got := tg.ChartData(); !reflect.DeepEqual(got, want) {
		t.Errorf("ChartData() = %v, want %v", got, want)
	}
}

func TestChartDataScatterPlaceholderPoint(t *testing.T) {
	tbl := &markdown.ExtractedTable{
		Headers: []string{"Category", "Count"},
		Rows:    []map[string]any{{"Category": "A", "Count": int64(10)}},
	}
	tg := NewToggle(tbl)
	tg.SetView("scatter")
	want := [][]any{{"X", "Y"}, {0.0, 0.0}}
	if got := tg.ChartData(); !reflect.DeepEqual(got, want) {
		t.Errorf("ChartData() = %v, want %v", got, want)
	}
}

func TestChartDataSingleColumnPlaceholder(t *testing.T) {
	tbl := &markdown.ExtractedTable{
		Headers: []string{"Only"},
		Rows:    []map[string]any{{"Only": "a"}},
	}
	tg := NewToggle(tbl)
	tg.SetView("pie")
	want := [][]any{{"Label", "Value"}, {"No data", 0.0}}
	if got := tg.ChartData(); !reflect.DeepEqual(got, want) {
		t.Errorf("ChartData() = %v, want %v", got, want)
	}
}

func TestDefaultOptionsPerKind(t *testing.T) {
	cases := []struct {
		kind ChartKind
		key  string
		want any
	}{
		{KindPie, "legendPosition", "right"},
		{KindDonut, "legendPosition", "right"},
		{KindScatter, "legendPosition", "none"},
		{KindLine, "legendPosition", "top"},
		{KindLine, "axisMin", 0.0},
		{KindBar, "axisMin", 0.0},
		{KindDonut, "pieHole", 0.4},
		{KindColumn, "slantedTextAngle", 45.0},
	}
	for _, c := range cases {
		opts := DefaultOptions(c.kind)
		if got := opts[c.key]; got != c.want {
			t.Errorf("DefaultOptions(%s)[%s] = %v, want %v", c.kind, c.key, got, c.want)
		}
	}
	if _, ok := DefaultOptions(KindBar)["slantedTextAngle"]; ok {
		t.Error("bar charts should not slant axis labels")
	}
	if _, ok := DefaultOptions(KindPie)["axisMin"]; ok {
		t.Error("pie charts have no value axis to clamp")
	}
}

func TestOptionsAnnotationWinsOverDefaults(t *testing.T) {
	tbl := salesTable(0)
	tbl.ChartOptions = map[string]any{"legendPosition": "none", "palette": "warm"}
	tg := NewToggle(tbl)
	tg.SetView("line")
	opts := tg.Options()
	if opts["legendPosition"] != "none" {
		t.Errorf("legendPosition = %v, want annotation value none", opts["legendPosition"])
	}
	if opts["palette"] != "warm" {
		t.Errorf("unknown annotation keys should pass through, got %v", opts["palette"])
	}
	if opts["axisMin"] != 0.0 {
		t.Errorf("untouched defaults should survive the merge, axisMin = %v", opts["axisMin"])
	}
}

func TestCaptureImage(t *testing.T) {
	tg := NewToggle(salesTable(0))

	// Table mode mounts no chart.
	uri, err := tg.CaptureImage()
	if err != nil || uri != "" {
		t.Fatalf("table mode capture = (%q, %v), want empty and nil", uri, err)
	}

	for _, view := range []string{"pie", "column", "line", "scatter"} {
		if err := tg.SetView(view); err != nil {
			t.Fatal(err)
		}
		uri, err := tg.CaptureImage()
		if err != nil {
			t.Fatalf("%s capture: %v", view, err)
		}
		if !strings.HasPrefix(uri, "data:image/png;base64,") {
			t.Errorf("%s capture should produce a PNG data URI, got %.40q", view, uri)
		}
	}
}

func TestCaptureImageZeroSlicesFails(t *testing.T) {
	tbl := &markdown.ExtractedTable{
		Headers: []string{"Category", "Count"},
		Rows:    []map[string]any{{"Category": "A", "Count": int64(0)}},
	}
	tg := NewToggle(tbl)
	tg.SetView("pie")
	if _, err := tg.CaptureImage(); err == nil {
		t.Error("all-zero pie should fail capture so the exporter falls back to the table")
	}
}
