package viz

import (
	"reflect"
	"testing"

	"ai-reportgen-be/pkg/markdown"
)

func salesTable(index int) *markdown.ExtractedTable {
	return &markdown.ExtractedTable{
		Index:   index,
		Headers: []string{"Region", "Q1", "Q2"},
		Rows: []map[string]any{
			{"Region": "North", "Q1": int64(10), "Q2": int64(20)},
			{"Region": "South", "Q1": int64(5), "Q2": int64(8)},
		},
	}
}

func TestNewToggleDefaults(t *testing.T) {
	tg := NewToggle(salesTable(0))
	if tg.View() != ViewTable {
		t.Errorf("View() = %q, want %q", tg.View(), ViewTable)
	}
	if tg.LabelColumn() != "Region" {
		t.Errorf("LabelColumn() = %q, want Region", tg.LabelColumn())
	}
	if got := tg.ValueColumns(); !reflect.DeepEqual(got, []string{"Q1", "Q2"}) {
		t.Errorf("ValueColumns() = %v, want [Q1 Q2]", got)
	}
	if tg.InChartMode() {
		t.Error("new toggle should start in table mode")
	}
}

func TestToggleViewTransitions(t *testing.T) {
	tg := NewToggle(salesTable(0))
	if err := tg.SetView("pie"); err != nil {
		t.Fatalf("SetView(pie): %v", err)
	}
	if !tg.InChartMode() || tg.Kind() != KindPie {
		t.Errorf("after SetView(pie): view=%q", tg.View())
	}
	if err := tg.SetView("line"); err != nil {
		t.Fatalf("SetView(line): %v", err)
	}
	if err := tg.SetView(ViewTable); err != nil {
		t.Fatalf("SetView(table): %v", err)
	}
	if tg.InChartMode() {
		t.Error("expected table mode after switching back")
	}
	if err := tg.SetView("sparkline"); err == nil {
		t.Error("SetView(sparkline) should fail")
	}
}

func TestAnnotatedKindStartsInChartView(t *testing.T) {
	tbl := salesTable(0)
	tbl.ChartOptions = map[string]any{"kind": "donut"}
	if got := NewToggle(tbl).View(); got != "donut" {
		t.Errorf("annotated kind: View() = %q, want donut", got)
	}

	tbl.ChartOptions = map[string]any{"kind": "holo"}
	if got := NewToggle(tbl).View(); got != ViewTable {
		t.Errorf("unknown annotated kind: View() = %q, want table", got)
	}
}

func TestFigureNumberStableAcrossToggles(t *testing.T) {
	tg := NewToggle(salesTable(2))
	if tg.CaptionLabel() != "Table 3" {
		t.Errorf("CaptionLabel() = %q, want Table 3", tg.CaptionLabel())
	}
	tg.SetView("bar")
	if tg.CaptionLabel() != "Chart 3" {
		t.Errorf("CaptionLabel() = %q, want Chart 3", tg.CaptionLabel())
	}
	if tg.FigureNumber() != 3 {
		t.Errorf("FigureNumber() = %d, want 3", tg.FigureNumber())
	}
	tg.SetView(ViewTable)
	if tg.FigureNumber() != 3 {
		t.Errorf("FigureNumber() changed after toggling back")
	}
}

func TestLabelColumnNeverAValueColumn(t *testing.T) {
	tg := NewToggle(salesTable(0))
	if err := tg.SetLabelColumn("Q1"); err != nil {
		t.Fatalf("SetLabelColumn(Q1): %v", err)
	}
	if got := tg.ValueColumns(); !reflect.DeepEqual(got, []string{"Q2"}) {
		t.Errorf("after relabel ValueColumns() = %v, want [Q2]", got)
	}
	if err := tg.SetValueColumns([]string{"Q1"}); err == nil {
		t.Error("selecting the label column as a value column should fail")
	}
	if err := tg.SetValueColumns([]string{"Missing"}); err == nil {
		t.Error("selecting an unknown column should fail")
	}
	if err := tg.SetLabelColumn("Missing"); err == nil {
		t.Error("unknown label column should fail")
	}
}

func TestEffectiveValueColumnsArity(t *testing.T) {
	tbl := &markdown.ExtractedTable{
		Headers: []string{"Name", "Count", "Extra", "More"},
		Rows:    []map[string]any{{"Name": "a", "Count": int64(1), "Extra": int64(2), "More": int64(3)}},
	}
	cases := []struct {
		view string
		want []string
	}{
		{"pie", []string{"Count"}},
		{"donut", []string{"Count"}},
		{"scatter", []string{"Count", "Extra"}},
		{"line", []string{"Count", "Extra", "More"}},
		{"column", []string{"Count", "Extra", "More"}},
	}
	for _, c := range cases {
		tg := NewToggle(tbl)
		if err := tg.SetView(c.view); err != nil {
			t.Fatalf("SetView(%s): %v", c.view, err)
		}
		if got := tg.EffectiveValueColumns(); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: EffectiveValueColumns() = %v, want %v", c.view, got, c.want)
		}
	}
}
