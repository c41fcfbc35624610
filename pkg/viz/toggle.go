package viz

import (
	"fmt"

	"ai-reportgen-be/pkg/markdown"
)

// ChartKind identifies one of the supported chart renderings.
type ChartKind string

const (
	KindColumn  ChartKind = "column"
	KindBar     ChartKind = "bar"
	KindLine    ChartKind = "line"
	KindArea    ChartKind = "area"
	KindPie     ChartKind = "pie"
	KindDonut   ChartKind = "donut"
	KindScatter ChartKind = "scatter"
	KindCombo   ChartKind = "combo"
)

// ViewTable is the non-chart view mode. Every other valid view value is a
// ChartKind.
const ViewTable = "table"

var validKinds = map[ChartKind]bool{
	KindColumn:  true,
	KindBar:     true,
	KindLine:    true,
	KindArea:    true,
	KindPie:     true,
	KindDonut:   true,
	KindScatter: true,
	KindCombo:   true,
}

// IsChartKind reports whether s names a supported chart kind.
func IsChartKind(s string) bool {
	return validKinds[ChartKind(s)]
}

// Toggle owns the live view state of one extracted table: the current view
// mode, the column-role selection, and (in chart mode) the chart handle used
// for image capture. One Toggle exists per mounted table; re-rendering the
// document discards and recreates them.
type Toggle struct {
	table *markdown.ExtractedTable

	view         string // ViewTable or a ChartKind value
	labelColumn  string
	valueColumns []string
}

// NewToggle mounts a toggle for one table. The first header becomes the
// label column and every remaining header a value column. When the table's
// chart-options annotation names a valid kind the toggle starts in that
// chart view, otherwise in table view.
func NewToggle(table *markdown.ExtractedTable) *Toggle {
	t := &Toggle{
		table: table,
		view:  ViewTable,
	}
	if len(table.Headers) > 0 {
		t.labelColumn = table.Headers[0]
		t.valueColumns = append([]string{}, table.Headers[1:]...)
	}
	if kind, ok := annotatedKind(table.ChartOptions); ok {
		t.view = string(kind)
	}
	return t
}

func annotatedKind(opts map[string]any) (ChartKind, bool) {
	if opts == nil {
		return "", false
	}
	for _, key := range []string{"kind", "chartType"} {
		if v, ok := opts[key].(string); ok && IsChartKind(v) {
			return ChartKind(v), true
		}
	}
	return "", false
}

// Table returns the extracted table this toggle presents.
func (t *Toggle) Table() *markdown.ExtractedTable { return t.table }

// View returns the current view mode: "table" or a chart kind.
func (t *Toggle) View() string { return t.view }

// InChartMode reports whether the toggle currently shows a chart.
func (t *Toggle) InChartMode() bool { return t.view != ViewTable }

// Kind returns the active chart kind; only meaningful in chart mode.
func (t *Toggle) Kind() ChartKind { return ChartKind(t.view) }

// FigureNumber is stable across view toggles for the same table.
func (t *Toggle) FigureNumber() int { return t.table.FigureNumber() }

// CaptionLabel is the user-facing figure caption. Only the word flips when
// the view changes; the number never does.
func (t *Toggle) CaptionLabel() string {
	if t.InChartMode() {
		return fmt.Sprintf("Chart %d", t.FigureNumber())
	}
	return fmt.Sprintf("Table %d", t.FigureNumber())
}

// SetView switches the view mode. table→chart, chart→chart and chart→table
// are all unrestricted; value-column arity is applied at derivation time so
// the stored selection survives kind changes.
func (t *Toggle) SetView(view string) error {
	if view != ViewTable && !IsChartKind(view) {
		return fmt.Errorf("unknown view %q", view)
	}
	t.view = view
	return nil
}

// LabelColumn returns the category-axis column.
func (t *Toggle) LabelColumn() string { return t.labelColumn }

// SetLabelColumn selects the category axis. The column must be one of the
// table's headers; if it was selected as a value column it is removed there,
// keeping the invariant that the label column is never also a value column.
func (t *Toggle) SetLabelColumn(header string) error {
	if !t.hasHeader(header) {
		return fmt.Errorf("label column %q is not a table header", header)
	}
	t.labelColumn = header
	kept := t.valueColumns[:0]
	for _, c := range t.valueColumns {
		if c != header {
			kept = append(kept, c)
		}
	}
	t.valueColumns = kept
	return nil
}

// ValueColumns returns the selected value series columns.
func (t *Toggle) ValueColumns() []string {
	return append([]string{}, t.valueColumns...)
}

// SetValueColumns selects the value series. Every column must be a header
// and must differ from the label column.
func (t *Toggle) SetValueColumns(headers []string) error {
	for _, h := range headers {
		if !t.hasHeader(h) {
			return fmt.Errorf("value column %q is not a table header", h)
		}
		if h == t.labelColumn {
			return fmt.Errorf("column %q is already the label column", h)
		}
	}
	t.valueColumns = append([]string{}, headers...)
	return nil
}

// EffectiveValueColumns applies the active kind's arity rule to the stored
// selection: pie/donut use the first selected column only, scatter the first
// two, everything else all of them.
func (t *Toggle) EffectiveValueColumns() []string {
	cols := t.valueColumns
	switch t.Kind() {
	case KindPie, KindDonut:
		if len(cols) > 1 {
			cols = cols[:1]
		}
	case KindScatter:
		if len(cols) > 2 {
			cols = cols[:2]
		}
	}
	return append([]string{}, cols...)
}

func (t *Toggle) hasHeader(h string) bool {
	for _, header := range t.table.Headers {
		if header == h {
			return true
		}
	}
	return false
}
