package document

import (
	"strings"
	"testing"

	"ai-reportgen-be/pkg/markdown"
)

const twoTableDoc = `# Results

Intro paragraph.

<!-- chart-options {"legendPosition":"none"} -->

| Category | Count |
| --- | --- |
| A | 10 |
| B | 5 |

Middle text.

| Region | Total |
| --- | --- |
| North | 7 |
`

func newTestController(t *testing.T, text string) *Controller {
	t.Helper()
	return NewController(markdown.NewRenderer(), "Results Chapter", text)
}

func TestControllerMountsTogglesPerTable(t *testing.T) {
	c := newTestController(t, twoTableDoc)
	views := c.TableViews()
	if len(views) != 2 {
		t.Fatalf("mounted %d toggles, want 2", len(views))
	}
	for i, v := range views {
		if v.Figure != i+1 {
			t.Errorf("table %d: figure = %d, want %d", i, v.Figure, i+1)
		}
		if v.View != "table" {
			t.Errorf("table %d: view = %q, want table", i, v.View)
		}
	}
	if views[0].Caption != "Table 1" || views[1].Caption != "Table 2" {
		t.Errorf("captions = %q, %q", views[0].Caption, views[1].Caption)
	}
	if !strings.Contains(c.HTML(), `data-table-index="1"`) {
		t.Error("preview HTML should carry a placeholder for the second table")
	}
}

func TestSetTableViewFlipsCaptionNotFigure(t *testing.T) {
	c := newTestController(t, twoTableDoc)
	view, err := c.SetTableView(0, "pie")
	if err != nil {
		t.Fatal(err)
	}
	if view.Caption != "Chart 1" || view.Figure != 1 {
		t.Errorf("after toggle: caption=%q figure=%d", view.Caption, view.Figure)
	}
	if view.ChartData == nil {
		t.Error("chart mode should carry derived chart data")
	}
	if _, err := c.SetTableView(5, "pie"); err == nil {
		t.Error("out-of-range index should fail")
	}
	if _, err := c.SetTableView(0, "hologram"); err == nil {
		t.Error("unknown view should fail")
	}
}

func TestSetTextDiscardsToggleState(t *testing.T) {
	c := newTestController(t, twoTableDoc)
	if _, err := c.SetTableView(0, "pie"); err != nil {
		t.Fatal(err)
	}
	c.SetText(twoTableDoc + "\nTrailing note.\n")
	views := c.TableViews()
	if len(views) != 2 {
		t.Fatalf("mounted %d toggles after re-render, want 2", len(views))
	}
	if views[0].View != "table" {
		t.Errorf("toggle state should reset on re-render, got %q", views[0].View)
	}
}

func TestSetModeUnmountsAndRemounts(t *testing.T) {
	c := newTestController(t, twoTableDoc)
	if err := c.SetMode(ModeEdit); err != nil {
		t.Fatal(err)
	}
	if got := c.TableViews(); len(got) != 0 {
		t.Errorf("edit mode should mount no toggles, got %d", len(got))
	}
	if c.HTML() != "" {
		t.Error("edit mode should drop the stale preview HTML")
	}
	if err := c.SetMode(ModePreview); err != nil {
		t.Fatal(err)
	}
	if got := c.TableViews(); len(got) != 2 {
		t.Errorf("preview mode should remount toggles, got %d", len(got))
	}
	if err := c.SetMode("split"); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestSetTableColumns(t *testing.T) {
	c := newTestController(t, twoTableDoc)
	view, err := c.SetTableColumns(0, "Count", nil)
	if err != nil {
		t.Fatal(err)
	}
	if view.LabelColumn != "Count" {
		t.Errorf("label column = %q, want Count", view.LabelColumn)
	}
	for _, col := range view.ValueColumns {
		if col == "Count" {
			t.Error("label column leaked into the value columns")
		}
	}
	if _, err := c.SetTableColumns(0, "Nope", nil); err == nil {
		t.Error("unknown label column should fail")
	}
}

func TestListenerNotifiedOnTextChange(t *testing.T) {
	c := newTestController(t, "plain text")
	var got []Change
	c.SetListener(func(ev Change) { got = append(got, ev) })

	c.SetText("new text")
	c.SetTitle("Renamed")

	if len(got) != 2 {
		t.Fatalf("listener saw %d changes, want 2", len(got))
	}
	if got[0].Kind != ChangeText || got[0].Text != "new text" {
		t.Errorf("first change = %+v", got[0])
	}
	if got[1].Kind != ChangeTitle {
		t.Errorf("second change = %+v", got[1])
	}
}

func TestDirtyTracksSaves(t *testing.T) {
	c := newTestController(t, "plain text")
	if c.Dirty() {
		t.Error("freshly mounted controller should be clean")
	}
	c.SetText("edited")
	if !c.Dirty() {
		t.Error("SetText should mark the document dirty")
	}
	c.MarkSaved()
	if c.Dirty() {
		t.Error("MarkSaved should clear the dirty flag")
	}
}
