package document

import (
	"fmt"
	"sync"

	"ai-reportgen-be/pkg/markdown"
	"ai-reportgen-be/pkg/viz"
)

// Mode is the controller's editing surface: raw text or rendered preview.
const (
	ModeEdit    = "edit"
	ModePreview = "preview"
)

// ChangeKind tags listener notifications with what mutated.
type ChangeKind string

const (
	ChangeText    ChangeKind = "text"
	ChangeTitle   ChangeKind = "title"
	ChangeMode    ChangeKind = "mode"
	ChangeView    ChangeKind = "view"
	ChangeColumns ChangeKind = "columns"
	ChangeReplace ChangeKind = "replace"
)

// Change describes one mutation of the controller for interested listeners
// (the websocket push path in practice).
type Change struct {
	Kind       ChangeKind `json:"kind"`
	Text       string     `json:"text,omitempty"`
	TableIndex int        `json:"table_index,omitempty"`
}

// Controller owns the authoritative markdown text of one generated document
// plus everything derived from it: the sanitized preview HTML, the extracted
// tables, the per-table view toggles and the find/replace session. All
// methods are safe for concurrent use; derived state is rebuilt as a whole
// on every text change, never patched.
type Controller struct {
	mu       sync.Mutex
	renderer *markdown.Renderer

	title string
	mode  string
	text  string
	dirty bool

	html    string
	tables  []*markdown.ExtractedTable
	toggles []*viz.Toggle

	find     findSession
	listener func(Change)
}

// NewController mounts a controller around generated markdown. It starts in
// preview mode with the document rendered and one toggle per table.
func NewController(renderer *markdown.Renderer, title, text string) *Controller {
	c := &Controller{
		renderer: renderer,
		title:    title,
		mode:     ModePreview,
		text:     text,
	}
	c.renderLocked()
	return c
}

// SetListener registers the single change listener. Pass nil to detach.
func (c *Controller) SetListener(fn func(Change)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = fn
}

func (c *Controller) notify(ev Change) {
	c.mu.Lock()
	fn := c.listener
	c.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

// Title returns the user-editable document title.
func (c *Controller) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

// SetTitle updates the title used for captions and export filenames.
func (c *Controller) SetTitle(title string) {
	c.mu.Lock()
	c.title = title
	c.dirty = true
	c.mu.Unlock()
	c.notify(Change{Kind: ChangeTitle})
}

// Mode returns "edit" or "preview".
func (c *Controller) Mode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches between raw-text editing and the rendered preview.
// Entering preview re-renders from the latest text and mounts fresh
// toggles; leaving it unmounts them.
func (c *Controller) SetMode(mode string) error {
	if mode != ModeEdit && mode != ModePreview {
		return fmt.Errorf("unknown mode %q", mode)
	}
	c.mu.Lock()
	c.mode = mode
	if mode == ModePreview {
		c.renderLocked()
	} else {
		c.unmountLocked()
	}
	c.mu.Unlock()
	c.notify(Change{Kind: ChangeMode})
	return nil
}

// Text returns the authoritative markdown source.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// SetText replaces the document text. In preview mode the render artifacts
// and toggles are rebuilt from scratch; an active find session is re-run
// against the new text.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	c.text = text
	c.dirty = true
	if c.mode == ModePreview {
		c.renderLocked()
	} else {
		c.unmountLocked()
	}
	c.find.research(c.text)
	c.mu.Unlock()
	c.notify(Change{Kind: ChangeText, Text: text})
}

// HTML returns the sanitized preview HTML from the last render, or the
// empty string when nothing is mounted.
func (c *Controller) HTML() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.html
}

// Tables returns the extracted tables from the last render.
func (c *Controller) Tables() []*markdown.ExtractedTable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*markdown.ExtractedTable{}, c.tables...)
}

// Dirty reports whether the document changed since the last MarkSaved.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// MarkSaved clears the dirty flag after the caller persisted the document.
func (c *Controller) MarkSaved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}

// renderLocked rebuilds every derived artifact from the current text. The
// old toggles are discarded wholesale; view-mode state does not survive a
// re-render.
func (c *Controller) renderLocked() {
	res := c.renderer.Render(c.text)
	c.html = res.HTML
	c.tables = res.Tables
	c.toggles = make([]*viz.Toggle, len(res.Tables))
	for i, tbl := range res.Tables {
		c.toggles[i] = viz.NewToggle(tbl)
	}
}

func (c *Controller) unmountLocked() {
	c.html = ""
	c.tables = nil
	c.toggles = nil
}

// TableView is the read-out of one mounted toggle for transport to clients.
type TableView struct {
	Index        int              `json:"index"`
	Figure       int              `json:"figure"`
	Caption      string           `json:"caption"`
	View         string           `json:"view"`
	LabelColumn  string           `json:"label_column"`
	ValueColumns []string         `json:"value_columns"`
	Headers      []string         `json:"headers"`
	HTML         string           `json:"html"`
	ChartData    [][]any          `json:"chart_data,omitempty"`
	ChartOptions map[string]any   `json:"chart_options,omitempty"`
	Rows         []map[string]any `json:"rows,omitempty"`
}

// TableViews snapshots every mounted toggle in figure order.
func (c *Controller) TableViews() []TableView {
	c.mu.Lock()
	defer c.mu.Unlock()
	views := make([]TableView, len(c.toggles))
	for i, tg := range c.toggles {
		views[i] = c.tableViewLocked(i, tg)
	}
	return views
}

func (c *Controller) tableViewLocked(i int, tg *viz.Toggle) TableView {
	tbl := tg.Table()
	view := TableView{
		Index:        i,
		Figure:       tg.FigureNumber(),
		Caption:      tg.CaptionLabel(),
		View:         tg.View(),
		LabelColumn:  tg.LabelColumn(),
		ValueColumns: tg.ValueColumns(),
		Headers:      tbl.Headers,
		HTML:         tbl.HTML,
		Rows:         tbl.Rows,
	}
	if tg.InChartMode() {
		view.ChartData = tg.ChartData()
		view.ChartOptions = tg.Options()
	}
	return view
}

// SetTableView flips one table between its table rendering and a chart
// kind. The figure number never changes, only the caption word.
func (c *Controller) SetTableView(index int, view string) (TableView, error) {
	c.mu.Lock()
	tg, err := c.toggleLocked(index)
	if err != nil {
		c.mu.Unlock()
		return TableView{}, err
	}
	if err := tg.SetView(view); err != nil {
		c.mu.Unlock()
		return TableView{}, err
	}
	out := c.tableViewLocked(index, tg)
	c.mu.Unlock()
	c.notify(Change{Kind: ChangeView, TableIndex: index})
	return out, nil
}

// SetTableColumns reassigns the label column and value series of one table.
func (c *Controller) SetTableColumns(index int, label string, values []string) (TableView, error) {
	c.mu.Lock()
	tg, err := c.toggleLocked(index)
	if err != nil {
		c.mu.Unlock()
		return TableView{}, err
	}
	if label != "" {
		if err := tg.SetLabelColumn(label); err != nil {
			c.mu.Unlock()
			return TableView{}, err
		}
	}
	if values != nil {
		if err := tg.SetValueColumns(values); err != nil {
			c.mu.Unlock()
			return TableView{}, err
		}
	}
	out := c.tableViewLocked(index, tg)
	c.mu.Unlock()
	c.notify(Change{Kind: ChangeColumns, TableIndex: index})
	return out, nil
}

// CaptureChart rasterizes one table's current chart to a PNG data URI.
// Tables in table mode return an empty string with no error.
func (c *Controller) CaptureChart(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tg, err := c.toggleLocked(index)
	if err != nil {
		return "", err
	}
	return tg.CaptureImage()
}

func (c *Controller) toggleLocked(index int) (*viz.Toggle, error) {
	if index < 0 || index >= len(c.toggles) {
		return nil, fmt.Errorf("table %d is not mounted", index)
	}
	return c.toggles[index], nil
}
