package markdown

// ExtractedTable is the structured, read-only view of one pipe-table block
// found in a document. Rows are header->value records; values are numbers
// when the cell parses fully as one, otherwise trimmed strings.
type ExtractedTable struct {
	// Index is the zero-based position of the table among all tables in the
	// document. FigureNumber = Index + 1 and stays stable across view-mode
	// toggles of the same table.
	Index int `json:"index"`

	Headers []string         `json:"headers"`
	Rows    []map[string]any `json:"rows"`

	// ChartOptions holds the flat key/value object from an adjacent
	// `<!-- chart-options {...} -->` comment, or nil if absent/malformed.
	ChartOptions map[string]any `json:"chart_options,omitempty"`

	// HTML is the static table rendering for the non-interactive preview path.
	HTML string `json:"html"`

	// StartLine/EndLine delimit the block (inclusive) in the source text,
	// counting the annotation comment when one was consumed. Used by the
	// export path to substitute captured chart images in place.
	StartLine int `json:"-"`
	EndLine   int `json:"-"`
}

// FigureNumber returns the 1-based figure counter for captions
// ("Table N" / "Chart N").
func (t *ExtractedTable) FigureNumber() int {
	return t.Index + 1
}

// RenderResult pairs the sanitized preview HTML with the table list it was
// derived from. Both come out of the same segment scan, so placeholder
// indexes in HTML and positions in Tables always line up.
type RenderResult struct {
	HTML   string
	Tables []*ExtractedTable
}

// Segment is one region of the source document: either plain markdown text
// or a recognized table block. Table segments carry the whole block,
// chart-options annotation and spacing included.
type Segment struct {
	Table *ExtractedTable // nil for text segments
	Lines []string
}

// segment is the internal scan form of Segment.
type segment struct {
	table *ExtractedTable // nil for text segments
	lines []string
}
