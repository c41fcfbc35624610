package markdown

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

var chartOptionsRe = regexp.MustCompile(`^\s*<!--\s*chart-options\s*(\{.*\})\s*-->\s*$`)

// Extract scans raw markdown for pipe-delimited table blocks, in document
// order, and returns their structured form. Same input always yields the
// same table list and figure ordering.
func Extract(text string) []*ExtractedTable {
	var tables []*ExtractedTable
	for _, seg := range scanSegments(text) {
		if seg.table != nil {
			tables = append(tables, seg.table)
		}
	}
	return tables
}

// Segments splits the document into an ordered list of text and table
// segments. Every input line lands in exactly one segment, so joining all
// segment lines with newlines reproduces the input byte for byte. Export
// substitution swaps table segments wholesale and leaves the rest alone.
func Segments(text string) []Segment {
	raw := scanSegments(text)
	out := make([]Segment, len(raw))
	for i, s := range raw {
		out[i] = Segment{Table: s.table, Lines: s.lines}
	}
	return out
}

// scanSegments walks the document once and splits it into text segments and
// table segments. Both Extract and Render are built on this single pass, so
// table indexes in the placeholder HTML and in the extracted list can never
// drift apart.
func scanSegments(text string) []segment {
	lines := strings.Split(text, "\n")
	var segs []segment
	var buf []string
	tableIdx := 0

	flushText := func() {
		if len(buf) > 0 {
			segs = append(segs, segment{lines: buf})
			buf = nil
		}
	}

	i := 0
	for i < len(lines) {
		if isTableStart(lines, i) {
			j := i
			for j < len(lines) && isTableRow(lines[j]) {
				j++
			}
			run := lines[i:j]
			tbl := parseTable(run)
			if tbl == nil {
				// Malformed header (duplicate/empty cells): the whole run
				// degrades to plain text.
				buf = append(buf, run...)
				i = j
				continue
			}

			block := run
			tbl.StartLine = i
			tbl.EndLine = j - 1

			// An immediately preceding chart-options comment belongs to this
			// table. Pop it (and the blank spacing below it) off the pending
			// text so the block is substituted as a whole on export.
			var blanks []string
			for len(buf) > 0 && strings.TrimSpace(buf[len(buf)-1]) == "" {
				blanks = append([]string{buf[len(buf)-1]}, blanks...)
				buf = buf[:len(buf)-1]
			}
			if len(buf) > 0 && chartOptionsRe.MatchString(buf[len(buf)-1]) {
				m := chartOptionsRe.FindStringSubmatch(buf[len(buf)-1])
				var opts map[string]any
				if err := json.Unmarshal([]byte(m[1]), &opts); err == nil {
					tbl.ChartOptions = opts
				}
				// Consumed even when the JSON is malformed; a broken
				// annotation is ignored, never an error.
				block = append(append([]string{buf[len(buf)-1]}, blanks...), run...)
				buf = buf[:len(buf)-1]
				tbl.StartLine = i - len(blanks) - 1
			} else {
				// The spacing belongs to the text after all.
				buf = append(buf, blanks...)
			}

			flushText()
			tbl.Index = tableIdx
			tbl.HTML = renderTableHTML(tbl)
			tableIdx++
			segs = append(segs, segment{table: tbl, lines: block})
			i = j
			continue
		}
		buf = append(buf, lines[i])
		i++
	}
	flushText()
	return segs
}

// isTableStart reports whether a table block begins at lines[i]: a pipe row
// followed by at least one more pipe row (the separator position). Single
// stray pipe lines stay plain text.
func isTableStart(lines []string, i int) bool {
	return isTableRow(lines[i]) && i+1 < len(lines) && isTableRow(lines[i+1])
}

func isTableRow(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// parseTable turns a run of pipe rows into an ExtractedTable. Row 1 is the
// header, row 2 is skipped as the separator regardless of its content, rows
// 3+ are data. Returns nil when the header is malformed (duplicate or empty
// cells); bad data rows are dropped individually instead.
func parseTable(run []string) *ExtractedTable {
	headers := splitRow(run[0])
	if len(headers) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if h == "" || seen[h] {
			return nil
		}
		seen[h] = true
	}

	rows := make([]map[string]any, 0, len(run))
	for _, line := range run[2:] {
		cells := splitRow(line)
		if len(cells) != len(headers) {
			continue
		}
		rec := make(map[string]any, len(headers))
		for k, h := range headers {
			rec[h] = coerceCell(cells[k])
		}
		rows = append(rows, rec)
	}

	return &ExtractedTable{Headers: headers, Rows: rows}
}

// SplitTableRow splits a pipe row into trimmed cells for callers outside
// the extractor (the exporters parse table runs with the same rule).
func SplitTableRow(line string) []string {
	return splitRow(line)
}

// ParseTableRun parses a buffered run of pipe rows into string cells: row 1
// is the header, row 2 the discarded separator, the rest body rows. Rows
// with the wrong cell count are dropped. Returns ok=false for runs the
// extractor would also reject (too short, empty or duplicate headers), so
// exporters and extraction classify the same runs as tables.
func ParseTableRun(run []string) ([]string, [][]string, bool) {
	if len(run) < 2 {
		return nil, nil, false
	}
	headers := splitRow(run[0])
	if len(headers) == 0 {
		return nil, nil, false
	}
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if h == "" || seen[h] {
			return nil, nil, false
		}
		seen[h] = true
	}
	var rows [][]string
	for _, line := range run[2:] {
		cells := splitRow(line)
		if len(cells) != len(headers) {
			continue
		}
		rows = append(rows, cells)
	}
	return headers, rows, true
}

// splitRow splits a pipe row into trimmed cells, dropping only the empty
// edge cells produced by the outer pipe characters. Interior empty cells
// survive.
func splitRow(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// CoerceCell applies the cell coercion rule for callers outside the
// extractor; uploaded spreadsheet cells go through the same ladder so
// generated tables and ingested data agree on types.
func CoerceCell(s string) any {
	return coerceCell(s)
}

// coerceCell stores a cell as int64/float64 when the whole trimmed string
// parses as a number, else as the trimmed string.
func coerceCell(s string) any {
	if s == "" {
		return s
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// FormatCellValue renders a coerced cell back to display text. Integers keep
// their exact form; floats drop trailing zeros.
func FormatCellValue(v any) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

func renderTableHTML(t *ExtractedTable) string {
	var b strings.Builder
	b.WriteString(`<table class="extracted-table">`)
	b.WriteString("<thead><tr>")
	for _, h := range t.Headers {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(h))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, h := range t.Headers {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(FormatCellValue(row[h])))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
