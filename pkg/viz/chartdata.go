package viz

import "ai-reportgen-be/pkg/markdown"

// ChartData derives the renderable data grid for the active chart kind.
// The first row holds the header labels, every following row one category.
// Non-numeric and missing value cells coerce to 0 so a stray cell never
// breaks the whole chart.
//
// Degenerate shapes never fail: a table with fewer than two columns yields a
// single "No data" placeholder row, a scatter selection with fewer than two
// value columns a neutral (0, 0) point.
func (t *Toggle) ChartData() [][]any {
	if len(t.table.Headers) < 2 || t.labelColumn == "" {
		return [][]any{{"Label", "Value"}, {"No data", 0.0}}
	}

	cols := t.EffectiveValueColumns()
	switch t.Kind() {
	case KindPie, KindDonut:
		if len(cols) == 0 {
			return [][]any{{"Label", "Value"}, {"No data", 0.0}}
		}
		rows := [][]any{{"Label", "Value"}}
		for _, r := range t.table.Rows {
			rows = append(rows, []any{labelOf(r, t.labelColumn), numberOf(r, cols[0])})
		}
		return rows
	case KindScatter:
		if len(cols) < 2 {
			return [][]any{{"X", "Y"}, {0.0, 0.0}}
		}
		rows := [][]any{{cols[0], cols[1]}}
		for _, r := range t.table.Rows {
			rows = append(rows, []any{numberOf(r, cols[0]), numberOf(r, cols[1])})
		}
		return rows
	default:
		if len(cols) == 0 {
			return [][]any{{"Label", "Value"}, {"No data", 0.0}}
		}
		header := []any{t.labelColumn}
		for _, c := range cols {
			header = append(header, c)
		}
		rows := [][]any{header}
		for _, r := range t.table.Rows {
			row := []any{labelOf(r, t.labelColumn)}
			for _, c := range cols {
				row = append(row, numberOf(r, c))
			}
			rows = append(rows, row)
		}
		return rows
	}
}

func labelOf(row map[string]any, col string) string {
	return markdown.FormatCellValue(row[col])
}

func numberOf(row map[string]any, col string) float64 {
	switch v := row[col].(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}
