package viz

// DefaultOptions returns the styling defaults for one chart kind as a flat
// map, the same shape the chart-options annotation uses so the two merge
// key-by-key.
func DefaultOptions(kind ChartKind) map[string]any {
	opts := map[string]any{
		"width":  800.0,
		"height": 450.0,
	}
	switch kind {
	case KindPie, KindDonut:
		opts["legendPosition"] = "right"
	case KindScatter:
		opts["legendPosition"] = "none"
	default:
		opts["legendPosition"] = "top"
	}
	switch kind {
	case KindColumn, KindBar, KindLine, KindArea, KindCombo:
		// Counts and amounts read wrong when the axis starts below zero.
		opts["axisMin"] = 0.0
	}
	if kind == KindDonut {
		opts["pieHole"] = 0.4
	}
	if kind == KindColumn {
		opts["slantedTextAngle"] = 45.0
	}
	return opts
}

// Options merges the table's chart-options annotation over the active
// kind's defaults. Annotation keys win; unknown keys pass through untouched
// for the client renderer.
func (t *Toggle) Options() map[string]any {
	opts := DefaultOptions(t.Kind())
	for k, v := range t.table.ChartOptions {
		opts[k] = v
	}
	return opts
}
