package viz

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// CaptureImage rasterizes the active chart to a PNG data URI for export
// substitution. In table mode nothing is mounted and the result is empty
// with a nil error. Render failures return an error so the exporter can
// fall back to the table rendering instead of aborting the export.
func (t *Toggle) CaptureImage() (string, error) {
	if !t.InChartMode() {
		return "", nil
	}
	opts := t.Options()
	width := int(optFloat(opts, "width", 800))
	height := int(optFloat(opts, "height", 450))
	data := t.ChartData()
	if len(data) < 2 {
		return "", fmt.Errorf("chart %d: no data rows", t.FigureNumber())
	}

	var buf bytes.Buffer
	var err error
	switch t.Kind() {
	case KindPie, KindDonut:
		err = renderPie(&buf, t.Kind(), data, width, height)
	case KindColumn, KindBar:
		err = renderBars(&buf, data, width, height, optFloat(opts, "slantedTextAngle", 0))
	case KindScatter:
		err = renderScatter(&buf, data, width, height)
	default:
		err = renderXY(&buf, t.Kind(), data, width, height, opts)
	}
	if err != nil {
		return "", fmt.Errorf("chart %d render: %w", t.FigureNumber(), err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func renderPie(buf *bytes.Buffer, kind ChartKind, data [][]any, width, height int) error {
	var values []chart.Value
	var total float64
	for _, row := range data[1:] {
		label, _ := row[0].(string)
		value, _ := row[1].(float64)
		if value < 0 {
			value = 0
		}
		total += value
		values = append(values, chart.Value{Label: label, Value: value})
	}
	if total <= 0 {
		return fmt.Errorf("all slice values are zero")
	}
	if kind == KindDonut {
		return chart.DonutChart{Width: width, Height: height, Values: values}.Render(chart.PNG, buf)
	}
	return chart.PieChart{Width: width, Height: height, Values: values}.Render(chart.PNG, buf)
}

// renderBars draws the first value series; go-chart has no grouped bars, so
// the raster keeps one bar per category even when more series are selected.
func renderBars(buf *bytes.Buffer, data [][]any, width, height int, slant float64) error {
	var bars []chart.Value
	maxVal := 0.0
	for _, row := range data[1:] {
		label, _ := row[0].(string)
		value, _ := row[1].(float64)
		if value > maxVal {
			maxVal = value
		}
		bars = append(bars, chart.Value{Label: label, Value: value})
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	bc := chart.BarChart{
		Width:    width,
		Height:   height,
		BarWidth: barWidthFor(width, len(bars)),
		XAxis:    chart.Style{TextRotationDegrees: slant},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal * 1.1},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, buf)
}

func renderScatter(buf *bytes.Buffer, data [][]any, width, height int) error {
	xs := make([]float64, 0, len(data)-1)
	ys := make([]float64, 0, len(data)-1)
	for _, row := range data[1:] {
		x, _ := row[0].(float64)
		y, _ := row[1].(float64)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Range: padRange(xs, false)},
		YAxis:  chart.YAxis{Range: padRange(ys, false)},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    fmt.Sprint(data[0][1]),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
			},
		}},
	}
	return graph.Render(chart.PNG, buf)
}

func renderXY(buf *bytes.Buffer, kind ChartKind, data [][]any, width, height int, opts map[string]any) error {
	header := data[0]
	nSeries := len(header) - 1
	ticks := make([]chart.Tick, 0, len(data)-1)
	xs := make([]float64, 0, len(data)-1)
	for i, row := range data[1:] {
		label, _ := row[0].(string)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: label})
		xs = append(xs, float64(i))
	}
	if len(ticks) == 1 {
		// Axis measurement needs at least two ticks.
		ticks = append(ticks, chart.Tick{Value: 1, Label: ""})
	}

	var all []float64
	series := make([]chart.Series, 0, nSeries)
	for s := 0; s < nSeries; s++ {
		ys := make([]float64, 0, len(xs))
		for _, row := range data[1:] {
			v, _ := row[s+1].(float64)
			ys = append(ys, v)
			all = append(all, v)
		}
		style := chart.Style{
			StrokeColor: chart.GetDefaultColor(s),
			StrokeWidth: 2,
		}
		if kind == KindArea || (kind == KindCombo && s == 0) {
			style.FillColor = chart.GetDefaultColor(s).WithAlpha(100)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprint(header[s+1]),
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Ticks: ticks, Range: padRange(xs, false)},
		YAxis:  chart.YAxis{Range: padRange(all, optFloat(opts, "axisMin", -1) == 0)},
		Series: series,
	}
	if pos, _ := opts["legendPosition"].(string); nSeries > 1 {
		switch pos {
		case "none":
		case "right":
			graph.Elements = []chart.Renderable{chart.Legend(&graph)}
		default:
			graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
		}
	}
	return graph.Render(chart.PNG, buf)
}

// padRange widens degenerate ranges so go-chart never sees a zero-width
// axis. clampZero pins the minimum at zero for count-like data.
func padRange(vals []float64, clampZero bool) *chart.ContinuousRange {
	if len(vals) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if clampZero && min > 0 {
		min = 0
	}
	if max == min {
		max = min + 1
		if !clampZero || min < 0 {
			min = min - 1
		}
	} else {
		max += (max - min) * 0.05
	}
	return &chart.ContinuousRange{Min: min, Max: max}
}

func barWidthFor(width, n int) int {
	if n == 0 {
		return 40
	}
	w := (width-100)/n - 10
	if w < 8 {
		w = 8
	}
	if w > 60 {
		w = 60
	}
	return w
}

func optFloat(opts map[string]any, key string, fallback float64) float64 {
	switch v := opts[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return fallback
}
