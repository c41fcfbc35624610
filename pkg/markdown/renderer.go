package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts raw markdown into sanitized preview HTML. Table blocks
// come out as inert placeholder divs carrying the table index, figure number
// and serialized chart options; the preview layer mounts an interactive view
// at each placeholder. The table list and the placeholders are produced from
// one segment scan, so their indexes always agree.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
			// Raw HTML must survive conversion for the placeholder divs and
			// editable spans; bluemonday below does the actual sanitizing.
			gmhtml.WithUnsafe(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "data-table-index", "data-figure", "data-chart-options").OnElements("div")
	policy.AllowElements("editable")
	policy.AllowAttrs("span-id").OnElements("editable")

	return &Renderer{md: md, policy: policy}
}

// Render produces the sanitized HTML and the extracted table list for one
// document in a single pass. It never fails the whole render: a fragment
// goldmark cannot convert degrades to escaped text.
func (r *Renderer) Render(text string) *RenderResult {
	segs := scanSegments(text)

	var src strings.Builder
	var tables []*ExtractedTable
	for _, seg := range segs {
		if seg.table != nil {
			tables = append(tables, seg.table)
			src.WriteString("\n")
			src.WriteString(placeholderDiv(seg.table))
			src.WriteString("\n")
			continue
		}
		for _, line := range seg.lines {
			src.WriteString(line)
			src.WriteString("\n")
		}
	}

	var buf bytes.Buffer
	rendered := ""
	if err := r.md.Convert([]byte(src.String()), &buf); err != nil {
		log.Printf("[WARN] markdown convert failed, degrading to plain text: %v", err)
		rendered = "<pre>" + html.EscapeString(text) + "</pre>"
	} else {
		rendered = buf.String()
	}

	return &RenderResult{
		HTML:   r.policy.Sanitize(rendered),
		Tables: tables,
	}
}

// placeholderDiv builds the inert marker element for one table block. It
// carries no visual content itself.
func placeholderDiv(t *ExtractedTable) string {
	attrs := fmt.Sprintf(`class="table-placeholder" data-table-index="%d" data-figure="%d"`, t.Index, t.FigureNumber())
	if t.ChartOptions != nil {
		if raw, err := json.Marshal(t.ChartOptions); err == nil {
			attrs += fmt.Sprintf(` data-chart-options="%s"`, html.EscapeString(string(raw)))
		}
	}
	return "<div " + attrs + "></div>"
}
