package markdown

import (
	"fmt"
	"strings"
	"testing"
)

func TestRenderPlaceholdersAlignWithTables(t *testing.T) {
	input := "# Results\n\n| A | B |\n|-|-|\n| 1 | 2 |\n\nSome narrative.\n\n| C | D |\n|-|-|\n| 3 | 4 |\n"

	r := NewRenderer()
	res := r.Render(input)

	if len(res.Tables) != 2 {
		t.Fatalf("table count = %d, want 2", len(res.Tables))
	}
	for i := range res.Tables {
		marker := fmt.Sprintf(`data-table-index="%d"`, i)
		if !strings.Contains(res.HTML, marker) {
			t.Errorf("HTML missing placeholder %s:\n%s", marker, res.HTML)
		}
		figure := fmt.Sprintf(`data-figure="%d"`, i+1)
		if !strings.Contains(res.HTML, figure) {
			t.Errorf("HTML missing figure attribute %s", figure)
		}
	}
	if strings.Count(res.HTML, "table-placeholder") != 2 {
		t.Errorf("placeholder count = %d, want 2", strings.Count(res.HTML, "table-placeholder"))
	}
	// The pipe rows themselves must not leak into the HTML.
	if strings.Contains(res.HTML, "| A |") {
		t.Errorf("raw table markdown leaked into HTML")
	}
}

func TestRenderSanitizesScripts(t *testing.T) {
	input := "Hello <script>alert('x')</script> world\n\n<img src=\"x\" onerror=\"alert(1)\">\n"

	r := NewRenderer()
	res := r.Render(input)

	if strings.Contains(res.HTML, "<script") {
		t.Errorf("script tag survived sanitization:\n%s", res.HTML)
	}
	if strings.Contains(res.HTML, "onerror") {
		t.Errorf("onerror attribute survived sanitization:\n%s", res.HTML)
	}
	if !strings.Contains(res.HTML, "Hello") || !strings.Contains(res.HTML, "world") {
		t.Errorf("surrounding content lost during sanitization:\n%s", res.HTML)
	}
}

func TestRenderPreservesEditableSpans(t *testing.T) {
	input := "The mean was <EDITABLE span-id='s1'>42.5</EDITABLE> overall.\n"

	r := NewRenderer()
	res := r.Render(input)

	lower := strings.ToLower(res.HTML)
	if !strings.Contains(lower, "<editable") {
		t.Fatalf("editable span stripped from HTML:\n%s", res.HTML)
	}
	if !strings.Contains(lower, `span-id="s1"`) && !strings.Contains(lower, "span-id='s1'") {
		t.Errorf("span-id attribute lost:\n%s", res.HTML)
	}
	if !strings.Contains(res.HTML, "42.5") {
		t.Errorf("editable inner text lost:\n%s", res.HTML)
	}
}

func TestRenderChartOptionsAttribute(t *testing.T) {
	input := "<!-- chart-options {\"kind\":\"pie\"} -->\n| A | B |\n|-|-|\n| 1 | 2 |\n"

	r := NewRenderer()
	res := r.Render(input)

	if !strings.Contains(res.HTML, "data-chart-options") {
		t.Errorf("placeholder missing chart-options attribute:\n%s", res.HTML)
	}
}

func TestRenderBasicMarkdown(t *testing.T) {
	input := "# Title\n\nSome **bold** and *italic* text.\n\n- item one\n- item two\n"

	r := NewRenderer()
	res := r.Render(input)

	for _, want := range []string{"<h1", "<strong>bold</strong>", "<em>italic</em>", "<li>"} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("HTML missing %q:\n%s", want, res.HTML)
		}
	}
	if len(res.Tables) != 0 {
		t.Errorf("table count = %d, want 0", len(res.Tables))
	}
}
