package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"

	"ai-reportgen-be/pkg/markdown"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestConvertProducesPDF(t *testing.T) {
	out, err := Convert("# Results\n\nSome **styled** paragraph with `code`.\n")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %.8q", out)
	}
	if len(out) < 500 {
		t.Errorf("suspiciously small PDF: %d bytes", len(out))
	}
}

func TestConvertEmptyDocument(t *testing.T) {
	out, err := Convert("")
	if err != nil {
		t.Fatalf("Convert(empty): %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("even an empty document should produce a valid single-page PDF")
	}
}

func TestConvertPaginatesLongDocument(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&b, "Paragraph %d with enough words to take up a full wrapped line of text on the page.\n\n", i)
	}
	c := newConverter()
	c.walk(b.String())
	if got := c.pdf.PageCount(); got < 2 {
		t.Errorf("long document stayed on %d page(s), want at least 2", got)
	}
}

func TestConvertHeadingsStartNewPageWhenCramped(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 52; i++ {
		b.WriteString("filler line\n\n")
	}
	b.WriteString("## Late Heading\n\nbody\n")
	c := newConverter()
	c.walk(b.String())
	if got := c.pdf.PageCount(); got < 2 {
		t.Errorf("heading near the bottom margin should open a new page, got %d page(s)", got)
	}
}

func TestConvertWithTableAndImages(t *testing.T) {
	text := strings.Join([]string{
		"# Results",
		"",
		"| Name | Score |",
		"| --- | --- |",
		"| Anna | 9 |",
		"| Ben | 7 |",
		"",
		"![Chart](" + pngDataURI(t, 400, 200) + ")",
		"",
		"![broken](data:image/png;base64,@@@)",
		"",
		"Closing paragraph.",
		"",
	}, "\n")
	out, err := Convert(text)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("missing PDF header")
	}
}

func TestParseTableRun(t *testing.T) {
	headers, rows, ok := markdown.ParseTableRun([]string{
		"| Name | Score |",
		"| --- | --- |",
		"| Anna | 9 |",
		"| onlyone |",
		"| Ben | 7 |",
	})
	if !ok {
		t.Fatal("valid run rejected")
	}
	if len(headers) != 2 || headers[0] != "Name" {
		t.Errorf("headers = %v", headers)
	}
	if len(rows) != 2 {
		t.Errorf("kept %d rows, want 2 (mismatched row dropped)", len(rows))
	}

	if _, _, ok := markdown.ParseTableRun([]string{"| A | A |", "| --- | --- |"}); ok {
		t.Error("duplicate headers should reject the run")
	}
	if _, _, ok := markdown.ParseTableRun([]string{"| A | B |"}); ok {
		t.Error("a single pipe line is not a table")
	}
}

func TestFitCellTruncatesLongText(t *testing.T) {
	c := newConverter()
	long := strings.Repeat("wide text ", 30)
	got := c.fitCell(long, 30)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("overflowing cell should end with an ellipsis, got %q", got)
	}
	if c.pdf.GetStringWidth(got) > 30 {
		t.Errorf("truncated cell still overflows: %.1fmm", c.pdf.GetStringWidth(got))
	}
	if c.fitCell("ok", 30) != "ok" {
		t.Error("short cells must pass through unchanged")
	}
}
