package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"ai-reportgen-be/pkg/markdown"
)

// chartPlaceholderAlt matches the alt text the export substitution writes
// for captured charts; those images get no extra caption paragraph.
const chartPlaceholderAlt = "Chart"

// Page geometry in millimeters: A4 portrait with symmetric margins. The
// bottom break margin leaves room for the page-number footer.
const (
	pageWidth      = 210.0
	pageHeight     = 297.0
	marginX        = 15.0
	marginTop      = 15.0
	breakMargin    = 20.0
	printableWidth = pageWidth - 2*marginX

	bodySize  = 11.0
	bodyLineH = 5.0
	tableRowH = 7.0

	maxImageHmm = 120.0
	mmPerPx     = 25.4 / 96.0
)

type converter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images int
}

func newConverter() *converter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(true, breakMargin)
	pdf.AliasNbPages("")

	c := &converter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.SetFont("Helvetica", "", bodySize)
	pdf.AddPage()
	return c
}

// Convert renders exporter-ready markdown into a PDF binary. Layout is a
// manual vertical cursor: each element checks the remaining room on the
// page before it is placed and opens a new page when it would not fit.
// Classification, inline parsing and failure semantics are shared with the
// DOCX exporter.
func Convert(text string) ([]byte, error) {
	c := newConverter()
	c.walk(text)

	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pack pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *converter) walk(text string) {
	lines := strings.Split(markdown.StripEditableSpans(text), "\n")
	var paraBuf []string
	var tableBuf []string

	flushPara := func() {
		if len(paraBuf) > 0 {
			c.paragraph(markdown.SegmentInline(strings.Join(paraBuf, " ")), "")
			paraBuf = nil
		}
	}
	flushTable := func() {
		if len(tableBuf) == 0 {
			return
		}
		c.tableBlock(tableBuf)
		tableBuf = nil
	}

	for _, raw := range lines {
		ln := markdown.Classify(raw)
		if len(tableBuf) > 0 && ln.Kind != markdown.LineTableRow {
			flushTable()
		}
		if ln.Kind != markdown.LineText && ln.Kind != markdown.LineTableRow {
			flushPara()
		}

		switch ln.Kind {
		case markdown.LineBlank:
			c.pdf.Ln(3)
		case markdown.LineComment:
			// Annotation and toggle-caption comments never render.
		case markdown.LineHeading:
			c.heading(ln.Level, ln.Text)
		case markdown.LineTableRow:
			tableBuf = append(tableBuf, raw)
		case markdown.LineImage:
			c.image(ln.Alt, ln.Src)
		case markdown.LineBullet:
			c.paragraph(markdown.SegmentInline(ln.Text), "• ")
		case markdown.LineNumbered:
			c.paragraph(markdown.SegmentInline(ln.Text), fmt.Sprintf("%d. ", ln.Number))
		default:
			paraBuf = append(paraBuf, ln.Text)
		}
	}
	flushTable()
	flushPara()
}
