package pdf

import (
	"bytes"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"

	"ai-reportgen-be/pkg/markdown"
	"ai-reportgen-be/pkg/utils"
)

// ensureRoom opens a new page when the next element of height h would cross
// the bottom margin.
func (c *converter) ensureRoom(h float64) {
	if c.pdf.GetY()+h > pageHeight-breakMargin {
		c.pdf.AddPage()
	}
}

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13}

func (c *converter) heading(level int, text string) {
	size, ok := headingSizes[level]
	if !ok {
		size = bodySize
	}
	lineH := size * 0.6
	c.ensureRoom(lineH + 6)
	c.pdf.Ln(3)
	c.pdf.SetFont("Helvetica", "B", size)
	c.pdf.MultiCell(0, lineH, c.tr(text), "", "L", false)
	c.pdf.Ln(2)
	c.pdf.SetFont("Helvetica", "", bodySize)
}

// paragraph flows styled runs with automatic wrapping at the right margin.
// The height check uses the wrapped plain text, one line-height per wrapped
// line.
func (c *converter) paragraph(runs []markdown.InlineRun, prefix string) {
	var plain bytes.Buffer
	plain.WriteString(prefix)
	for _, r := range runs {
		plain.WriteString(r.Text)
	}
	c.pdf.SetFont("Helvetica", "", bodySize)
	wrapped := c.pdf.SplitText(c.tr(plain.String()), printableWidth)
	c.ensureRoom(float64(len(wrapped)) * bodyLineH)

	if prefix != "" {
		c.pdf.Write(bodyLineH, c.tr(prefix))
	}
	for _, r := range runs {
		style := ""
		if r.Bold {
			style += "B"
		}
		if r.Italic {
			style += "I"
		}
		if r.Code {
			c.pdf.SetFont("Courier", style, bodySize)
		} else {
			c.pdf.SetFont("Helvetica", style, bodySize)
		}
		c.pdf.Write(bodyLineH, c.tr(r.Text))
	}
	c.pdf.Ln(bodyLineH)
	c.pdf.SetFont("Helvetica", "", bodySize)
}

// tableBlock parses a buffered run of pipe rows with the extractor's
// shared rule and lays it out as a striped grid with a bold shaded
// header. A malformed run degrades to plain paragraphs.
func (c *converter) tableBlock(run []string) {
	headers, rows, ok := markdown.ParseTableRun(run)
	if !ok {
		for _, line := range run {
			c.paragraph(markdown.SegmentInline(line), "")
		}
		return
	}

	colW := printableWidth / float64(len(headers))
	c.ensureRoom(tableRowH * 2)

	c.pdf.SetFont("Helvetica", "B", bodySize)
	c.pdf.SetFillColor(231, 230, 230)
	for _, h := range headers {
		c.pdf.CellFormat(colW, tableRowH, c.fitCell(h, colW), "1", 0, "L", true, 0, "")
	}
	c.pdf.Ln(tableRowH)

	c.pdf.SetFont("Helvetica", "", bodySize)
	for i, row := range rows {
		c.ensureRoom(tableRowH)
		if i%2 == 1 {
			c.pdf.SetFillColor(245, 245, 245)
		} else {
			c.pdf.SetFillColor(255, 255, 255)
		}
		for _, cell := range row {
			c.pdf.CellFormat(colW, tableRowH, c.fitCell(cell, colW), "1", 0, "L", true, 0, "")
		}
		c.pdf.Ln(tableRowH)
	}
	c.pdf.Ln(2)
}

// fitCell truncates cell text that would overflow its column.
func (c *converter) fitCell(s string, colW float64) string {
	s = c.tr(s)
	if c.pdf.GetStringWidth(s) <= colW-2 {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && c.pdf.GetStringWidth(string(runes)+"...") > colW-2 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// image decodes a data-URI image, scales it into the printable box and
// places it centered with spacing before and an optional caption after. Any
// failure degrades to an italic placeholder so the export keeps going.
func (c *converter) image(alt, src string) {
	mediaType, data, err := utils.ParseDataURI(src)
	if err != nil {
		log.Printf("[WARN] pdf: image skipped: %v", err)
		c.placeholder(alt)
		return
	}
	var imgType string
	switch mediaType {
	case "image/png":
		imgType = "PNG"
	case "image/jpeg", "image/jpg":
		imgType = "JPG"
	default:
		log.Printf("[WARN] pdf: unsupported image type %q", mediaType)
		c.placeholder(alt)
		return
	}
	pw, ph, err := utils.ImageSize(data)
	if err != nil {
		log.Printf("[WARN] pdf: image skipped: %v", err)
		c.placeholder(alt)
		return
	}

	wmm, hmm := utils.FitBox(float64(pw)*mmPerPx, float64(ph)*mmPerPx, printableWidth, maxImageHmm)
	c.ensureRoom(hmm + 8)
	c.pdf.Ln(3)

	c.images++
	name := fmt.Sprintf("img%d", c.images)
	opts := gofpdf.ImageOptions{ImageType: imgType}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	y := c.pdf.GetY()
	c.pdf.ImageOptions(name, (pageWidth-wmm)/2, y, wmm, hmm, false, opts, 0, "")
	c.pdf.SetY(y + hmm + 2)

	if alt != "" && alt != chartPlaceholderAlt {
		c.pdf.SetFont("Helvetica", "I", 9)
		c.pdf.SetTextColor(100, 100, 100)
		c.pdf.CellFormat(0, 5, c.tr(alt), "", 1, "C", false, 0, "")
		c.pdf.SetTextColor(0, 0, 0)
		c.pdf.SetFont("Helvetica", "", bodySize)
	}
	c.pdf.Ln(2)
}

func (c *converter) placeholder(alt string) {
	c.paragraph([]markdown.InlineRun{{Text: "[Image: " + alt + "]", Italic: true}}, "")
}
