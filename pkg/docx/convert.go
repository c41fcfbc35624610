package docx

import (
	"fmt"
	"log"
	"strings"

	"ai-reportgen-be/pkg/markdown"
	"ai-reportgen-be/pkg/utils"
)

// chartPlaceholderAlt matches the alt text the export substitution writes
// for captured charts. Those images carry their caption in the document
// already, so no extra caption paragraph is emitted for them.
const chartPlaceholderAlt = "Chart"

// Printable area of an A4 page with one-inch margins, in pixels at 96 DPI,
// and the EMU-per-pixel factor wordprocessingml uses at that density.
const (
	emuPerPixel = 9525
	maxImageWpx = 600.0
	maxImageHpx = 420.0
)

// Convert renders exporter-ready markdown (chart blocks already substituted
// with image references) into a DOCX binary. One top-to-bottom pass with a
// two-state walker: normal lines and open table runs. A broken image or
// table block degrades locally and the rest of the document still exports.
func Convert(text string) ([]byte, error) {
	w := NewWriter()

	lines := strings.Split(markdown.StripEditableSpans(text), "\n")
	var paraBuf []string
	var tableBuf []string

	flushPara := func() {
		if len(paraBuf) > 0 {
			w.Paragraph(markdown.SegmentInline(strings.Join(paraBuf, " ")))
			paraBuf = nil
		}
	}
	flushTable := func() {
		if len(tableBuf) == 0 {
			return
		}
		emitTable(w, tableBuf)
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
			w.EmptyParagraph()
		case markdown.LineComment:
			// Annotation and toggle-caption comments never render.
		case markdown.LineHeading:
			w.Heading(ln.Level, ln.Text)
		case markdown.LineTableRow:
			tableBuf = append(tableBuf, raw)
		case markdown.LineImage:
			emitImage(w, ln.Alt, ln.Src)
		case markdown.LineBullet:
			w.Bullet(markdown.SegmentInline(ln.Text))
		case markdown.LineNumbered:
			w.Numbered(ln.Number, markdown.SegmentInline(ln.Text))
		default:
			paraBuf = append(paraBuf, ln.Text)
		}
	}
	flushTable()
	flushPara()

	out, err := w.Bytes()
	if err != nil {
		return nil, fmt.Errorf("pack docx: %w", err)
	}
	return out, nil
}

// emitTable lays out a buffered run of pipe rows parsed with the extractor's
// shared rule. A malformed run degrades to plain paragraphs.
func emitTable(w *Writer, run []string) {
	headers, rows, ok := markdown.ParseTableRun(run)
	if !ok {
		for _, line := range run {
			w.Paragraph(markdown.SegmentInline(strings.TrimSpace(line)))
		}
		return
	}
	w.Table(headers, rows)
}

// emitImage decodes a data-URI image, scales it into the printable box and
// embeds it centered. Anything that fails falls back to an italic
// placeholder paragraph so one bad image never kills the export.
func emitImage(w *Writer, alt, src string) {
	mediaType, data, err := utils.ParseDataURI(src)
	if err != nil {
		log.Printf("[WARN] docx: image skipped: %v", err)
		w.Paragraph([]markdown.InlineRun{{Text: "[Image: " + alt + "]", Italic: true}})
		return
	}
	ext, ok := imageExt(mediaType)
	if !ok {
		log.Printf("[WARN] docx: unsupported image type %q", mediaType)
		w.Paragraph([]markdown.InlineRun{{Text: "[Image: " + alt + "]", Italic: true}})
		return
	}
	pw, ph, err := utils.ImageSize(data)
	if err != nil {
		log.Printf("[WARN] docx: image skipped: %v", err)
		w.Paragraph([]markdown.InlineRun{{Text: "[Image: " + alt + "]", Italic: true}})
		return
	}
	fw, fh := utils.FitBox(float64(pw), float64(ph), maxImageWpx, maxImageHpx)
	w.Image(data, ext, int64(fw*emuPerPixel), int64(fh*emuPerPixel))

	if alt != "" && alt != chartPlaceholderAlt {
		w.Caption(alt)
	}
}

func imageExt(mediaType string) (string, bool) {
	switch mediaType {
	case "image/png":
		return "png", true
	case "image/jpeg", "image/jpg":
		return "jpg", true
	}
	return "", false
}
