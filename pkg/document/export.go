package document

import (
	"log"
	"regexp"
	"strings"

	"ai-reportgen-be/pkg/markdown"
	"ai-reportgen-be/pkg/viz"
)

// ChartAltText is the image alt text used for substituted chart captures.
// Exporters recognize it and suppress the caption they would emit for a
// user-authored image.
const ChartAltText = "Chart"

// ExportMarkdown builds the scratch copy of the document handed to the
// exporters. Each table whose toggle is in a chart mode gets its whole
// block (annotation comment included) replaced by a captured chart image;
// tables in table mode, and charts whose capture failed, stay literal
// markdown. The authoritative text is never mutated.
func (c *Controller) ExportMarkdown() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buildExportMarkdown(c.text, c.toggles)
}

func buildExportMarkdown(text string, toggles []*viz.Toggle) string {
	segs := markdown.Segments(text)
	var out []string
	ti := 0
	for _, seg := range segs {
		if seg.Table == nil {
			out = append(out, seg.Lines...)
			continue
		}
		var tg *viz.Toggle
		if ti < len(toggles) {
			tg = toggles[ti]
		}
		ti++

		if tg != nil && tg.InChartMode() {
			uri, err := tg.CaptureImage()
			if err != nil {
				log.Printf("[WARN] chart capture failed for figure %d, exporting the table instead: %v", tg.FigureNumber(), err)
			} else if uri != "" {
				out = append(out, "", "!["+ChartAltText+"]("+uri+")", "")
				continue
			}
		}
		out = append(out, seg.Lines...)
	}
	return strings.Join(out, "\n")
}

var filenameSanitizer = regexp.MustCompile(`[^\w\- ]+`)

// ExportFilename derives the download filename from the document title,
// falling back to a generic name when the title is blank or reduces to
// nothing after sanitizing.
func ExportFilename(title, ext string) string {
	base := strings.TrimSpace(filenameSanitizer.ReplaceAllString(title, ""))
	if base == "" {
		base = "document"
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}
