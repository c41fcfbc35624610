package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies one source line for the exporters. Both the DOCX and
// the PDF walker run the exact same classification so their output never
// disagrees about document structure.
type LineKind int

const (
	LineBlank LineKind = iota
	LineHeading
	LineImage
	LineTableRow
	LineBullet
	LineNumbered
	LineComment
	LineText
)

// Line is one classified source line with its payload already split out.
type Line struct {
	Kind   LineKind
	Level  int    // heading level 1..3
	Number int    // ordinal of a numbered list line
	Text   string // heading/bullet/numbered/paragraph content
	Alt    string // image alt text
	Src    string // image source (usually a data URI)
}

var (
	imageLineRe    = regexp.MustCompile(`^!\[(.*?)\]\((.+)\)$`)
	numberedLineRe = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	commentLineRe  = regexp.MustCompile(`^<!--.*-->$`)
)

// Classify maps a raw line to its kind. Comment lines (including
// `<!-- Toggle: … -->` captions) are classified so callers can drop them
// instead of rendering them as paragraphs.
func Classify(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Line{Kind: LineBlank}
	case commentLineRe.MatchString(trimmed):
		return Line{Kind: LineComment, Text: trimmed}
	case strings.HasPrefix(trimmed, "|"):
		return Line{Kind: LineTableRow, Text: trimmed}
	case strings.HasPrefix(trimmed, "# "):
		return Line{Kind: LineHeading, Level: 1, Text: strings.TrimSpace(trimmed[2:])}
	case strings.HasPrefix(trimmed, "## "):
		return Line{Kind: LineHeading, Level: 2, Text: strings.TrimSpace(trimmed[3:])}
	case strings.HasPrefix(trimmed, "### "):
		return Line{Kind: LineHeading, Level: 3, Text: strings.TrimSpace(trimmed[4:])}
	case strings.HasPrefix(trimmed, "- "):
		return Line{Kind: LineBullet, Text: strings.TrimSpace(trimmed[2:])}
	case strings.HasPrefix(trimmed, "* "):
		return Line{Kind: LineBullet, Text: strings.TrimSpace(trimmed[2:])}
	}
	if m := imageLineRe.FindStringSubmatch(trimmed); m != nil {
		return Line{Kind: LineImage, Alt: m[1], Src: m[2]}
	}
	if m := numberedLineRe.FindStringSubmatch(trimmed); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Line{Kind: LineNumbered, Number: n, Text: m[2]}
	}
	return Line{Kind: LineText, Text: trimmed}
}
