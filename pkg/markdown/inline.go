package markdown

import "strings"

// InlineRun is a flat, single-style stretch of paragraph text. Overlapping
// markers resolve in document order: whichever opener appears first wins and
// its span's inner text is kept literal, so runs never nest.
type InlineRun struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

const (
	markBold   = "**"
	markItalic = "*"
	markCode   = "`"
)

// SegmentInline splits one line of text into styled runs, scanning
// left-to-right by first marker index. `**` beats `*` at the same position.
// An opener with no closer is emitted as literal text.
func SegmentInline(s string) []InlineRun {
	var runs []InlineRun
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, InlineRun{Text: plain.String()})
			plain.Reset()
		}
	}

	for len(s) > 0 {
		marker, at := nextMarker(s)
		if at < 0 {
			plain.WriteString(s)
			break
		}
		plain.WriteString(s[:at])
		rest := s[at+len(marker):]

		closer := markItalic
		if marker != markItalic {
			closer = marker
		}
		end := strings.Index(rest, closer)
		if end < 0 {
			// Unclosed marker stays literal.
			plain.WriteString(marker)
			s = rest
			continue
		}

		flush()
		run := InlineRun{Text: rest[:end]}
		switch marker {
		case markBold:
			run.Bold = true
		case markItalic:
			run.Italic = true
		case markCode:
			run.Code = true
		}
		runs = append(runs, run)
		s = rest[end+len(closer):]
	}
	flush()
	return runs
}

// nextMarker finds the earliest opener in s. At equal positions bold wins
// over italic because `**` is also the first byte of `*`.
func nextMarker(s string) (string, int) {
	best, bestAt := "", -1
	consider := func(m string, at int) {
		if at < 0 {
			return
		}
		if bestAt < 0 || at < bestAt {
			best, bestAt = m, at
		}
	}
	star := strings.Index(s, markItalic)
	if star >= 0 && strings.HasPrefix(s[star:], markBold) {
		consider(markBold, star)
	} else {
		consider(markItalic, star)
	}
	consider(markCode, strings.Index(s, markCode))
	return best, bestAt
}
