package utils

import (
	"strings"

	"ai-reportgen-be/pkg/markdown"
)

const (
	// Caps keep the generation prompt inside a sane token budget even for
	// wide or messy uploads.
	maxPromptCellRunes = 80
)

// FormatRecordsAsTable renders ingested records as a markdown pipe table so
// the dataset can be embedded in a generation prompt. Cell values are
// formatted with the same rules the extractor uses when it renders tables, so
// what the model sees matches what the document will show.
func FormatRecordsAsTable(headers []string, records []map[string]any) string {
	if len(headers) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString("| ")
	b.WriteString(strings.Join(headers, " | "))
	b.WriteString(" |\n|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, rec := range records {
		b.WriteString("|")
		for _, h := range headers {
			cell := ""
			if v, ok := rec[h]; ok && v != nil {
				cell = markdown.FormatCellValue(v)
			}
			b.WriteString(" ")
			b.WriteString(clipCell(cell))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func clipCell(s string) string {
	// Pipes inside a cell would split the row when the table is re-parsed.
	s = strings.ReplaceAll(s, "|", "/")
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxPromptCellRunes {
		return s
	}
	return string(runes[:maxPromptCellRunes]) + "..."
}
