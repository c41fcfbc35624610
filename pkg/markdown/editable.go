package markdown

import "regexp"

// editableRe captures the inner text of an <EDITABLE span-id='…'>…</EDITABLE>
// marker. Nested or malformed instances are tolerated: whatever the group
// captures is used literally.
var editableRe = regexp.MustCompile(`(?is)<EDITABLE[^>]*>(.*?)</EDITABLE>`)

// StripEditableSpans unwraps every editable-span marker to its inner text.
// The markers carry no semantic weight for export; the inner text then
// participates normally in all formatting rules.
func StripEditableSpans(text string) string {
	return editableRe.ReplaceAllString(text, "$1")
}
