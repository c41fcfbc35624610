package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"ai-reportgen-be/pkg/markdown"
)

// Writer accumulates wordprocessingml body elements and media parts, then
// packs them into a DOCX container. It is a one-shot builder: emit elements
// top to bottom, call Bytes once.
type Writer struct {
	body   strings.Builder
	images []imagePart
}

type imagePart struct {
	name string // file name under word/media/
	data []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

// runsXML renders inline runs into w:r elements. Text nodes preserve
// whitespace so runs concatenate back to the original line.
func runsXML(runs []markdown.InlineRun) string {
	var b strings.Builder
	for _, run := range runs {
		b.WriteString("<w:r>")
		if run.Bold || run.Italic || run.Code {
			b.WriteString("<w:rPr>")
			if run.Bold {
				b.WriteString("<w:b/>")
			}
			if run.Italic {
				b.WriteString("<w:i/>")
			}
			if run.Code {
				b.WriteString(`<w:rFonts w:ascii="Consolas" w:hAnsi="Consolas"/>`)
			}
			b.WriteString("</w:rPr>")
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(xmlEscape(run.Text))
		b.WriteString("</w:t></w:r>")
	}
	return b.String()
}

// Paragraph emits one normal paragraph from inline runs.
func (w *Writer) Paragraph(runs []markdown.InlineRun) {
	w.body.WriteString("    <w:p>")
	w.body.WriteString(runsXML(runs))
	w.body.WriteString("</w:p>\n")
}

// EmptyParagraph emits a paragraph break.
func (w *Writer) EmptyParagraph() {
	w.body.WriteString("    <w:p/>\n")
}

// Heading emits a Heading1..Heading3 styled paragraph. Levels outside that
// range clamp to 3.
func (w *Writer) Heading(level int, text string) {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	fmt.Fprintf(&w.body, "    <w:p><w:pPr><w:pStyle w:val=\"Heading%d\"/></w:pPr><w:r><w:t xml:space=\"preserve\">%s</w:t></w:r></w:p>\n",
		level, xmlEscape(text))
}

// Bullet emits one bulleted list paragraph.
func (w *Writer) Bullet(runs []markdown.InlineRun) {
	w.body.WriteString(`    <w:p><w:pPr><w:pStyle w:val="ListParagraph"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>`)
	w.body.WriteString(runsXML(runs))
	w.body.WriteString("</w:p>\n")
}

// Numbered emits one numbered list paragraph. The ordinal is kept as
// literal text, matching the source line.
func (w *Writer) Numbered(number int, runs []markdown.InlineRun) {
	w.body.WriteString(`    <w:p><w:pPr><w:pStyle w:val="ListParagraph"/></w:pPr>`)
	fmt.Fprintf(&w.body, `<w:r><w:t xml:space="preserve">%d. </w:t></w:r>`, number)
	w.body.WriteString(runsXML(runs))
	w.body.WriteString("</w:p>\n")
}

// Caption emits the italic caption paragraph used under images.
func (w *Writer) Caption(text string) {
	fmt.Fprintf(&w.body, "    <w:p><w:pPr><w:pStyle w:val=\"Caption\"/></w:pPr><w:r><w:t xml:space=\"preserve\">%s</w:t></w:r></w:p>\n",
		xmlEscape(text))
}

// Table emits a bordered table with a shaded, bold header row, followed by
// the spacer paragraph Word expects after a table.
func (w *Writer) Table(headers []string, rows [][]string) {
	w.body.WriteString("    <w:tbl>\n")
	w.body.WriteString(`      <w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/></w:tblPr>` + "\n")

	w.body.WriteString("      <w:tr>")
	for _, h := range headers {
		fmt.Fprintf(&w.body, `<w:tc><w:tcPr><w:shd w:val="clear" w:color="auto" w:fill="E7E6E6"/></w:tcPr><w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p></w:tc>`,
			xmlEscape(h))
	}
	w.body.WriteString("</w:tr>\n")

	for _, row := range rows {
		w.body.WriteString("      <w:tr>")
		for _, cell := range row {
			fmt.Fprintf(&w.body, `<w:tc><w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p></w:tc>`,
				xmlEscape(cell))
		}
		w.body.WriteString("</w:tr>\n")
	}

	w.body.WriteString("    </w:tbl>\n    <w:p/>\n")
}

// Image embeds a decoded image as a centered inline drawing. Dimensions are
// in EMU, already scaled by the caller.
func (w *Writer) Image(data []byte, ext string, widthEmu, heightEmu int64) {
	idx := len(w.images) + 1
	name := fmt.Sprintf("image%d.%s", idx, ext)
	w.images = append(w.images, imagePart{name: name, data: data})

	// rId1/rId2 are styles and numbering, images start at rId3.
	relID := fmt.Sprintf("rId%d", idx+2)
	fmt.Fprintf(&w.body, `    <w:p>
      <w:pPr><w:jc w:val="center"/></w:pPr>
      <w:r>
        <w:drawing>
          <wp:inline distT="0" distB="0" distL="0" distR="0">
            <wp:extent cx="%d" cy="%d"/>
            <wp:docPr id="%d" name="%s"/>
            <a:graphic>
              <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">
                <pic:pic>
                  <pic:nvPicPr>
                    <pic:cNvPr id="%d" name="%s"/>
                    <pic:cNvPicPr/>
                  </pic:nvPicPr>
                  <pic:blipFill>
                    <a:blip r:embed="%s"/>
                    <a:stretch><a:fillRect/></a:stretch>
                  </pic:blipFill>
                  <pic:spPr>
                    <a:xfrm>
                      <a:off x="0" y="0"/>
                      <a:ext cx="%d" cy="%d"/>
                    </a:xfrm>
                    <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
                  </pic:spPr>
                </pic:pic>
              </a:graphicData>
            </a:graphic>
          </wp:inline>
        </w:drawing>
      </w:r>
    </w:p>
`, widthEmu, heightEmu, idx, name, idx, name, relID, widthEmu, heightEmu)
}

// Bytes packs every part into the DOCX zip container.
func (w *Writer) Bytes() ([]byte, error) {
	out := new(bytes.Buffer)
	zw := zip.NewWriter(out)

	var mediaRels strings.Builder
	for i, img := range w.images {
		fmt.Fprintf(&mediaRels, `  <Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>
`, i+3, img.name)
	}

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(wordRelsHeader + mediaRels.String() + "</Relationships>")},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/numbering.xml", []byte(numberingXML)},
		{"word/document.xml", []byte(documentHeader + w.body.String() + documentFooter)},
	}
	for _, img := range w.images {
		parts = append(parts, struct {
			name    string
			content []byte
		}{"word/media/" + img.name, img.data})
	}

	for _, p := range parts {
		entry, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := entry.Write(p.content); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx container: %w", err)
	}
	return out.Bytes(), nil
}
