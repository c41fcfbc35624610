package docx

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
)

func unzipParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip container: %v", err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		parts[f.Name] = string(raw)
	}
	return parts
}

func documentXML(t *testing.T, text string) (map[string]string, string) {
	t.Helper()
	out, err := Convert(text)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	parts := unzipParts(t, out)
	doc, ok := parts["word/document.xml"]
	if !ok {
		t.Fatal("word/document.xml missing from container")
	}
	return parts, doc
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestConvertContainerParts(t *testing.T) {
	parts, _ := documentXML(t, "# Title\n")
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/numbering.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("container is missing %s", name)
		}
	}
	if !strings.Contains(parts["word/styles.xml"], `w:styleId="Heading1"`) {
		t.Error("styles part should define Heading1")
	}
}

func TestConvertHeadings(t *testing.T) {
	_, doc := documentXML(t, "# One\n## Two\n### Three\n#### Four\n")
	for lvl := 1; lvl <= 3; lvl++ {
		if !strings.Contains(doc, fmt.Sprintf(`w:val="Heading%d"`, lvl)) {
			t.Errorf("missing Heading%d style reference", lvl)
		}
	}
	if strings.Contains(doc, `w:val="Heading4"`) {
		t.Error("level-4 headings are not supported and should render as text")
	}
	if !strings.Contains(doc, "#### Four") {
		t.Error("the level-4 line should survive as a plain paragraph")
	}
}

func TestConvertInlineFormatting(t *testing.T) {
	_, doc := documentXML(t, "This is **bold** and *italic* and `mono` text.\n")
	if !strings.Contains(doc, "<w:b/>") {
		t.Error("bold run missing")
	}
	if !strings.Contains(doc, "<w:i/>") {
		t.Error("italic run missing")
	}
	if !strings.Contains(doc, `w:ascii="Consolas"`) {
		t.Error("code run should switch to a monospace font")
	}
	if strings.Contains(doc, "**") {
		t.Error("formatting markers leaked into the output text")
	}
}

func TestConvertTable(t *testing.T) {
	text := "| Name | Score |\n| --- | --- |\n| Anna | 9 |\n| shortrow |\n| Ben | 7 |\n"
	_, doc := documentXML(t, text)
	if !strings.Contains(doc, "<w:tbl>") {
		t.Fatal("no table emitted")
	}
	if !strings.Contains(doc, `w:fill="E7E6E6"`) {
		t.Error("header row should be shaded")
	}
	if !strings.Contains(doc, "<w:rPr><w:b/></w:rPr><w:t xml:space=\"preserve\">Name</w:t>") {
		t.Error("header cells should be bold")
	}
	if strings.Contains(doc, "---") {
		t.Error("the separator row must be discarded")
	}
	if strings.Contains(doc, "shortrow") {
		t.Error("rows with the wrong cell count must be dropped")
	}
	if !strings.Contains(doc, ">Ben<") {
		t.Error("rows after a dropped row must still render")
	}
}

func TestConvertMalformedTableDegradesToText(t *testing.T) {
	text := "| A | A |\n| --- | --- |\n| 1 | 2 |\n"
	_, doc := documentXML(t, text)
	if strings.Contains(doc, "<w:tbl>") {
		t.Error("duplicate headers make the table malformed; it must not render as a table")
	}
	if !strings.Contains(doc, "| A | A |") {
		t.Error("the malformed block should degrade to literal paragraphs")
	}
}

func TestConvertImage(t *testing.T) {
	uri := pngDataURI(t, 20, 10)
	parts, doc := documentXML(t, "![Survey response chart]("+uri+")\n")

	if _, ok := parts["word/media/image1.png"]; !ok {
		t.Fatal("image payload missing from word/media/")
	}
	if !strings.Contains(parts["word/_rels/document.xml.rels"], `Id="rId3"`) {
		t.Error("first image should be wired as rId3")
	}
	if !strings.Contains(doc, `r:embed="rId3"`) {
		t.Error("drawing should reference the image relationship")
	}
	// 20x10 px fits the box, so the natural size is kept: EMU = px * 9525.
	if !strings.Contains(doc, fmt.Sprintf(`cx="%d"`, 20*emuPerPixel)) {
		t.Error("small images must keep their natural width, never upscale")
	}
	if !strings.Contains(doc, `w:val="Caption"`) {
		t.Error("a non-placeholder alt should emit a caption")
	}
	if !strings.Contains(doc, "Survey response chart") {
		t.Error("caption text missing")
	}
}

func TestConvertChartPlaceholderAltHasNoCaption(t *testing.T) {
	uri := pngDataURI(t, 20, 10)
	_, doc := documentXML(t, "![Chart]("+uri+")\n")
	if strings.Contains(doc, `w:val="Caption"`) {
		t.Error("the substitution placeholder alt must not produce a caption")
	}
}

func TestConvertImageScalesDownOversized(t *testing.T) {
	uri := pngDataURI(t, 1200, 300)
	_, doc := documentXML(t, "![Chart]("+uri+")\n")
	// 1200px is twice the printable width; expect a proportional fit.
	wantCx := int64(maxImageWpx * emuPerPixel)
	wantCy := int64(300.0 * (maxImageWpx / 1200.0) * emuPerPixel)
	if !strings.Contains(doc, fmt.Sprintf(`cx="%d"`, wantCx)) {
		t.Errorf("width should clamp to the printable box (cx=%d)", wantCx)
	}
	if !strings.Contains(doc, fmt.Sprintf(`cy="%d"`, wantCy)) {
		t.Errorf("height should scale with the same factor (cy=%d)", wantCy)
	}
}

func TestConvertBadImageDegrades(t *testing.T) {
	_, doc := documentXML(t, "before\n\n![diagram](data:image/png;base64,@@not-base64@@)\n\nafter\n")
	if !strings.Contains(doc, "[Image: diagram]") {
		t.Error("undecodable image should fall back to an italic placeholder")
	}
	if !strings.Contains(doc, ">after<") {
		t.Error("content after a broken image must still export")
	}
}

func TestConvertListsAndComments(t *testing.T) {
	text := "- first\n* second\n3. third\n\n<!-- Toggle: Switch to Chart [Count] -->\n"
	_, doc := documentXML(t, text)
	if !strings.Contains(doc, `<w:numId w:val="1"/>`) {
		t.Error("bullets should use the bullet numbering definition")
	}
	if !strings.Contains(doc, ">3. <") {
		t.Error("numbered lines keep their literal ordinal")
	}
	if strings.Contains(doc, "Toggle: Switch") {
		t.Error("comment lines must not render")
	}
}

func TestConvertUnwrapsEditableSpans(t *testing.T) {
	_, doc := documentXML(t, "<EDITABLE span-id='s1'>The **key** finding.</EDITABLE>\n")
	if strings.Contains(doc, "EDITABLE") {
		t.Error("editable tags must be unwrapped before formatting")
	}
	if !strings.Contains(doc, ">key<") || !strings.Contains(doc, "<w:b/>") {
		t.Error("inner text should participate in inline formatting")
	}
}

func TestConvertAccumulatesParagraphAcrossLines(t *testing.T) {
	_, doc := documentXML(t, "first line\nsecond line\n\nnext para\n")
	if !strings.Contains(doc, "first line second line") {
		t.Error("consecutive text lines join into one paragraph until a blank line")
	}
}
