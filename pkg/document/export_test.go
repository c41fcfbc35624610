package document

import (
	"strings"
	"testing"
)

func TestExportTableModeRoundTrips(t *testing.T) {
	c := newTestController(t, twoTableDoc)
	if got := c.ExportMarkdown(); got != twoTableDoc {
		t.Errorf("table-mode export should reproduce the source exactly\ngot:  %q\nwant: %q", got, twoTableDoc)
	}
}

func TestExportChartModeSubstitutesImage(t *testing.T) {
	c := newTestController(t, twoTableDoc)
	if _, err := c.SetTableView(0, "pie"); err != nil {
		t.Fatal(err)
	}
	got := c.ExportMarkdown()

	if !strings.Contains(got, "![Chart](data:image/png;base64,") {
		t.Error("chart-mode table should export as an embedded image")
	}
	if strings.Contains(got, "| Category |") {
		t.Error("substituted table markdown leaked into the export")
	}
	if strings.Contains(got, "chart-options") {
		t.Error("the annotation comment belongs to the substituted block")
	}
	if !strings.Contains(got, "| Region |") {
		t.Error("table-mode table should stay literal markdown")
	}
	if c.Text() != twoTableDoc {
		t.Error("export must never mutate the authoritative text")
	}
}

func TestExportFailedCaptureFallsBackToTable(t *testing.T) {
	doc := "| Category | Count |\n| --- | --- |\n| A | 0 |\n"
	c := newTestController(t, doc)
	if _, err := c.SetTableView(0, "pie"); err != nil {
		t.Fatal(err)
	}
	// An all-zero pie cannot be rasterized; the block stays literal.
	if got := c.ExportMarkdown(); got != doc {
		t.Errorf("failed capture should fall back to the table\ngot: %q", got)
	}
}

func TestExportInEditModeKeepsAllTables(t *testing.T) {
	c := newTestController(t, twoTableDoc)
	if _, err := c.SetTableView(0, "pie"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetMode(ModeEdit); err != nil {
		t.Fatal(err)
	}
	// No toggles are mounted in edit mode, so nothing gets substituted.
	if got := c.ExportMarkdown(); got != twoTableDoc {
		t.Errorf("edit-mode export should reproduce the source, got %q", got)
	}
}

func TestExportFilename(t *testing.T) {
	cases := []struct {
		title, ext, want string
	}{
		{"Survey Results", "docx", "Survey Results.docx"},
		{"Survey: Results!", "docx", "Survey Results.docx"},
		{"", "pdf", "document.pdf"},
		{"   ", "pdf", "document.pdf"},
		{"../../etc/passwd", "docx", "etcpasswd.docx"},
		{"Q1-Report", ".pdf", "Q1-Report.pdf"},
	}
	for _, c := range cases {
		if got := ExportFilename(c.title, c.ext); got != c.want {
			t.Errorf("ExportFilename(%q, %q) = %q, want %q", c.title, c.ext, got, c.want)
		}
	}
}
