package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ai-reportgen-be/pkg/markdown"
)

// Dataset is the parsed form of one uploaded spreadsheet: ordered column
// headers and an ordered sequence of flat header->value records. The rest
// of the system only ever sees this shape, never the source file.
type Dataset struct {
	Headers []string         `json:"headers"`
	Records []map[string]any `json:"records"`
}

// Parse dispatches on the upload's file extension.
func Parse(filename string, r io.Reader) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ParseXLSX(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected .xlsx or .csv", filepath.Ext(filename))
	}
}

// ParseXLSX reads the first sheet of a workbook. Row 1 supplies the
// headers, every following row becomes one record. Cell values go through
// the shared numeric coercion so charts built on ingested columns behave
// like charts built on generated tables.
func ParseXLSX(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows)
}

// ParseCSV reads a comma-separated upload with the same header/record rules
// as ParseXLSX. Ragged rows are tolerated.
func ParseCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("upload is empty")
	}

	headers := normalizeHeaders(rows[0])
	if len(headers) == 0 {
		return nil, fmt.Errorf("header row is empty")
	}

	ds := &Dataset{Headers: headers}
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		rec := make(map[string]any, len(headers))
		for i, h := range headers {
			cell := ""
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			rec[h] = markdown.CoerceCell(cell)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// normalizeHeaders trims the header row, names blank columns positionally
// and disambiguates duplicates so records never silently overwrite a key.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, 0, len(raw))
	seen := map[string]int{}
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		if n := seen[h]; n > 0 {
			seen[h] = n + 1
			h = fmt.Sprintf("%s %d", h, n+1)
		}
		seen[h]++
		headers = append(headers, h)
	}
	return headers
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Truncate bounds the record list to the first n rows; the generation
// service never sees more than its prefix budget.
func (d *Dataset) Truncate(n int) *Dataset {
	if n < 0 || len(d.Records) <= n {
		return d
	}
	return &Dataset{Headers: d.Headers, Records: d.Records[:n]}
}
