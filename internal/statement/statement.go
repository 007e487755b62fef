// Package statement handles local statement files before they go to the
// server: directory scans and a quick CSV preview. All real parsing and
// classification happens server-side; nothing here blocks an upload.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the statement file format, detected from the extension.
type Kind string

const (
	KindCSV     Kind = "csv"
	KindPDF     Kind = "pdf"
	KindExcel   Kind = "excel"
	KindUnknown Kind = "unknown"
)

// DetectKind maps a file name to its statement kind.
func DetectKind(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return KindCSV
	case ".pdf":
		return KindPDF
	case ".xlsx", ".xls":
		return KindExcel
	default:
		return KindUnknown
	}
}

// FileInfo describes a statement file found by Scan.
type FileInfo struct {
	Name string
	Path string
	Kind Kind
	Size int64
}

// Scan returns importable statement files in dir, skipping subdirectories
// and unknown formats. A missing directory yields no files.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading statement dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		kind := DetectKind(e.Name())
		if kind == KindUnknown {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Kind: kind,
			Size: info.Size(),
		})
	}
	return files, nil
}

// PreviewRow is one parsed row of a CSV preview.
type PreviewRow struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

const previewDateFormat = "2006-01-02"

// PreviewCSV parses up to n data rows of a generic date,description,amount
// CSV so the user can sanity-check the file before uploading. Rows that do
// not parse are skipped; this is advisory only.
func PreviewCSV(r io.Reader, n int) ([]PreviewRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var rows []PreviewRow
	for _, rec := range records[1:] {
		if len(rows) >= n {
			break
		}
		if len(rec) < 3 {
			continue
		}
		date, err := time.Parse(previewDateFormat, rec[0])
		if err != nil {
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			continue
		}
		rows = append(rows, PreviewRow{Date: date, Description: rec[1], Amount: amount})
	}
	return rows, nil
}
