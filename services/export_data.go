package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownFormat is returned for export formats other than csv, xlsx and pdf.
var ErrUnknownFormat = errors.New("unknown export format")

// ExportTable is a format-neutral snapshot of a grid: visible column headers
// and one row of cell text per filtered and sorted record.
type ExportTable struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// exportTimestampLayout is a compact ISO-8601 basic timestamp, shared by every
// export format so files from one export session sort together.
const exportTimestampLayout = "20060102T150405"

// ExportTimestamp formats t for use in export file names.
func ExportTimestamp(t time.Time) string {
	return t.Format(exportTimestampLayout)
}

// ExportFilename returns export_<timestamp>.<ext>.
func ExportFilename(ext string, t time.Time) string {
	return fmt.Sprintf("export_%s.%s", ExportTimestamp(t), strings.TrimPrefix(ext, "."))
}

// ExportContentType returns the MIME type served for an export format.
func ExportContentType(format string) (string, error) {
	switch format {
	case "csv":
		return "text/csv; charset=utf-8", nil
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case "pdf":
		return "application/pdf", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// GenerateExport renders table in the given format.
func GenerateExport(format string, table ExportTable) ([]byte, error) {
	switch format {
	case "csv":
		return GenerateCSV(table), nil
	case "xlsx":
		return GenerateGridExcel(table)
	case "pdf":
		return GenerateGridPDF(table)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
