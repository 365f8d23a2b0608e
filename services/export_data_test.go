package services

import (
	"errors"
	"testing"
	"time"
)

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, 5, 17, 9, 4, 5, 0, time.UTC)
	tests := []struct {
		ext  string
		want string
	}{
		{"csv", "export_20240517T090405.csv"},
		{".xlsx", "export_20240517T090405.xlsx"},
		{"pdf", "export_20240517T090405.pdf"},
	}
	for _, tt := range tests {
		if got := ExportFilename(tt.ext, at); got != tt.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestExportContentType(t *testing.T) {
	for _, format := range []string{"csv", "xlsx", "pdf"} {
		if ct, err := ExportContentType(format); err != nil || ct == "" {
			t.Errorf("ExportContentType(%q) = %q, %v", format, ct, err)
		}
	}
	if _, err := ExportContentType("docx"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestGenerateExport(t *testing.T) {
	table := sampleTable()
	for _, format := range []string{"csv", "xlsx", "pdf"} {
		b, err := GenerateExport(format, table)
		if err != nil {
			t.Errorf("GenerateExport(%q) error = %v", format, err)
			continue
		}
		if len(b) == 0 {
			t.Errorf("GenerateExport(%q) returned empty bytes", format)
		}
	}
	if _, err := GenerateExport("txt", table); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
