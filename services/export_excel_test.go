package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleTable() ExportTable {
	return ExportTable{
		Title:   "Employees",
		Headers: []string{"Name", "Department", "Status"},
		Rows: [][]string{
			{"Asha Rao", "Finance", "active"},
			{"=HYPERLINK(\"x\")", "Fleet", "inactive"},
		},
	}
}

func TestGenerateGridExcel_HeaderAndRows(t *testing.T) {
	result, err := GenerateGridExcel(sampleTable())
	if err != nil {
		t.Fatalf("GenerateGridExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Employees" {
		t.Fatalf("expected sheet 'Employees', got %v", sheets)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (header + 2), got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][2] != "Status" {
		t.Errorf("unexpected header row %v", rows[0])
	}
	if rows[1][1] != "Finance" {
		t.Errorf("expected B2 'Finance', got %q", rows[1][1])
	}
	if rows[2][0] != "'=HYPERLINK(\"x\")" {
		t.Errorf("formula not sanitized: %q", rows[2][0])
	}
}

func TestGenerateGridExcel_HeaderStyle(t *testing.T) {
	result, err := GenerateGridExcel(sampleTable())
	if err != nil {
		t.Fatalf("GenerateGridExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	styleID, err := f.GetCellStyle("Employees", "B1")
	if err != nil {
		t.Fatalf("GetCellStyle() error = %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle() error = %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Error("expected bold header font")
	}
	if len(style.Fill.Color) == 0 || style.Fill.Color[0] != "333333" && style.Fill.Color[0] != "#333333" {
		t.Errorf("expected #333333 header fill, got %v", style.Fill.Color)
	}
	if len(style.Border) != 4 {
		t.Errorf("expected 4 borders on header, got %d", len(style.Border))
	}
}

func TestGenerateGridExcel_Empty(t *testing.T) {
	result, err := GenerateGridExcel(ExportTable{})
	if err != nil {
		t.Fatalf("GenerateGridExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); sheets[0] != "Export" {
		t.Errorf("expected default sheet name 'Export', got %v", sheets)
	}
}

func TestGenerateGridExcel_LongTitle(t *testing.T) {
	table := sampleTable()
	table.Title = "This is a very long title that exceeds thirty one characters"

	result, err := GenerateGridExcel(table)
	if err != nil {
		t.Fatalf("GenerateGridExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()
	if name := f.GetSheetList()[0]; len(name) > 31 {
		t.Errorf("sheet name too long: %d chars", len(name))
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"normal", "normal"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"-1", "'-1"},
		{"@cmd", "'@cmd"},
		{"|pipe", "'|pipe"},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.input); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		if got := columnLetter(tt.index); got != tt.want {
			t.Errorf("columnLetter(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
