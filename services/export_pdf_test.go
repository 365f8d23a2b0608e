package services

import (
	"strings"
	"testing"
)

func TestGenerateGridPDF_Basic(t *testing.T) {
	result, err := GenerateGridPDF(sampleTable())
	if err != nil {
		t.Fatalf("GenerateGridPDF() error = %v", err)
	}
	if len(result) < 5 || string(result[:5]) != "%PDF-" {
		t.Fatalf("result does not start with PDF header")
	}
}

func TestGenerateGridPDF_Empty(t *testing.T) {
	result, err := GenerateGridPDF(ExportTable{})
	if err != nil {
		t.Fatalf("GenerateGridPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateGridPDF() returned empty bytes")
	}
}

func TestGenerateGridPDF_ManyRowsAndRaggedCells(t *testing.T) {
	table := ExportTable{Title: "Fuel Bills", Headers: []string{"Card", "Vehicle", "Amount", "Date"}}
	for i := 0; i < 120; i++ {
		table.Rows = append(table.Rows, []string{"4111", strings.Repeat("V", i%7)})
	}

	result, err := GenerateGridPDF(table)
	if err != nil {
		t.Fatalf("GenerateGridPDF() error = %v", err)
	}
	if string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header")
	}
}
