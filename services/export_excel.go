package services

import (
	"bytes"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

const (
	minExcelColWidth = 8
	maxExcelColWidth = 60
)

// GenerateGridExcel writes table to a single-sheet workbook: a bold, shaded
// header row followed by the data rows, every cell bordered.
func GenerateGridExcel(table ExportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are limited to 31 characters.
	sheetName := table.Title
	if sheetName == "" {
		sheetName = "Export"
	}
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// ── Styles ──────────────────────────────────────────────────────────

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		Alignment: &excelize.Alignment{
			Vertical: "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create data style: %w", err)
	}

	if len(table.Headers) == 0 {
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return nil, fmt.Errorf("write excel: %w", err)
		}
		return buf.Bytes(), nil
	}
	lastCol := columnLetter(len(table.Headers) - 1)

	// ── Row 1: Column headers ───────────────────────────────────────────

	widths := make([]int, len(table.Headers))
	for i, h := range table.Headers {
		f.SetCellValue(sheetName, columnLetter(i)+"1", sanitizeExcelCell(h))
		widths[i] = runewidth.StringWidth(h)
	}
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	// ── Data rows ───────────────────────────────────────────────────────

	for rowIdx, r := range table.Rows {
		rowStr := fmt.Sprintf("%d", rowIdx+2)
		for colIdx := range table.Headers {
			value := ""
			if colIdx < len(r) {
				value = r[colIdx]
			}
			f.SetCellValue(sheetName, columnLetter(colIdx)+rowStr, sanitizeExcelCell(value))
			widths[colIdx] = max(widths[colIdx], runewidth.StringWidth(value))
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, dataStyle)
	}

	// ── Column widths from content ──────────────────────────────────────

	for i, w := range widths {
		letter := columnLetter(i)
		width := float64(min(max(w+2, minExcelColWidth), maxExcelColWidth))
		if err := f.SetColWidth(sheetName, letter, letter, width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", letter, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

// columnLetter converts a 0-based column index to an Excel column letter (A, B, ..., Z, AA, ...).
func columnLetter(index int) string {
	name := ""
	for index >= 0 {
		name = string(rune('A'+index%26)) + name
		index = index/26 - 1
	}
	return name
}
