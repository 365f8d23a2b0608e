package services

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateGridPDF renders table as a landscape A4 document: a title, a
// shaded header row and one row per record. The page grid has one slot per
// column so every column gets equal width.
func GenerateGridPDF(table ExportTable) ([]byte, error) {
	gridSize := max(len(table.Headers), 1)

	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithMaxGridSize(gridSize).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addGridTitle(m, table.Title, gridSize)
	if len(table.Headers) > 0 {
		addGridHeader(m, table.Headers)
		for i, r := range table.Rows {
			addGridRow(m, table.Headers, r, i%2 == 1)
		}
	}
	if len(table.Rows) == 0 {
		m.AddRows(
			row.New(8).Add(
				col.New(gridSize).Add(text.New("No data", props.Text{Size: 8, Align: align.Center})),
			),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addGridTitle(m core.Maroto, title string, gridSize int) {
	if title == "" {
		title = "Export"
	}
	m.AddRows(
		row.New(12).Add(
			col.New(gridSize).Add(
				text.New(title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
		row.New(6).Add(
			col.New(gridSize).Add(
				text.New(fmt.Sprintf("Generated on %s", time.Now().Format("02 Jan 2006 15:04")), props.Text{
					Size:  7,
					Align: align.Left,
					Color: &props.Color{Red: 140, Green: 140, Blue: 140},
				}),
			),
		),
		row.New(4),
	)
}

func addGridHeader(m core.Maroto, headers []string) {
	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 51, Green: 51, Blue: 51}}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Left:  1,
		Top:   1.5,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	cols := make([]core.Col, len(headers))
	for i, h := range headers {
		cols[i] = col.New(1).Add(text.New(h, headerText)).WithStyle(&headerCell)
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addGridRow(m core.Maroto, headers, cells []string, alt bool) {
	cellText := props.Text{Size: 7, Align: align.Left, Left: 1, Top: 1.5}

	var style *props.Cell
	if alt {
		style = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	}

	cols := make([]core.Col, len(headers))
	for i := range headers {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		c := col.New(1).Add(text.New(value, cellText))
		if style != nil {
			c = c.WithStyle(style)
		}
		cols[i] = c
	}
	m.AddRows(row.New(7).Add(cols...))
}
