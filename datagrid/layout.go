package datagrid

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Pixel metrics used to turn measured text widths into column widths.
const (
	charWidthPx   = 8
	cellPaddingPx = 32
)

// ── Visibility ──────────────────────────────────────────────────────────

// IsColumnVisible reports whether key is shown.
func (g *Grid[T]) IsColumnVisible(key string) bool { return g.visible[key] }

// SetColumnVisible shows or hides a column.
func (g *Grid[T]) SetColumnVisible(key string, visible bool) error {
	if _, ok := g.Column(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	g.visible[key] = visible
	return nil
}

// ToggleColumn flips a column's visibility.
func (g *Grid[T]) ToggleColumn(key string) error {
	return g.SetColumnVisible(key, !g.visible[key])
}

// VisibleColumns returns the shown columns in declaration order. Hidden
// columns are neither rendered nor exported.
func (g *Grid[T]) VisibleColumns() []Column[T] {
	out := make([]Column[T], 0, len(g.columns))
	for _, col := range g.columns {
		if g.visible[col.Key] {
			out = append(out, col)
		}
	}
	return out
}

// ── Widths ──────────────────────────────────────────────────────────────

// ColumnWidth returns the assigned pixel width of key, or 0 when none has
// been assigned yet.
func (g *Grid[T]) ColumnWidth(key string) int { return g.widths[key] }

// ResizeColumn applies a drag delta to a column width, never going below
// MinColumnWidth. A column without a width is measured first.
func (g *Grid[T]) ResizeColumn(key string, delta int) (int, error) {
	col, ok := g.Column(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	base, ok := g.widths[key]
	if !ok {
		base = g.measure(col, g.PageRows())
	}
	w := max(base+delta, MinColumnWidth)
	g.widths[key] = w
	return w, nil
}

// AutoSizeColumns assigns a width to every visible column that has none,
// measured from the widest rendered cell on the current page with the
// header as a floor. Columns that already have a width keep it, so later
// page changes never undo a resize.
func (g *Grid[T]) AutoSizeColumns() {
	var rows []T
	for _, col := range g.VisibleColumns() {
		if _, ok := g.widths[col.Key]; ok {
			continue
		}
		if rows == nil {
			rows = g.PageRows()
		}
		g.widths[col.Key] = g.measure(col, rows)
	}
}

func (g *Grid[T]) measure(col Column[T], rows []T) int {
	chars := runewidth.StringWidth(col.Header)
	for _, row := range rows {
		chars = max(chars, runewidth.StringWidth(CellText(col, row)))
	}
	return max(chars*charWidthPx+cellPaddingPx, MinColumnWidth)
}

// ── Export ──────────────────────────────────────────────────────────────

// Table is a format-neutral snapshot of grid content.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ExportTable snapshots every filtered and sorted row, not just the current
// page, over the visible columns.
func (g *Grid[T]) ExportTable() Table {
	cols := g.VisibleColumns()
	t := Table{Headers: make([]string, len(cols))}
	for i, col := range cols {
		t.Headers[i] = col.Header
	}
	for _, row := range g.Sorted() {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = CellText(col, row)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
