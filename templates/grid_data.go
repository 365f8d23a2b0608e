package templates

import "strings"

// GridLink is one entry of the grid index.
type GridLink struct {
	Name  string
	Title string
}

// GridIndexData is the view of GET /grids.
type GridIndexData struct {
	Grids []GridLink
}

// OptionView is one choice of a select filter.
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// FilterView is the filter control of one column. Type is empty when the
// column is not filterable.
type FilterView struct {
	Type    string
	Value   string
	From    string
	To      string
	Options []OptionView
}

type ColumnView struct {
	Key      string
	Header   string
	Sortable bool
	SortDir  string
	Width    int
	Filter   FilterView
}

// ColumnToggle is one entry of the column checklist.
type ColumnToggle struct {
	Key     string
	Header  string
	Visible bool
}

type CellView struct {
	Text  string
	Class string
}

type DetailView struct {
	Label string
	Value string
}

type RowView struct {
	Key        string
	Class      string
	Cells      []CellView
	Selectable bool
	Selected   bool
	Expanded   bool
	Detail     []DetailView
}

// Header checkbox states.
const (
	HeaderUnchecked     = "unchecked"
	HeaderChecked       = "checked"
	HeaderIndeterminate = "indeterminate"
)

// GridData is everything GridContent renders.
type GridData struct {
	Name  string
	Title string

	Search               string
	GlobalFilter         bool
	ColumnsVisibleOption bool
	DataExport           bool
	ExportFormats        []string
	RowColHighlight      bool
	// Settings groups the column and page-size controls in one menu.
	Settings             bool

	Selectable    bool
	HeaderState   string
	SelectedCount int
	Expandable    bool

	Columns       []ColumnView
	ColumnToggles []ColumnToggle
	Rows          []RowView

	Pagination bool
	Page       int
	TotalPages int
	PageSize   int
	PageSizes  []int
	CanPrev    bool
	CanNext    bool
	Summary    string
	// Scroll bounds the table height when unpaginated rows overflow it.
	Scroll     bool
}

// ID is the element id of the grid container.
func (d GridData) ID() string { return "grid-" + d.Name }

// URL joins path segments under the grid's route.
func (d GridData) URL(parts ...string) string {
	return "/grids/" + d.Name + "/" + strings.Join(parts, "/")
}

// ColSpan counts every rendered column, including the checkbox and expand
// columns, so detail and empty rows span the whole table.
func (d GridData) ColSpan() int {
	n := len(d.Columns)
	if d.Selectable {
		n++
	}
	if d.Expandable {
		n++
	}
	return max(n, 1)
}
