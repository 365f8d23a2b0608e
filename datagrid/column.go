// Package datagrid implements a headless, generic data grid: filtering,
// sorting, pagination, row selection and expansion, column visibility and
// widths, and export snapshots over a host-supplied slice of rows.
//
// The grid never mutates rows and performs no I/O of its own. Data and
// callbacks come from the host; the host decides how the grid is rendered.
package datagrid

// FilterType is the kind of per-column filter a column offers.
type FilterType string

const (
	FilterNone         FilterType = ""
	FilterInput        FilterType = "input"
	FilterSingleSelect FilterType = "singleSelect"
	FilterMultiSelect  FilterType = "multiSelect"
	FilterDate         FilterType = "date"
	FilterDateRange    FilterType = "dateRange"
)

// Valid reports whether f is one of the known filter types.
func (f FilterType) Valid() bool {
	switch f {
	case FilterNone, FilterInput, FilterSingleSelect, FilterMultiSelect, FilterDate, FilterDateRange:
		return true
	}
	return false
}

// ColumnKind distinguishes columns backed by a row field from columns whose
// content is computed entirely by a render function.
type ColumnKind int

const (
	KindField ColumnKind = iota
	KindComputed
)

// FilterParams supplies explicit options for select-style filters.
// LabelMap maps an option value to the label shown to the user.
type FilterParams struct {
	Options  []string
	LabelMap map[string]string
}

// MapRow is the row shape used when rows come from a record store.
type MapRow = map[string]any

// Column describes one grid column over rows of type T.
//
// Field columns read their raw value through an accessor; computed columns
// only have a Render function and never perform a raw field lookup.
type Column[T any] struct {
	Key          string
	Header       string
	Kind         ColumnKind
	Sortable     bool
	Filter       FilterType
	FilterParams *FilterParams
	Class        string
	ClassFunc    func(row T) string
	Render       func(row T) any
	Hidden       bool
	Width        int

	value func(row T) any
}

// Field returns a column that reads its raw value with value.
func Field[T any](key, header string, value func(row T) any) Column[T] {
	return Column[T]{Key: key, Header: header, Kind: KindField, value: value}
}

// Computed returns a column whose content comes only from render.
func Computed[T any](key, header string, render func(row T) any) Column[T] {
	return Column[T]{Key: key, Header: header, Kind: KindComputed, Render: render}
}

// MapField returns a field column that looks key up in a MapRow.
func MapField(key, header string) Column[MapRow] {
	return Field(key, header, func(row MapRow) any {
		if row == nil {
			return nil
		}
		return row[key]
	})
}

// WithSortable marks the column as sortable.
func (c Column[T]) WithSortable() Column[T] {
	c.Sortable = true
	return c
}

// WithFilter sets the filter type and, optionally, explicit options.
func (c Column[T]) WithFilter(ft FilterType, options ...string) Column[T] {
	c.Filter = ft
	if len(options) > 0 {
		if c.FilterParams == nil {
			c.FilterParams = &FilterParams{}
		}
		c.FilterParams.Options = options
	}
	return c
}

// WithLabels sets the option label map used by select filters.
func (c Column[T]) WithLabels(labels map[string]string) Column[T] {
	if c.FilterParams == nil {
		c.FilterParams = &FilterParams{}
	}
	c.FilterParams.LabelMap = labels
	return c
}

// WithRender sets the render function. On field columns the raw value is
// still used for sorting and filtering.
func (c Column[T]) WithRender(render func(row T) any) Column[T] {
	c.Render = render
	return c
}

// WithClass sets a static cell class.
func (c Column[T]) WithClass(class string) Column[T] {
	c.Class = class
	return c
}

// WithClassFunc sets a per-row cell class.
func (c Column[T]) WithClassFunc(fn func(row T) string) Column[T] {
	c.ClassFunc = fn
	return c
}

// HiddenByDefault makes the column start hidden.
func (c Column[T]) HiddenByDefault() Column[T] {
	c.Hidden = true
	return c
}

// WithWidth sets an explicit pixel width, which disables auto-sizing.
func (c Column[T]) WithWidth(px int) Column[T] {
	c.Width = px
	return c
}

// Raw returns the raw cell value. Computed columns have no raw value.
func (c Column[T]) Raw(row T) any {
	if c.Kind == KindComputed || c.value == nil {
		return nil
	}
	return c.value(row)
}

// Rendered returns the render output, or the raw value if the column has no
// render function.
func (c Column[T]) Rendered(row T) any {
	if c.Render != nil {
		return c.Render(row)
	}
	return c.Raw(row)
}

// CellClass joins the static and per-row classes.
func (c Column[T]) CellClass(row T) string {
	if c.ClassFunc == nil {
		return c.Class
	}
	extra := c.ClassFunc(row)
	switch {
	case extra == "":
		return c.Class
	case c.Class == "":
		return extra
	}
	return c.Class + " " + extra
}

// filterSource is the value column filters read: the raw value for field
// columns, the render output for computed ones.
func (c Column[T]) filterSource(row T) any {
	if c.Kind == KindComputed {
		if c.Render == nil {
			return nil
		}
		return c.Render(row)
	}
	return c.Raw(row)
}
