package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cast"

	"gridadmin/config"
	"gridadmin/datagrid"
)

// ErrUnknownGrid is returned when a grid name is not configured.
var ErrUnknownGrid = errors.New("unknown grid")

// GridDef is a configured grid with its columns resolved.
type GridDef struct {
	Name    string
	Config  config.GridConfig
	Columns []datagrid.Column[datagrid.MapRow]
}

// GridRegistry holds every configured grid.
type GridRegistry struct {
	defs map[string]*GridDef
}

// NewGridRegistry resolves the columns of every grid in s. Unknown render
// names are reported as errors.
func NewGridRegistry(s config.Settings) (*GridRegistry, error) {
	r := &GridRegistry{defs: make(map[string]*GridDef, len(s.Grids))}
	for _, name := range s.Names() {
		cfg := s.Grids[name]
		cols, err := buildColumns(cfg)
		if err != nil {
			return nil, fmt.Errorf("grid %q: %w", name, err)
		}
		r.defs[name] = &GridDef{Name: name, Config: cfg, Columns: cols}
	}
	return r, nil
}

// Get looks a grid up by name.
func (r *GridRegistry) Get(name string) (*GridDef, error) {
	d, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrid, name)
	}
	return d, nil
}

// Names returns every grid name in sorted order.
func (r *GridRegistry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Title is the display title, falling back to the grid name.
func (d *GridDef) Title() string {
	if d.Config.Title != "" {
		return d.Config.Title
	}
	return d.Name
}

func buildColumns(cfg config.GridConfig) ([]datagrid.Column[datagrid.MapRow], error) {
	cols := make([]datagrid.Column[datagrid.MapRow], 0, len(cfg.Columns))
	for _, cc := range cfg.Columns {
		render, err := resolveRenderer(cc)
		if err != nil {
			return nil, err
		}

		var col datagrid.Column[datagrid.MapRow]
		if cc.IsComputed() {
			key := cc.Key
			col = datagrid.Computed(cc.Key, cc.Header, func(row datagrid.MapRow) any { return render(row, key) })
		} else {
			col = datagrid.MapField(cc.Key, cc.Header)
			if render != nil {
				key := cc.Key
				col = col.WithRender(func(row datagrid.MapRow) any { return render(row, key) })
			}
		}

		if col.Header == "" {
			col.Header = cc.Key
		}
		if cc.Sortable {
			col = col.WithSortable()
		}
		if cc.Filter != "" {
			col = col.WithFilter(datagrid.FilterType(cc.Filter), cc.Options...)
		}
		if len(cc.LabelMap) > 0 {
			col = col.WithLabels(cc.LabelMap)
		}
		if cc.Class != "" {
			col = col.WithClass(cc.Class)
		}
		if cc.Render == "status_badge" {
			key := cc.Key
			col = col.WithClassFunc(func(row datagrid.MapRow) string { return StatusClass(cast.ToString(row[key])) })
		}
		if cc.Hidden {
			col = col.HiddenByDefault()
		}
		if cc.Width > 0 {
			col = col.WithWidth(cc.Width)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func resolveRenderer(cc config.ColumnConfig) (CellRenderer, error) {
	switch cc.Render {
	case "":
		return nil, nil
	case "status_badge":
		return statusLabel(cc.LabelMap), nil
	}
	r, ok := cellRenderers[cc.Render]
	if !ok {
		return nil, fmt.Errorf("column %q: unknown render %q", cc.Key, cc.Render)
	}
	return r, nil
}

// GridOptions builds engine options for d. store persists pagination when
// the grid asks for it; onDoubleClick and onSelect may be nil.
func (d *GridDef) GridOptions(store datagrid.PageStore, onSelect func([]string, []datagrid.MapRow), onDoubleClick func(datagrid.MapRow)) datagrid.Options[datagrid.MapRow] {
	cfg := d.Config
	opts := datagrid.Options[datagrid.MapRow]{
		Pagination:        cfg.Pagination,
		PageSize:          cfg.PageSize,
		GlobalFilter:      cfg.InputFilter,
		ChainedFilters:    cfg.ChainedFilters,
		PersistenceKey:    cfg.PersistenceKey,
		PersistPagination: cfg.PersistPagination,
		Store:             store,
		RowSelection: datagrid.RowSelection[datagrid.MapRow]{
			Enabled:  cfg.Selectable,
			GetRowID: RowID,
		},
		OnRowSelected:        onSelect,
		OnRowDoubleClick:     onDoubleClick,
		ColumnsVisibleOption: cfg.ColumnsVisible,
		DataExport:           cfg.DataExport,
		RowColHighlight:      cfg.RowColHighlight,
		GridSettings:         cfg.GridSettings,
	}
	if cond := cfg.SelectableWhen; cond != nil {
		opts.RowSelection.IsSelectable = func(row datagrid.MapRow) bool {
			return cond.Allows(cast.ToString(row[cond.Column]))
		}
	}
	if cfg.Expandable {
		fields := cfg.DetailFields
		opts.RowExpandable = datagrid.RowExpandable[datagrid.MapRow]{
			Enabled: true,
			Render:  func(row datagrid.MapRow) any { return d.Detail(row, fields) },
		}
	}
	return opts
}

// DetailItem is one label/value pair of an expanded row.
type DetailItem struct {
	Label string
	Value string
}

// Detail lists the given fields of row as label/value pairs, using each
// column's display text when the field is a configured column.
func (d *GridDef) Detail(row datagrid.MapRow, fields []string) []DetailItem {
	items := make([]DetailItem, 0, len(fields))
	for _, f := range fields {
		label, value := f, ""
		found := false
		for _, col := range d.Columns {
			if col.Key == f {
				label, value = col.Header, datagrid.CellText(col, row)
				found = true
				break
			}
		}
		if !found {
			value = cast.ToString(row[f])
		}
		items = append(items, DetailItem{Label: label, Value: value})
	}
	return items
}

// NewGrid mounts a grid over rows for d.
func (d *GridDef) NewGrid(rows []datagrid.MapRow, opts datagrid.Options[datagrid.MapRow]) *datagrid.Grid[datagrid.MapRow] {
	return datagrid.New(rows, d.Columns, opts)
}

// ToExportTable converts a grid snapshot into an exporter table.
func (d *GridDef) ToExportTable(t datagrid.Table) ExportTable {
	return ExportTable{Title: d.Title(), Headers: t.Headers, Rows: t.Rows}
}
