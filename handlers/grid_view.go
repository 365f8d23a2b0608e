package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"gridadmin/datagrid"
	"gridadmin/services"
	"gridadmin/templates"
)

// exportFormats are offered by the export menu, in order.
var exportFormats = []string{"csv", "xlsx", "pdf"}

// Height of the table region and of one row, used to decide whether an
// unpaginated grid scrolls.
const (
	scrollHeightPx = 600
	rowHeightPx    = 36
)

// errBadRequest marks malformed form or path input.
var errBadRequest = errors.New("bad request")

// HandleGridIndex lists the configured grids.
func HandleGridIndex(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		reg := sessions.Registry()
		var data templates.GridIndexData
		for _, name := range reg.Names() {
			def, err := reg.Get(name)
			if err != nil {
				continue
			}
			data.Grids = append(data.Grids, templates.GridLink{Name: name, Title: def.Title()})
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.GridIndexContent(data)
		} else {
			component = templates.GridIndexPage(data)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleGridView renders a grid. Columns without a width are sized from the
// current page on the first view.
func HandleGridView(app *pocketbase.PocketBase, sessions *SessionStore) func(*core.RequestEvent) error {
	return gridAction(app, sessions, func(e *core.RequestEvent, s *Session) error {
		s.Grid.AutoSizeColumns()
		return nil
	})
}

// openSession resolves the session named by the {grid} path value for the
// requesting client.
func openSession(app *pocketbase.PocketBase, sessions *SessionStore, e *core.RequestEvent) (*Session, error) {
	return sessions.Open(app, GetClientID(e.Request), e.Request.PathValue("grid"))
}

// gridAction wraps a grid mutation: it locks the client's session, reloads
// the collection, runs act and renders the updated grid.
func gridAction(app *pocketbase.PocketBase, sessions *SessionStore, act func(e *core.RequestEvent, s *Session) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s, err := openSession(app, sessions, e)
		if err != nil {
			return gridError(e, err)
		}
		s.Lock()
		defer s.Unlock()

		if err := s.Refresh(app); err != nil {
			log.Printf("grid: could not load %s: %v", s.Def.Name, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to load "+s.Def.Title())
		}
		if err := act(e, s); err != nil {
			return gridError(e, err)
		}
		return renderGrid(e, s)
	}
}

// gridError maps grid errors to responses.
func gridError(e *core.RequestEvent, err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownGrid):
		return ErrorToast(e, http.StatusNotFound, "Grid not found")
	case errors.Is(err, datagrid.ErrUnknownColumn):
		return ErrorToast(e, http.StatusNotFound, "Column not found")
	case errors.Is(err, datagrid.ErrInvalidPage),
		errors.Is(err, datagrid.ErrInvalidPageSize),
		errors.Is(err, services.ErrUnknownFormat),
		errors.Is(err, errBadRequest):
		return ErrorToast(e, http.StatusBadRequest, err.Error())
	}
	log.Printf("grid: request failed: %v", err)
	return ErrorToast(e, http.StatusInternalServerError, "Something went wrong")
}

// renderGrid writes the grid partial for HTMX requests and the full page
// otherwise.
func renderGrid(e *core.RequestEvent, s *Session) error {
	data := buildGridData(s)
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.GridContent(data)
	} else {
		component = templates.GridPage(data)
	}
	return component.Render(e.Request.Context(), e.Response)
}

func buildGridData(s *Session) templates.GridData {
	g := s.Grid
	opts := g.Options()
	data := templates.GridData{
		Name:                 s.Def.Name,
		Title:                s.Def.Title(),
		Search:               g.GlobalFilter(),
		GlobalFilter:         opts.GlobalFilter,
		ColumnsVisibleOption: opts.ColumnsVisibleOption,
		DataExport:           opts.DataExport,
		RowColHighlight:      opts.RowColHighlight,
		Settings:             opts.GridSettings,
		Selectable:           opts.RowSelection.Enabled,
		SelectedCount:        s.SelectedCount,
		Expandable:           opts.RowExpandable.Enabled,
		Pagination:           opts.Pagination,
		Page:                 g.Page(),
		TotalPages:           max(g.TotalPages(), 1),
		PageSize:             g.PageSize(),
		PageSizes:            datagrid.PageSizes,
		CanPrev:              g.CanPrev(),
		CanNext:              g.CanNext(),
		Summary:              g.Summary(),
		Scroll:               g.NeedsScroll(scrollHeightPx, rowHeightPx),
	}
	if opts.DataExport {
		data.ExportFormats = exportFormats
	}

	switch g.HeaderState() {
	case datagrid.Checked:
		data.HeaderState = templates.HeaderChecked
	case datagrid.Indeterminate:
		data.HeaderState = templates.HeaderIndeterminate
	default:
		data.HeaderState = templates.HeaderUnchecked
	}

	sortKey, sortDir := g.Sort()
	visible := g.VisibleColumns()
	for _, col := range visible {
		cv := templates.ColumnView{
			Key:      col.Key,
			Header:   col.Header,
			Sortable: col.Sortable,
			Width:    g.ColumnWidth(col.Key),
			Filter:   buildFilterView(g, col),
		}
		if sortKey == col.Key {
			cv.SortDir = string(sortDir)
		}
		data.Columns = append(data.Columns, cv)
	}
	for _, col := range g.Columns() {
		data.ColumnToggles = append(data.ColumnToggles, templates.ColumnToggle{
			Key:     col.Key,
			Header:  col.Header,
			Visible: g.IsColumnVisible(col.Key),
		})
	}

	for _, entry := range g.PageEntries() {
		row := templates.RowView{
			Key:        entry.Key,
			Class:      g.RowClass(entry.Row),
			Selectable: g.IsSelectable(entry.Row),
			Selected:   g.IsSelected(entry.Key),
			Expanded:   g.IsExpanded(entry.Key),
		}
		for _, col := range visible {
			row.Cells = append(row.Cells, templates.CellView{
				Text:  datagrid.CellText(col, entry.Row),
				Class: col.CellClass(entry.Row),
			})
		}
		if row.Expanded {
			row.Detail = detailViews(g.RenderDetail(entry.Row))
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

func buildFilterView(g *datagrid.Grid[datagrid.MapRow], col datagrid.Column[datagrid.MapRow]) templates.FilterView {
	if col.Filter == datagrid.FilterNone {
		return templates.FilterView{}
	}
	fv := templates.FilterView{Type: string(col.Filter)}
	current, _ := g.Filter(col.Key)

	switch col.Filter {
	case datagrid.FilterInput:
		fv.Value = current.Text
	case datagrid.FilterDate:
		if t, ok := datagrid.ParseDate(current.Text); ok {
			fv.Value = datagrid.FormatDateInput(t)
		}
	case datagrid.FilterDateRange:
		if len(current.Values) > 0 {
			fv.From = dateInputValue(current.Values[0])
		}
		if len(current.Values) > 1 {
			fv.To = dateInputValue(current.Values[1])
		}
	case datagrid.FilterSingleSelect, datagrid.FilterMultiSelect:
		selected := make(map[string]bool)
		if col.Filter == datagrid.FilterSingleSelect {
			fv.Value = current.Text
			selected[current.Text] = true
		} else {
			for _, v := range current.Values {
				selected[v] = true
			}
		}
		for _, o := range g.FilterOptions(col.Key) {
			fv.Options = append(fv.Options, templates.OptionView{
				Value:    o.Value,
				Label:    o.Label,
				Selected: selected[o.Value],
			})
		}
	}
	return fv
}

func dateInputValue(s string) string {
	if t, ok := datagrid.ParseDate(s); ok {
		return datagrid.FormatDateInput(t)
	}
	return ""
}

// detailViews converts a detail render result into label/value pairs.
func detailViews(detail any) []templates.DetailView {
	switch d := detail.(type) {
	case []services.DetailItem:
		out := make([]templates.DetailView, len(d))
		for i, item := range d {
			out[i] = templates.DetailView{Label: item.Label, Value: item.Value}
		}
		return out
	case string:
		return []templates.DetailView{{Value: d}}
	}
	return nil
}
