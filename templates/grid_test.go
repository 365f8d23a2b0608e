package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("expected output to contain %q", f)
		}
	}
}

func assertNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if strings.Contains(body, f) {
			t.Errorf("expected output not to contain %q", f)
		}
	}
}

func sampleGrid() GridData {
	return GridData{
		Name:                 "employees",
		Title:                "Employees",
		Search:               "sha",
		GlobalFilter:         true,
		ColumnsVisibleOption: true,
		DataExport:           true,
		ExportFormats:        []string{"csv", "xlsx"},
		Selectable:           true,
		HeaderState:          HeaderIndeterminate,
		SelectedCount:        1,
		Expandable:           true,
		Columns: []ColumnView{
			{Key: "name", Header: "Name", Sortable: true, SortDir: "asc", Width: 140, Filter: FilterView{Type: "input", Value: "sha"}},
			{Key: "status", Header: "Status", Filter: FilterView{Type: "singleSelect", Value: "active", Options: []OptionView{
				{Value: "active", Label: "Active", Selected: true},
				{Value: "on_leave", Label: "On Leave"},
			}}},
			{Key: "hired", Header: "Hired", Filter: FilterView{Type: "dateRange", From: "2024-01-01"}},
		},
		ColumnToggles: []ColumnToggle{
			{Key: "name", Header: "Name", Visible: true},
			{Key: "cost_center", Header: "Cost Center"},
		},
		Rows: []RowView{
			{Key: "e1", Cells: []CellView{{Text: "Meera Shah"}, {Text: "Active", Class: "badge badge-active"}, {Text: "17 Jan 2022"}},
				Selectable: true, Selected: true, Expanded: true, Detail: []DetailView{{Label: "Position", Value: "Analyst"}}},
			{Key: "e2", Cells: []CellView{{Text: "Nikhil <Shah>"}, {Text: "Terminated"}, {Text: ""}}},
		},
		Pagination: true,
		Page:       1,
		TotalPages: 3,
		PageSize:   10,
		PageSizes:  []int{10, 50, 100},
		CanNext:    true,
		Summary:    "Showing 1 to 10 of 25 entries",
	}
}

func TestGridContent_Structure(t *testing.T) {
	body := render(t, GridContent(sampleGrid()))

	assertContains(t, body,
		`id="grid-employees"`,
		`hx-target="#grid-employees"`,
		`hx-post="/grids/employees/search"`,
		`value="sha"`,
		`href="/grids/employees/export/csv"`,
		`hx-post="/grids/employees/columns/cost_center/visibility"`,
		`hx-post="/grids/employees/sort/name"`,
		"Name ▲",
		`style="width:140px"`,
		`data-indeterminate="true"`,
		"1 selected",
		`hx-delete="/grids/employees/selected"`,
		"Showing 1 to 10 of 25 entries",
		"Page 1 of 3",
	)
	assertNotContains(t, body, "<html")
}

func TestGridContent_FilterControls(t *testing.T) {
	body := render(t, GridContent(sampleGrid()))

	assertContains(t, body,
		`hx-post="/grids/employees/filters/name"`,
		`<option value="__all__">All</option>`,
		`<option value="active" selected>Active</option>`,
		`name="from" aria-label="From" value="2024-01-01"`,
		`name="to" aria-label="To" value=""`,
	)
}

func TestGridContent_Rows(t *testing.T) {
	body := render(t, GridContent(sampleGrid()))

	assertContains(t, body,
		`data-key="e1"`,
		`hx-post="/grids/employees/rows/e1/select" hx-swap="outerHTML" checked>`,
		`hx-post="/grids/employees/rows/e2/select" hx-swap="outerHTML" disabled>`,
		`<span class="badge badge-active">Active</span>`,
		`<td colspan="5"><dl><dt>Position</dt><dd>Analyst</dd></dl></td>`,
		"Nikhil &lt;Shah&gt;",
	)
	assertNotContains(t, body, "Nikhil <Shah>")
}

func TestGridContent_PagerBounds(t *testing.T) {
	body := render(t, GridContent(sampleGrid()))

	assertContains(t, body,
		`hx-post="/grids/employees/page/prev" disabled>Previous`,
		`hx-post="/grids/employees/page/next">Next`,
		`<option value="10" selected>10</option>`,
	)
}

func TestGridContent_Empty(t *testing.T) {
	data := sampleGrid()
	data.Rows = nil
	data.Selectable = false
	data.Expandable = false
	body := render(t, GridContent(data))

	assertContains(t, body, `<td colspan="3">No data</td>`)
	assertNotContains(t, body, `aria-label="Select page"`)
}

func TestGridContent_OptionalToolbar(t *testing.T) {
	data := sampleGrid()
	data.GlobalFilter = false
	data.DataExport = false
	data.ColumnsVisibleOption = false
	data.Pagination = false
	data.SelectedCount = 0
	body := render(t, GridContent(data))

	assertNotContains(t, body, `name="q"`, "Export", "<summary>Columns</summary>", "Page 1 of", "Delete selected")
}

func TestGridContent_SettingsMenu(t *testing.T) {
	data := sampleGrid()
	data.Pagination = true
	data.PageSize = 10
	data.PageSizes = []int{10, 50, 100}

	plain := render(t, GridContent(data))
	assertNotContains(t, plain, "<summary>Settings</summary>")

	data.Settings = true
	body := render(t, GridContent(data))
	settings := strings.Index(body, "<summary>Settings</summary>")
	columns := strings.Index(body, "<summary>Columns</summary>")
	size := strings.Index(body, `name="size"`)
	if settings < 0 || columns < settings || size < settings {
		t.Errorf("columns and page size should sit inside the settings menu: settings=%d columns=%d size=%d", settings, columns, size)
	}
}

func TestGridContent_ScrollRegion(t *testing.T) {
	data := sampleGrid()
	assertNotContains(t, render(t, GridContent(data)), `class="grid-scroll"`)

	data.Scroll = true
	body := render(t, GridContent(data))
	assertContains(t, body, `<div class="grid-scroll"><table`, `</table></div>`)
}

func TestGridPage_WrapsLayout(t *testing.T) {
	body := render(t, GridPage(sampleGrid()))
	assertContains(t, body, "<!DOCTYPE html>", "<title>Employees</title>", "<h1>Employees</h1>", "htmx.org", `id="grid-employees"`)
}

func TestGridIndex(t *testing.T) {
	body := render(t, GridIndexPage(GridIndexData{Grids: []GridLink{
		{Name: "employees", Title: "Employees"},
		{Name: "fuel_bills", Title: "Fuel Bills"},
	}}))
	assertContains(t, body, `href="/grids/employees"`, "Fuel Bills")

	empty := render(t, GridIndexContent(GridIndexData{}))
	assertContains(t, empty, "No grids configured")
}

func TestGridData_ColSpan(t *testing.T) {
	d := GridData{Columns: make([]ColumnView, 4)}
	if got := d.ColSpan(); got != 4 {
		t.Errorf("ColSpan() = %d, want 4", got)
	}
	d.Selectable, d.Expandable = true, true
	if got := d.ColSpan(); got != 6 {
		t.Errorf("ColSpan() = %d, want 6", got)
	}
}
