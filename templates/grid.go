package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// GridPage is GridContent inside the page layout.
func GridPage(data GridData) templ.Component {
	return Layout(data.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>`)
		h.text(data.Title)
		h.raw(`</h1>`)
		h.render(ctx, GridContent(data))
		return h.err
	}))
}

// GridContent is the swappable grid: toolbar, table and footer. Every HTMX
// request inside it replaces the whole container.
func GridContent(data GridData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		th := DefaultTheme
		h := &htmlWriter{w: w}
		h.raw(`<div`)
		h.attr("id", data.ID())
		h.attr("class", th.Page)
		h.attr("hx-target", "#"+data.ID())
		h.attr("hx-swap", "outerHTML")
		h.raw(`>`)

		h.render(ctx, gridToolbar(data))

		if data.Scroll {
			h.raw(`<div`)
			h.attr("class", th.Scroll)
			h.raw(`>`)
		}
		h.raw(`<table`)
		h.attr("class", templ.Classes(th.Table, templ.KV("highlight", data.RowColHighlight)).String())
		h.raw(`><thead>`)
		h.render(ctx, gridHeader(data))
		h.render(ctx, gridFilterRow(data))
		h.raw(`</thead><tbody>`)
		if len(data.Rows) == 0 {
			h.raw(`<tr`)
			h.attr("class", th.EmptyRow)
			h.raw(`><td`)
			h.intAttr("colspan", data.ColSpan())
			h.raw(`>No data</td></tr>`)
		}
		for _, row := range data.Rows {
			h.render(ctx, gridRow(data, row))
		}
		h.raw(`</tbody></table>`)
		if data.Scroll {
			h.raw(`</div>`)
		}

		h.render(ctx, gridFooter(data))
		h.raw(`</div>`)
		return h.err
	})
}

func gridToolbar(data GridData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		th := DefaultTheme
		h := &htmlWriter{w: w}
		h.raw(`<div`)
		h.attr("class", th.Toolbar)
		h.raw(`>`)

		if data.GlobalFilter {
			h.raw(`<input type="search" name="q" placeholder="Search..."`)
			h.attr("class", th.Search)
			h.attr("value", data.Search)
			h.attr("hx-post", data.URL("search"))
			h.attr("hx-trigger", "input changed delay:300ms, search")
			h.raw(`>`)
		}

		if data.DataExport && len(data.ExportFormats) > 0 {
			h.raw(`<details`)
			h.attr("class", th.Menu)
			h.raw(`><summary>Export</summary><div>`)
			for _, f := range data.ExportFormats {
				h.raw(`<a download`)
				h.attr("href", string(templ.URL(data.URL("export", f))))
				h.raw(`>`)
				h.text(strings.ToUpper(f))
				h.raw(`</a><br>`)
			}
			h.raw(`</div></details>`)
		}

		if data.Settings {
			h.raw(`<details`)
			h.attr("class", th.Menu+" grid-settings")
			h.raw(`><summary>Settings</summary><div>`)
		}

		if data.ColumnsVisibleOption {
			h.raw(`<details`)
			h.attr("class", th.Menu)
			h.raw(`><summary>Columns</summary><div>`)
			for _, c := range data.ColumnToggles {
				h.raw(`<label><input type="checkbox"`)
				h.flag("checked", c.Visible)
				h.attr("hx-post", data.URL("columns", c.Key, "visibility"))
				h.raw(`> `)
				h.text(c.Header)
				h.raw(`</label><br>`)
			}
			h.raw(`</div></details>`)
		}

		if data.Pagination {
			h.raw(`<label>Rows <select name="size"`)
			h.attr("class", th.Select)
			h.attr("hx-post", data.URL("page-size"))
			h.attr("hx-trigger", "change")
			h.raw(`>`)
			for _, size := range data.PageSizes {
				h.raw(`<option`)
				h.intAttr("value", size)
				h.flag("selected", size == data.PageSize)
				h.raw(`>`, strconv.Itoa(size), `</option>`)
			}
			h.raw(`</select></label>`)
		}

		if data.Settings {
			h.raw(`</div></details>`)
		}

		if data.Selectable && data.SelectedCount > 0 {
			h.raw(`<span class="grid-selected">`, strconv.Itoa(data.SelectedCount), ` selected</span>`)
			h.raw(`<button type="button"`)
			h.attr("class", th.Button)
			h.attr("hx-delete", data.URL("selection"))
			h.raw(`>Clear selection</button>`)
			h.raw(`<button type="button"`)
			h.attr("class", th.ButtonDanger)
			h.attr("hx-delete", data.URL("selected"))
			h.attr("hx-confirm", "Delete "+strconv.Itoa(data.SelectedCount)+" selected rows?")
			h.raw(`>Delete selected</button>`)
		}

		h.raw(`<button type="button"`)
		h.attr("class", th.Button)
		h.attr("hx-delete", data.URL("filters"))
		h.raw(`>Clear filters</button></div>`)
		return h.err
	})
}

func sortIndicator(dir string) string {
	switch dir {
	case "asc":
		return " ▲"
	case "desc":
		return " ▼"
	}
	return ""
}

func gridHeader(data GridData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		th := DefaultTheme
		h := &htmlWriter{w: w}
		h.raw(`<tr>`)
		if data.Expandable {
			h.raw(`<th style="width:32px"`)
			h.attr("class", th.HeaderCell)
			h.raw(`></th>`)
		}
		if data.Selectable {
			h.raw(`<th style="width:36px"`)
			h.attr("class", th.HeaderCell)
			h.raw(`><input type="checkbox" aria-label="Select page"`)
			h.attr("hx-post", data.URL("select-page"))
			h.flag("checked", data.HeaderState == HeaderChecked)
			if data.HeaderState == HeaderIndeterminate {
				h.attr("data-indeterminate", "true")
				h.attr("aria-checked", "mixed")
			}
			h.raw(`></th>`)
		}
		for _, col := range data.Columns {
			h.raw(`<th`)
			h.attr("class", th.HeaderCell)
			if col.Width > 0 {
				h.attr("style", "width:"+strconv.Itoa(col.Width)+"px")
			}
			h.raw(`>`)
			if col.Sortable {
				h.raw(`<a href="#"`)
				h.attr("hx-post", data.URL("sort", col.Key))
				if col.SortDir != "" {
					h.attr("aria-sort", col.SortDir+"ending")
				}
				h.raw(`>`)
				h.text(col.Header + sortIndicator(col.SortDir))
				h.raw(`</a>`)
			} else {
				h.text(col.Header)
			}
			h.render(ctx, resizeHandle(data, col.Key))
			h.raw(`</th>`)
		}
		h.raw(`</tr>`)
		return h.err
	})
}

// resizeHandle narrows or widens a column by a fixed step.
func resizeHandle(data GridData, key string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<span class="grid-resize">`)
		for _, step := range []struct{ label, delta string }{{"−", "-20"}, {"+", "20"}} {
			h.raw(`<button type="button"`)
			h.attr("hx-post", data.URL("columns", key, "resize"))
			h.attr("hx-vals", `{"delta":"`+step.delta+`"}`)
			h.attr("aria-label", "Resize "+key)
			h.raw(`>`, step.label, `</button>`)
		}
		h.raw(`</span>`)
		return h.err
	})
}

func gridFilterRow(data GridData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hasFilters := false
		for _, col := range data.Columns {
			if col.Filter.Type != "" {
				hasFilters = true
				break
			}
		}
		if !hasFilters {
			return nil
		}

		th := DefaultTheme
		h := &htmlWriter{w: w}
		h.raw(`<tr>`)
		if data.Expandable {
			h.raw(`<td`)
			h.attr("class", th.FilterCell)
			h.raw(`></td>`)
		}
		if data.Selectable {
			h.raw(`<td`)
			h.attr("class", th.FilterCell)
			h.raw(`></td>`)
		}
		for _, col := range data.Columns {
			h.raw(`<td`)
			h.attr("class", th.FilterCell)
			h.raw(`>`)
			h.render(ctx, filterControl(data, col))
			h.raw(`</td>`)
		}
		h.raw(`</tr>`)
		return h.err
	})
}

// filterControl renders the control matching the column's filter type.
func filterControl(data GridData, col ColumnView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		f := col.Filter
		url := data.URL("filters", col.Key)
		h := &htmlWriter{w: w}
		switch f.Type {
		case "input":
			h.raw(`<input type="text" name="value"`)
			h.attr("value", f.Value)
			h.attr("placeholder", "Filter "+col.Header)
			h.attr("hx-post", url)
			h.attr("hx-trigger", "input changed delay:300ms")
			h.raw(`>`)
		case "singleSelect":
			h.raw(`<select name="value"`)
			h.attr("hx-post", url)
			h.attr("hx-trigger", "change")
			h.raw(`><option value="__all__">All</option>`)
			for _, o := range f.Options {
				h.raw(`<option`)
				h.attr("value", o.Value)
				h.flag("selected", o.Selected)
				h.raw(`>`)
				h.text(o.Label)
				h.raw(`</option>`)
			}
			h.raw(`</select>`)
		case "multiSelect":
			n := 0
			for _, o := range f.Options {
				if o.Selected {
					n++
				}
			}
			h.raw(`<details class="grid-menu"><summary>`)
			if n == 0 {
				h.raw(`All`)
			} else {
				h.raw(strconv.Itoa(n), ` selected`)
			}
			h.raw(`</summary><form`)
			h.attr("hx-post", url)
			h.attr("hx-trigger", "change")
			h.raw(`><div>`)
			for _, o := range f.Options {
				h.raw(`<label><input type="checkbox" name="values"`)
				h.attr("value", o.Value)
				h.flag("checked", o.Selected)
				h.raw(`> `)
				h.text(o.Label)
				h.raw(`</label><br>`)
			}
			h.raw(`</div></form></details>`)
		case "date":
			h.raw(`<input type="date" name="value"`)
			h.attr("value", f.Value)
			h.attr("hx-post", url)
			h.attr("hx-trigger", "change")
			h.raw(`>`)
		case "dateRange":
			h.raw(`<form`)
			h.attr("hx-post", url)
			h.attr("hx-trigger", "change")
			h.raw(`><input type="date" name="from" aria-label="From"`)
			h.attr("value", f.From)
			h.raw(`><input type="date" name="to" aria-label="To"`)
			h.attr("value", f.To)
			h.raw(`></form>`)
		}
		return h.err
	})
}

func gridRow(data GridData, row RowView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		th := DefaultTheme
		h := &htmlWriter{w: w}
		h.raw(`<tr`)
		h.attr("class", templ.Classes(th.Row, templ.KV(row.Class, row.Class != ""), templ.KV(th.RowSelected, row.Selected)).String())
		h.attr("data-key", row.Key)
		h.attr("hx-post", data.URL("rows", row.Key, "click"))
		h.attr("hx-trigger", "click[event.target.tagName=='TD']")
		h.attr("hx-swap", "none")
		h.raw(`>`)

		if data.Expandable {
			h.raw(`<td`)
			h.attr("class", th.Cell)
			h.raw(`><button type="button"`)
			h.attr("hx-post", data.URL("rows", row.Key, "expand"))
			h.attr("hx-swap", "outerHTML")
			h.attr("aria-expanded", strconv.FormatBool(row.Expanded))
			h.raw(`>`)
			if row.Expanded {
				h.raw(`▾`)
			} else {
				h.raw(`▸`)
			}
			h.raw(`</button></td>`)
		}
		if data.Selectable {
			h.raw(`<td`)
			h.attr("class", th.Cell)
			h.raw(`><input type="checkbox" aria-label="Select row"`)
			h.attr("hx-post", data.URL("rows", row.Key, "select"))
			h.attr("hx-swap", "outerHTML")
			h.flag("checked", row.Selected)
			h.flag("disabled", !row.Selectable)
			h.raw(`></td>`)
		}
		for _, cell := range row.Cells {
			h.raw(`<td`)
			h.attr("class", th.Cell)
			h.attr("title", cell.Text)
			h.raw(`>`)
			if cell.Class != "" {
				h.raw(`<span`)
				h.attr("class", cell.Class)
				h.raw(`>`)
				h.text(cell.Text)
				h.raw(`</span>`)
			} else {
				h.text(cell.Text)
			}
			h.raw(`</td>`)
		}
		h.raw(`</tr>`)

		if data.Expandable && row.Expanded {
			h.raw(`<tr`)
			h.attr("class", th.DetailRow)
			h.raw(`><td`)
			h.intAttr("colspan", data.ColSpan())
			h.raw(`><dl>`)
			for _, d := range row.Detail {
				h.raw(`<dt>`)
				h.text(d.Label)
				h.raw(`</dt><dd>`)
				h.text(d.Value)
				h.raw(`</dd>`)
			}
			h.raw(`</dl></td></tr>`)
		}
		return h.err
	})
}

func gridFooter(data GridData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		th := DefaultTheme
		h := &htmlWriter{w: w}
		h.raw(`<div`)
		h.attr("class", th.Footer)
		h.raw(`><span class="grid-summary">`)
		h.text(data.Summary)
		h.raw(`</span>`)
		if data.Pagination {
			h.raw(`<span class="grid-pager"><button type="button"`)
			h.attr("class", th.Button)
			h.attr("hx-post", data.URL("page", "prev"))
			h.flag("disabled", !data.CanPrev)
			h.raw(`>Previous</button> Page `, strconv.Itoa(data.Page), ` of `, strconv.Itoa(data.TotalPages), ` <button type="button"`)
			h.attr("class", th.Button)
			h.attr("hx-post", data.URL("page", "next"))
			h.flag("disabled", !data.CanNext)
			h.raw(`>Next</button></span>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
