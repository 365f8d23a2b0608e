package templates

// Theme holds the class strings the grid components render with.
type Theme struct {
	Page         string
	Toolbar      string
	Search       string
	Button       string
	ButtonDanger string
	Menu         string
	Select       string
	Table        string
	Scroll       string
	HeaderCell   string
	FilterCell   string
	Cell         string
	Row          string
	RowSelected  string
	DetailRow    string
	EmptyRow     string
	Footer       string
}

// DefaultTheme is used by every page.
var DefaultTheme = Theme{
	Page:         "grid-page",
	Toolbar:      "grid-toolbar",
	Search:       "grid-search",
	Button:       "btn",
	ButtonDanger: "btn btn-danger",
	Menu:         "grid-menu",
	Select:       "grid-select",
	Table:        "grid-table",
	Scroll:       "grid-scroll",
	HeaderCell:   "grid-th",
	FilterCell:   "grid-filter",
	Cell:         "grid-td",
	Row:          "grid-row",
	RowSelected:  "is-selected",
	DetailRow:    "grid-detail",
	EmptyRow:     "grid-empty",
	Footer:       "grid-footer",
}

// styles is inlined into the layout.
const styles = `
body{font-family:system-ui,sans-serif;margin:0;padding:1.5rem;color:#222}
.grid-toolbar{display:flex;gap:.5rem;align-items:center;margin-bottom:.75rem;flex-wrap:wrap}
.grid-menu{position:relative}.grid-menu>div{position:absolute;z-index:10;background:#fff;border:1px solid #ccc;padding:.5rem;min-width:10rem}
.grid-scroll{max-height:600px;overflow-y:auto}
.grid-table{border-collapse:collapse;width:100%;table-layout:fixed}
.grid-th,.grid-td{border:1px solid #ddd;padding:.35rem .5rem;text-align:left;overflow:hidden;text-overflow:ellipsis;white-space:nowrap}
.grid-th{background:#333;color:#fff}
.grid-filter{border:1px solid #ddd;padding:.25rem;background:#f7f7f7}
.grid-filter input,.grid-filter select{width:100%;box-sizing:border-box}
.grid-row:nth-child(even){background:#fafafa}
.grid-row.is-selected{background:#e8f0fe}
.grid-row.row-opened{outline:2px solid #4a7bd0}
.highlight .grid-row:hover{background:#fff6d6}
.grid-detail td{background:#f3f6fa;padding:.5rem 1rem}
.grid-detail dl{display:grid;grid-template-columns:max-content 1fr;gap:.25rem 1rem;margin:0}
.grid-empty td{text-align:center;color:#888;padding:1rem}
.grid-footer{display:flex;justify-content:space-between;align-items:center;margin-top:.75rem}
.text-right{text-align:right}
.badge{padding:.1rem .45rem;border-radius:.6rem;font-size:.85em;background:#eee}
.badge-active,.badge-approved{background:#d9f2df}.badge-on-leave,.badge-pending{background:#fff1c2}
.badge-terminated,.badge-rejected{background:#f8d7da}
.btn{padding:.3rem .7rem;border:1px solid #bbb;background:#fff;border-radius:.25rem;cursor:pointer}
.btn[disabled]{opacity:.5;cursor:default}.btn-danger{border-color:#c33;color:#c33}
`
