package datagrid

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidPageSize = errors.New("datagrid: page size not allowed")
	ErrInvalidPage     = errors.New("datagrid: page must be at least 1")
	ErrUnknownColumn   = errors.New("datagrid: unknown column")
)

// PageSizes are the page sizes a user may choose from.
var PageSizes = []int{10, 50, 100}

const (
	DefaultPageSize = 10
	MinColumnWidth  = 50
	DoubleClickGap  = 250 * time.Millisecond
)

// RowSelection configures row checkboxes.
type RowSelection[T any] struct {
	Enabled      bool
	GetRowID     func(row T) string
	OnSelect     func(keys []string, rows []T)
	IsSelectable func(row T) bool
}

// RowExpandable configures detail rows.
type RowExpandable[T any] struct {
	Enabled bool
	Render  func(row T) any
}

// Options configures a Grid. The zero value is a plain, unpaginated table.
type Options[T any] struct {
	Pagination        bool
	PageSize          int
	GlobalFilter      bool
	ChainedFilters    []string
	PersistenceKey    string
	PersistPagination bool
	Store             PageStore

	RowSelection  RowSelection[T]
	OnRowSelected func(keys []string, rows []T)
	// Selection, when set, owns the selected key set instead of the grid.
	Selection SelectionStore

	RowExpandable    RowExpandable[T]
	RowClass         func(row T) string
	OnRowDoubleClick func(row T)

	ColumnsVisibleOption bool
	DataExport           bool
	RowColHighlight      bool
	GridSettings         bool
}

// Entry is a row together with its effective key and absolute position in
// the sorted view.
type Entry[T any] struct {
	Key      string
	Row      T
	Position int
}

// CheckState is the tri-state of the select-all checkbox.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
	Indeterminate
)

// Grid is a stateful grid controller over rows of type T.
// A Grid is not safe for concurrent use.
type Grid[T any] struct {
	opts     Options[T]
	data     []T
	columns  []Column[T]
	colIndex map[string]int

	global  string
	filters map[string]FilterValue

	sortKey string
	sortDir SortDirection

	page     int
	pageSize int

	selection SelectionStore
	expanded  KeySet
	visible   map[string]bool
	widths    map[string]int

	version int
	cache   viewCache[T]

	reported  []string
	lastClick click
}

type viewCache[T any] struct {
	version  int
	valid    bool
	filtered []T
	sorted   []T
}

type click struct {
	key string
	at  time.Time
}

// New mounts a grid over data and columns. Persisted pagination is restored
// before any view is derived.
func New[T any](data []T, columns []Column[T], opts Options[T]) *Grid[T] {
	g := &Grid[T]{
		opts:     opts,
		filters:  make(map[string]FilterValue),
		page:     1,
		pageSize: opts.PageSize,
		expanded: NewKeySet(),
		visible:  make(map[string]bool),
		widths:   make(map[string]int),
		colIndex: make(map[string]int),
	}
	if g.pageSize <= 0 {
		g.pageSize = DefaultPageSize
	}
	g.selection = opts.Selection
	if g.selection == nil {
		g.selection = &memorySelection{keys: NewKeySet()}
	}
	if g.selection.SelectedKeys() == nil {
		g.selection.SetSelectedKeys(NewKeySet())
	}

	for _, col := range columns {
		if col.Key == "" {
			continue
		}
		if _, dup := g.colIndex[col.Key]; dup {
			continue
		}
		g.colIndex[col.Key] = len(g.columns)
		g.columns = append(g.columns, col)
		g.visible[col.Key] = !col.Hidden
		if col.Width > 0 {
			g.widths[col.Key] = max(col.Width, MinColumnWidth)
		}
	}

	g.hydrate()
	g.data = data
	g.reported = g.effectiveKeys()
	return g
}

func (g *Grid[T]) hydrate() {
	if !g.opts.PersistPagination || g.opts.Store == nil {
		return
	}
	if v, ok := g.opts.Store.Load(PageSizeStorageKey(g.opts.PersistenceKey)); ok {
		if n, err := strconv.Atoi(v); err == nil && slices.Contains(PageSizes, n) {
			g.pageSize = n
		}
	}
	if v, ok := g.opts.Store.Load(PageStorageKey(g.opts.PersistenceKey)); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			g.page = n
		}
	}
}

func (g *Grid[T]) persist() error {
	if !g.opts.PersistPagination || g.opts.Store == nil {
		return nil
	}
	if err := g.opts.Store.Save(PageStorageKey(g.opts.PersistenceKey), strconv.Itoa(g.page)); err != nil {
		return fmt.Errorf("persist page: %w", err)
	}
	if err := g.opts.Store.Save(PageSizeStorageKey(g.opts.PersistenceKey), strconv.Itoa(g.pageSize)); err != nil {
		return fmt.Errorf("persist page size: %w", err)
	}
	return nil
}

// Options returns the options the grid was mounted with.
func (g *Grid[T]) Options() Options[T] { return g.opts }

// SetData replaces the rows, as when the host re-supplies them.
func (g *Grid[T]) SetData(data []T) {
	g.data = data
	g.invalidate()
}

// Data returns the rows as supplied.
func (g *Grid[T]) Data() []T { return g.data }

// Columns returns every column, hidden ones included.
func (g *Grid[T]) Columns() []Column[T] { return g.columns }

// Column looks a column up by key.
func (g *Grid[T]) Column(key string) (Column[T], bool) {
	i, ok := g.colIndex[key]
	if !ok {
		return Column[T]{}, false
	}
	return g.columns[i], true
}

// invalidate drops memoized views and reports the effective selection to
// the host. Rows behind a key may have moved, so a non-empty selection is
// reported even when its keys are unchanged.
func (g *Grid[T]) invalidate() {
	g.version++
	g.reportSelection(true)
}

func (g *Grid[T]) views() *viewCache[T] {
	if g.cache.valid && g.cache.version == g.version {
		return &g.cache
	}
	filtered := g.filterRows(g.data, g.activeFilterKeys(), true)
	sorted := filtered
	if col, ok := g.Column(g.sortKey); ok && g.sortKey != "" {
		sorted = sortRows(filtered, col, g.sortDir)
	}
	g.cache = viewCache[T]{version: g.version, valid: true, filtered: filtered, sorted: sorted}
	return &g.cache
}

// ── Filtering ───────────────────────────────────────────────────────────

// SetGlobalFilter sets the free-text filter and returns to page 1.
func (g *Grid[T]) SetGlobalFilter(text string) error {
	g.global = text
	g.page = 1
	g.invalidate()
	return g.persist()
}

// GlobalFilter returns the free-text filter.
func (g *Grid[T]) GlobalFilter() string { return g.global }

// SetFilter sets one column filter and returns to page 1.
func (g *Grid[T]) SetFilter(key string, v FilterValue) error {
	col, ok := g.Column(key)
	if !ok || col.Filter == FilterNone {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	if v.Active(col.Filter) {
		g.filters[key] = v
	} else {
		delete(g.filters, key)
	}
	g.page = 1
	g.invalidate()
	return g.persist()
}

// ClearFilter removes one column filter and returns to page 1.
func (g *Grid[T]) ClearFilter(key string) error {
	delete(g.filters, key)
	g.page = 1
	g.invalidate()
	return g.persist()
}

// ClearFilters removes every column filter and the free-text filter.
func (g *Grid[T]) ClearFilters() error {
	g.filters = make(map[string]FilterValue)
	g.global = ""
	g.page = 1
	g.invalidate()
	return g.persist()
}

// Filter returns the active value of one column filter.
func (g *Grid[T]) Filter(key string) (FilterValue, bool) {
	v, ok := g.filters[key]
	return v, ok
}

// Filters returns a copy of the active column filters.
func (g *Grid[T]) Filters() map[string]FilterValue {
	out := make(map[string]FilterValue, len(g.filters))
	for k, v := range g.filters {
		out[k] = v
	}
	return out
}

func (g *Grid[T]) activeFilterKeys() []string {
	keys := make([]string, 0, len(g.filters))
	for _, col := range g.columns {
		if _, ok := g.filters[col.Key]; ok {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// filterRows keeps rows matching the column filters named by keys and,
// when withGlobal is set, the free-text filter. Input order is preserved.
func (g *Grid[T]) filterRows(rows []T, keys []string, withGlobal bool) []T {
	needle := ""
	if withGlobal && g.opts.GlobalFilter {
		needle = strings.ToLower(g.global)
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if needle != "" && !matchGlobal(g.columns, row, needle) {
			continue
		}
		if !g.matchesFilters(row, keys) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (g *Grid[T]) matchesFilters(row T, keys []string) bool {
	for _, key := range keys {
		v, ok := g.filters[key]
		if !ok {
			continue
		}
		col, ok := g.Column(key)
		if !ok || !v.Active(col.Filter) {
			continue
		}
		if !matchColumnFilter(col, row, v) {
			return false
		}
	}
	return true
}

// Filtered returns the rows matching every active filter, in input order.
func (g *Grid[T]) Filtered() []T { return g.views().filtered }

// FilterOptions lists the options offered by a select filter. Explicit
// options win; otherwise the distinct comparable values of the data are
// used, restricted for chained columns to rows satisfying every upstream
// chained filter.
func (g *Grid[T]) FilterOptions(key string) []Option {
	col, ok := g.Column(key)
	if !ok {
		return nil
	}
	if col.FilterParams != nil && len(col.FilterParams.Options) > 0 {
		return labelled(col, col.FilterParams.Options)
	}
	rows := g.data
	if upstream := g.upstreamOf(key); len(upstream) > 0 {
		rows = g.filterRows(rows, upstream, false)
	}
	return distinctOptions(col, rows)
}

// upstreamOf returns the chained keys declared before key, or nil when key
// is not chained.
func (g *Grid[T]) upstreamOf(key string) []string {
	i := slices.Index(g.opts.ChainedFilters, key)
	if i <= 0 {
		return nil
	}
	return g.opts.ChainedFilters[:i]
}

// ── Sorting ─────────────────────────────────────────────────────────────

// ToggleSort sorts by key ascending, or flips the direction if key is
// already the sort key. Non-sortable columns are ignored.
func (g *Grid[T]) ToggleSort(key string) error {
	col, ok := g.Column(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	if !col.Sortable {
		return nil
	}
	if g.sortKey == key {
		g.sortDir = g.sortDir.Toggle()
	} else {
		g.sortKey = key
		g.sortDir = SortAsc
	}
	g.invalidate()
	return nil
}

// Sort returns the active sort key and direction; key is empty when unsorted.
func (g *Grid[T]) Sort() (string, SortDirection) { return g.sortKey, g.sortDir }

// Sorted returns the filtered rows in sort order.
func (g *Grid[T]) Sorted() []T { return g.views().sorted }

// ── Pagination ──────────────────────────────────────────────────────────

func (g *Grid[T]) Page() int { return g.page }

func (g *Grid[T]) PageSize() int { return g.pageSize }

// SetPage moves to page p. Pages past the end are kept, not clamped.
func (g *Grid[T]) SetPage(p int) error {
	if p < 1 {
		return ErrInvalidPage
	}
	g.page = p
	return g.persist()
}

// SetPageSize changes the page size and returns to page 1.
func (g *Grid[T]) SetPageSize(size int) error {
	if !slices.Contains(PageSizes, size) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	g.pageSize = size
	g.page = 1
	return g.persist()
}

// NextPage advances one page when not on the last page.
func (g *Grid[T]) NextPage() error {
	if !g.CanNext() {
		return nil
	}
	return g.SetPage(g.page + 1)
}

// PrevPage goes back one page when not on the first page.
func (g *Grid[T]) PrevPage() error {
	if !g.CanPrev() {
		return nil
	}
	return g.SetPage(g.page - 1)
}

// TotalPages is ceil(rows / pageSize) over the filtered and sorted rows.
func (g *Grid[T]) TotalPages() int {
	if !g.opts.Pagination {
		return 1
	}
	return int(math.Ceil(float64(len(g.Sorted())) / float64(g.pageSize)))
}

func (g *Grid[T]) CanPrev() bool { return g.opts.Pagination && g.page > 1 }

func (g *Grid[T]) CanNext() bool { return g.opts.Pagination && g.page < g.TotalPages() }

func (g *Grid[T]) offset() int {
	if !g.opts.Pagination {
		return 0
	}
	return (g.page - 1) * g.pageSize
}

// PageEntries returns the rows of the current page with their keys. With
// pagination off every sorted row is returned.
func (g *Grid[T]) PageEntries() []Entry[T] {
	sorted := g.Sorted()
	start, end := 0, len(sorted)
	if g.opts.Pagination {
		start = min(g.offset(), len(sorted))
		end = min(start+g.pageSize, len(sorted))
	}
	out := make([]Entry[T], 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, Entry[T]{Key: g.RowKey(sorted[i], i), Row: sorted[i], Position: i})
	}
	return out
}

// PageRows returns the rows of the current page.
func (g *Grid[T]) PageRows() []T {
	entries := g.PageEntries()
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.Row
	}
	return out
}

// Summary reads "Showing A to B of N entries".
func (g *Grid[T]) Summary() string {
	total := len(g.Sorted())
	start := g.offset() + 1
	end := total
	if g.opts.Pagination {
		end = min(g.offset()+g.pageSize, total)
	}
	if total == 0 || start > total {
		return fmt.Sprintf("Showing 0 to 0 of %d entries", total)
	}
	return fmt.Sprintf("Showing %d to %d of %d entries", start, end, total)
}

// NeedsScroll reports whether unpaginated content overflows a container of
// containerPx pixels given rows of rowPx pixels.
func (g *Grid[T]) NeedsScroll(containerPx, rowPx int) bool {
	if g.opts.Pagination || containerPx <= 0 {
		return false
	}
	return len(g.Sorted())*rowPx > containerPx
}

// ── Row keys and selection ──────────────────────────────────────────────

// RowKey is GetRowID(row) when configured, else the row's absolute
// position in the sorted view.
func (g *Grid[T]) RowKey(row T, position int) string {
	if g.opts.RowSelection.GetRowID != nil {
		return g.opts.RowSelection.GetRowID(row)
	}
	return strconv.Itoa(position)
}

// IsSelectable reports whether row gets a selection checkbox.
func (g *Grid[T]) IsSelectable(row T) bool {
	if !g.opts.RowSelection.Enabled {
		return false
	}
	if g.opts.RowSelection.IsSelectable == nil {
		return true
	}
	return g.opts.RowSelection.IsSelectable(row)
}

func (g *Grid[T]) findRow(key string) (T, bool) {
	for i, row := range g.Sorted() {
		if g.RowKey(row, i) == key {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// IsSelected reports whether key is in the raw selection.
func (g *Grid[T]) IsSelected(key string) bool {
	return g.selection.SelectedKeys().Has(key)
}

// SelectedKeys returns a copy of the raw selection, including keys of rows
// currently filtered out.
func (g *Grid[T]) SelectedKeys() KeySet {
	return g.selection.SelectedKeys().Clone()
}

func (g *Grid[T]) updateSelection(fn func(KeySet)) {
	keys := g.selection.SelectedKeys().Clone()
	fn(keys)
	g.selection.SetSelectedKeys(keys)
	g.syncSelection()
}

// ToggleRow flips the selection of the visible row with key. It returns
// whether the key is selected afterwards. Unknown or unselectable rows are
// left alone.
func (g *Grid[T]) ToggleRow(key string) bool {
	row, ok := g.findRow(key)
	if !ok || !g.IsSelectable(row) {
		return g.IsSelected(key)
	}
	selected := !g.IsSelected(key)
	g.updateSelection(func(keys KeySet) {
		if selected {
			keys.Add(key)
		} else {
			keys.Remove(key)
		}
	})
	return selected
}

// SelectRow adds key to the selection.
func (g *Grid[T]) SelectRow(key string) {
	g.updateSelection(func(keys KeySet) { keys.Add(key) })
}

// DeselectRow removes key from the selection.
func (g *Grid[T]) DeselectRow(key string) {
	g.updateSelection(func(keys KeySet) { keys.Remove(key) })
}

// ClearSelectedRows empties the selection.
func (g *Grid[T]) ClearSelectedRows() {
	g.updateSelection(func(keys KeySet) {
		for k := range keys {
			delete(keys, k)
		}
	})
}

func (g *Grid[T]) selectablePageKeys() []string {
	var keys []string
	for _, e := range g.PageEntries() {
		if g.IsSelectable(e.Row) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// HeaderState is the select-all checkbox state over the selectable rows of
// the current page.
func (g *Grid[T]) HeaderState() CheckState {
	keys := g.selectablePageKeys()
	if len(keys) == 0 {
		return Unchecked
	}
	n := 0
	for _, k := range keys {
		if g.IsSelected(k) {
			n++
		}
	}
	switch n {
	case 0:
		return Unchecked
	case len(keys):
		return Checked
	}
	return Indeterminate
}

// TogglePage selects every selectable row on the current page, or
// deselects them all when they are all selected. Other pages are untouched.
func (g *Grid[T]) TogglePage() {
	keys := g.selectablePageKeys()
	if len(keys) == 0 {
		return
	}
	deselect := g.HeaderState() == Checked
	g.updateSelection(func(set KeySet) {
		for _, k := range keys {
			if deselect {
				set.Remove(k)
			} else {
				set.Add(k)
			}
		}
	})
}

// EffectiveSelection intersects the raw selection with the filtered and
// sorted rows.
func (g *Grid[T]) EffectiveSelection() ([]string, []T) {
	selected := g.selection.SelectedKeys()
	var keys []string
	var rows []T
	if selected.Len() == 0 {
		return keys, rows
	}
	for i, row := range g.Sorted() {
		key := g.RowKey(row, i)
		if selected.Has(key) {
			keys = append(keys, key)
			rows = append(rows, row)
		}
	}
	return keys, rows
}

func (g *Grid[T]) effectiveKeys() []string {
	keys, _ := g.EffectiveSelection()
	return keys
}

// syncSelection calls the host callbacks when the effective selection changed.
func (g *Grid[T]) syncSelection() { g.reportSelection(false) }

func (g *Grid[T]) reportSelection(rowsMoved bool) {
	keys, rows := g.EffectiveSelection()
	if slices.Equal(keys, g.reported) && (!rowsMoved || len(keys) == 0) {
		return
	}
	g.reported = keys
	if g.opts.OnRowSelected != nil {
		g.opts.OnRowSelected(keys, rows)
	}
	if g.opts.RowSelection.OnSelect != nil {
		g.opts.RowSelection.OnSelect(keys, rows)
	}
}

// ── Expansion ───────────────────────────────────────────────────────────

// ToggleExpanded flips the detail row of key and returns its new state.
func (g *Grid[T]) ToggleExpanded(key string) bool {
	if !g.opts.RowExpandable.Enabled {
		return false
	}
	if g.expanded.Has(key) {
		g.expanded.Remove(key)
		return false
	}
	g.expanded.Add(key)
	return true
}

func (g *Grid[T]) IsExpanded(key string) bool { return g.expanded.Has(key) }

// ExpandedKeys returns the expanded keys, including rows not on this page.
func (g *Grid[T]) ExpandedKeys() []string { return g.expanded.Keys() }

// RenderDetail returns the host's detail content for row.
func (g *Grid[T]) RenderDetail(row T) any {
	if g.opts.RowExpandable.Render == nil {
		return nil
	}
	return g.opts.RowExpandable.Render(row)
}

// RowClass returns the host's class for row.
func (g *Grid[T]) RowClass(row T) string {
	if g.opts.RowClass == nil {
		return ""
	}
	return g.opts.RowClass(row)
}

// ── Double click ────────────────────────────────────────────────────────

// Click records a click on the row with key at the given time. A second
// click on the same row within DoubleClickGap fires OnRowDoubleClick and
// reports true.
func (g *Grid[T]) Click(key string, at time.Time) bool {
	prev := g.lastClick
	g.lastClick = click{key: key, at: at}
	if prev.key != key || prev.at.IsZero() || at.Sub(prev.at) > DoubleClickGap || at.Before(prev.at) {
		return false
	}
	g.lastClick = click{}
	row, ok := g.findRow(key)
	if !ok {
		return false
	}
	if g.opts.OnRowDoubleClick != nil {
		g.opts.OnRowDoubleClick(row)
	}
	return true
}
