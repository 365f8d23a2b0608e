package datagrid

import (
	"sort"
	"strings"
	"time"
)

// AllSentinel is the single-select value meaning "show all".
const AllSentinel = "__all__"

// FilterValue is the state of one column filter. Input, single-select and
// date filters use Text; multi-select uses Values; date ranges use
// Values[0] as the lower and Values[1] as the upper bound.
type FilterValue struct {
	Text   string
	Values []string
}

// TextFilter is the value of an input filter.
func TextFilter(s string) FilterValue { return FilterValue{Text: s} }

// SelectFilter is the value of a single-select filter.
func SelectFilter(s string) FilterValue { return FilterValue{Text: s} }

// DateFilter is the value of a date filter.
func DateFilter(s string) FilterValue { return FilterValue{Text: s} }

// MultiFilter is the value of a multi-select filter.
func MultiFilter(values ...string) FilterValue { return FilterValue{Values: values} }

// RangeFilter is the value of a date-range filter; either bound may be empty.
func RangeFilter(from, to string) FilterValue { return FilterValue{Values: []string{from, to}} }

func (v FilterValue) rangeBounds() (from, to string) {
	if len(v.Values) > 0 {
		from = v.Values[0]
	}
	if len(v.Values) > 1 {
		to = v.Values[1]
	}
	return from, to
}

func nonEmpty(values []string) []string {
	var out []string
	for _, s := range values {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Active reports whether v constrains rows for a filter of type ft.
// An inactive value behaves exactly like an absent one.
func (v FilterValue) Active(ft FilterType) bool {
	switch ft {
	case FilterInput:
		return v.Text != ""
	case FilterSingleSelect:
		return v.Text != "" && v.Text != AllSentinel
	case FilterMultiSelect:
		return len(nonEmpty(v.Values)) > 0
	case FilterDate:
		_, ok := ParseDate(v.Text)
		return ok
	case FilterDateRange:
		from, to := v.rangeBounds()
		_, okFrom := ParseDate(from)
		_, okTo := ParseDate(to)
		return okFrom || okTo
	}
	return false
}

// matchColumnFilter applies one active column filter to a row.
func matchColumnFilter[T any](col Column[T], row T, v FilterValue) bool {
	switch col.Filter {
	case FilterInput:
		return matchInput(col.filterSource(row), strings.ToLower(v.Text))
	case FilterSingleSelect:
		return matchSingle(col, row, v.Text)
	case FilterMultiSelect:
		return matchMulti(col, row, nonEmpty(v.Values))
	case FilterDate:
		want, ok := ParseDate(v.Text)
		if !ok {
			return true
		}
		got, ok := ParseDate(col.filterSource(row))
		return ok && got.Equal(want)
	case FilterDateRange:
		return matchRange(col.filterSource(row), v)
	}
	return true
}

func matchInput(raw any, needle string) bool {
	if items, ok := elements(raw); ok {
		for _, it := range items {
			if containsFold(cellString(it), needle) {
				return true
			}
		}
		return false
	}
	return containsFold(cellString(raw), needle)
}

// matchSingle compares exactly. List cells match when any element does,
// since their options are offered per element.
func matchSingle[T any](col Column[T], row T, want string) bool {
	if items, ok := elements(col.Raw(row)); ok {
		for _, it := range items {
			if elementComparable(it) == want {
				return true
			}
		}
		return false
	}
	return ComparableValue(col, row) == want
}

func matchMulti[T any](col Column[T], row T, selected []string) bool {
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[strings.ToLower(s)] = struct{}{}
	}
	if items, ok := elements(col.Raw(row)); ok {
		for _, it := range items {
			if _, hit := want[strings.ToLower(elementComparable(it))]; hit {
				return true
			}
		}
		return false
	}
	_, hit := want[strings.ToLower(ComparableValue(col, row))]
	return hit
}

func matchRange(raw any, v FilterValue) bool {
	fromStr, toStr := v.rangeBounds()
	from, hasFrom := ParseDate(fromStr)
	to, hasTo := ParseDate(toStr)
	if !hasFrom && !hasTo {
		return true
	}
	got, ok := ParseDate(raw)
	if !ok {
		return false
	}
	if hasFrom && got.Before(from) {
		return false
	}
	if hasTo && got.After(to) {
		return false
	}
	return true
}

// matchGlobal is the free-text filter over every column's raw value.
func matchGlobal[T any](cols []Column[T], row T, needle string) bool {
	for _, col := range cols {
		if col.Kind == KindComputed {
			continue
		}
		if globalCellMatch(col.Raw(row), needle) {
			return true
		}
	}
	return false
}

func globalCellMatch(raw any, needle string) bool {
	if items, ok := elements(raw); ok {
		for _, it := range items {
			if vals, ok := objectValues(it); ok {
				for _, v := range vals {
					if containsFold(cellString(v), needle) {
						return true
					}
				}
				continue
			}
			if containsFold(cellString(it), needle) {
				return true
			}
		}
		return false
	}
	if vals, ok := objectValues(raw); ok {
		for _, v := range vals {
			if containsFold(cellString(v), needle) {
				return true
			}
		}
		return false
	}
	return containsFold(cellString(raw), needle)
}

// Option is one entry of a select filter dropdown.
type Option struct {
	Value string
	Label string
}

// distinctOptions collects the non-empty comparable values of rows for col,
// sorted, with labels from the column's label map.
func distinctOptions[T any](col Column[T], rows []T) []Option {
	seen := make(map[string]struct{})
	var values []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}
	for _, row := range rows {
		if items, ok := elements(col.Raw(row)); ok {
			for _, it := range items {
				add(elementComparable(it))
			}
			continue
		}
		add(ComparableValue(col, row))
	}
	sort.Strings(values)
	return labelled(col, values)
}

func labelled[T any](col Column[T], values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		label := v
		if col.FilterParams != nil {
			if l, ok := col.FilterParams.LabelMap[v]; ok && l != "" {
				label = l
			}
		}
		out = append(out, Option{Value: v, Label: label})
	}
	return out
}

// FormatDateInput renders a parsed date the way date inputs expect it.
func FormatDateInput(t time.Time) string {
	return t.Format(time.DateOnly)
}
