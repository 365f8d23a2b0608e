package datagrid

import (
	"cmp"
	"reflect"
	"slices"
	"time"
)

// SortDirection is the direction of the active sort.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// isMissing treats nil, nil pointers and nil interfaces as absent values.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// compareRaw orders two present values of the same kind. Values of different
// kinds, or kinds without a natural order, compare equal: no coercion.
func compareRaw(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
		return 0
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case isIntKind(ra.Kind()) && isIntKind(rb.Kind()):
		return cmp.Compare(ra.Int(), rb.Int())
	case isUintKind(ra.Kind()) && isUintKind(rb.Kind()):
		return cmp.Compare(ra.Uint(), rb.Uint())
	case isNumberKind(ra.Kind()) && isNumberKind(rb.Kind()):
		return cmp.Compare(toFloat(ra), toFloat(rb))
	case ra.Kind() == reflect.String && rb.Kind() == reflect.String:
		return cmp.Compare(ra.String(), rb.String())
	case ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool:
		return cmp.Compare(boolRank(ra.Bool()), boolRank(rb.Bool()))
	}
	return 0
}

func isIntKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUintKind(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isNumberKind(k reflect.Kind) bool {
	return isIntKind(k) || isUintKind(k) || k == reflect.Float32 || k == reflect.Float64
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isIntKind(v.Kind()):
		return float64(v.Int())
	case isUintKind(v.Kind()):
		return float64(v.Uint())
	}
	return v.Float()
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// sortRows returns a stably sorted copy of rows. Missing values go last in
// both directions.
func sortRows[T any](rows []T, col Column[T], dir SortDirection) []T {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(x, y T) int {
		a, b := col.Raw(x), col.Raw(y)
		aMissing, bMissing := isMissing(a), isMissing(b)
		switch {
		case aMissing && bMissing:
			return 0
		case aMissing:
			return 1
		case bMissing:
			return -1
		}
		c := compareRaw(a, b)
		if dir == SortDesc {
			return -c
		}
		return c
	})
	return out
}
