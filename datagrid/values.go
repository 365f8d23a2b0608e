package datagrid

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// labelFields are looked up, in order, on object cells to find a comparable value.
var labelFields = []string{"name", "label", "title"}

// primitiveString converts strings and numbers to their string form.
// Everything else, booleans included, is not a primitive for comparison.
func primitiveString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		s, err := cast.ToStringE(indirectPrimitive(rv))
		if err != nil {
			return "", false
		}
		return s, true
	}
	return "", false
}

// indirectPrimitive unwraps named numeric types so cast sees the base kind.
func indirectPrimitive(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32:
		return float32(rv.Float())
	}
	return rv.Float()
}

// displayString converts values a renderer may return into text: primitives,
// booleans and fmt.Stringers. Anything else is not displayable as text.
func displayString(v any) (string, bool) {
	if s, ok := primitiveString(v); ok {
		return s, true
	}
	switch t := v.(type) {
	case bool:
		return cast.ToString(t), true
	case time.Time:
		return t.Format(time.RFC3339), true
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

// cellString stringifies a raw cell: text for scalars, JSON for objects and arrays.
func cellString(v any) string {
	if isMissing(v) {
		return ""
	}
	if s, ok := displayString(v); ok {
		return s
	}
	if isObject(v) || isList(v) {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

// isScalarLike reports values that look like structs to reflection but act as scalars.
func isScalarLike(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time, fmt.Stringer:
		return true
	}
	return false
}

func deref(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isList(v any) bool {
	if v == nil || isScalarLike(v) {
		return false
	}
	rv := deref(v)
	if !rv.IsValid() {
		return false
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return false
	}
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

func isObject(v any) bool {
	if v == nil || isScalarLike(v) {
		return false
	}
	rv := deref(v)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	}
	return false
}

// elements returns the items of a slice or array cell.
func elements(v any) ([]any, bool) {
	if !isList(v) {
		return nil, false
	}
	rv := deref(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// objectValues returns the own values of a map or exported struct fields.
func objectValues(v any) ([]any, bool) {
	if !isObject(v) {
		return nil, false
	}
	rv := deref(v)
	var out []any
	switch rv.Kind() {
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, iter.Value().Interface())
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).IsExported() {
				out = append(out, rv.Field(i).Interface())
			}
		}
	}
	return out, true
}

// objectField looks up name on a map (exact key) or struct (case-insensitive field name).
func objectField(v any, name string) (any, bool) {
	if !isObject(v) {
		return nil, false
	}
	rv := deref(v)
	switch rv.Kind() {
	case reflect.Map:
		val := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		out := val.Interface()
		return out, out != nil
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			f := rv.Type().Field(i)
			if f.IsExported() && strings.EqualFold(f.Name, name) {
				return rv.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}

// objectLabel returns the first present of name, label or title on an object cell.
func objectLabel(v any) (string, bool) {
	for _, name := range labelFields {
		if val, ok := objectField(v, name); ok {
			return cellString(val), true
		}
	}
	return "", false
}

// elementComparable is the comparable value of one element of an array cell.
func elementComparable(v any) string {
	if s, ok := primitiveString(v); ok {
		return s
	}
	if s, ok := objectLabel(v); ok {
		return s
	}
	return ""
}

// ComparableValue derives the single string used for equality filtering:
// the raw value if it is a string or number, else the render output if that
// is, else the name/label/title of an object cell, else "".
func ComparableValue[T any](col Column[T], row T) string {
	raw := col.Raw(row)
	if s, ok := primitiveString(raw); ok {
		return s
	}
	if col.Render != nil {
		if s, ok := primitiveString(col.Render(row)); ok {
			return s
		}
	}
	if s, ok := objectLabel(raw); ok {
		return s
	}
	return ""
}

// CellText is the text shown for, and exported from, a cell: the render
// output when it is displayable, else the raw value with objects as JSON.
func CellText[T any](col Column[T], row T) string {
	if col.Render != nil {
		if s, ok := displayString(col.Render(row)); ok {
			return s
		}
	}
	return cellString(col.Raw(row))
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
