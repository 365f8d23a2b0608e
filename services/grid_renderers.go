package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"gridadmin/datagrid"
)

// CellRenderer turns a row into the display value of one column.
type CellRenderer func(row datagrid.MapRow, key string) any

// cellRenderers are the render names grid definitions may use.
var cellRenderers = map[string]CellRenderer{
	"inr":          renderINR,
	"date":         renderDate,
	"manager_name": renderManagerName,
	"skills":       renderList,
	"tenure":       renderTenure,
}

// now is replaced in tests.
var now = time.Now

func renderINR(row datagrid.MapRow, key string) any {
	return FormatINR(row[key])
}

func renderDate(row datagrid.MapRow, key string) any {
	t, ok := datagrid.ParseDate(row[key])
	if !ok {
		return ""
	}
	return t.Format("02 Jan 2006")
}

func renderManagerName(row datagrid.MapRow, key string) any {
	m, ok := row[key].(map[string]any)
	if !ok {
		return ""
	}
	return cast.ToString(m["name"])
}

func renderList(row datagrid.MapRow, key string) any {
	items, ok := row[key].([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if s := cast.ToString(it); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// renderTenure reads the hire date regardless of the column key it is
// attached to, since it backs a computed column.
func renderTenure(row datagrid.MapRow, _ string) any {
	hired, ok := datagrid.ParseDate(row["hired"])
	if !ok {
		return ""
	}
	months := int(now().Sub(hired).Hours() / 24 / 30)
	switch {
	case months < 1:
		return "New"
	case months < 12:
		return fmt.Sprintf("%d mo", months)
	}
	return fmt.Sprintf("%d yr", months/12)
}

// statusLabel renders a status value through the column label map.
func statusLabel(labels map[string]string) CellRenderer {
	return func(row datagrid.MapRow, key string) any {
		v := cast.ToString(row[key])
		if l, ok := labels[v]; ok && l != "" {
			return l
		}
		return v
	}
}

// StatusClass is the badge class of a status cell.
func StatusClass(value string) string {
	if value == "" {
		return ""
	}
	return "badge badge-" + strings.ReplaceAll(value, "_", "-")
}
