package datagrid

import "testing"

func TestCellText(t *testing.T) {
	type row struct{ v any }
	col := Field("v", "V", func(r row) any { return r.v })
	tests := []struct {
		name string
		col  Column[row]
		in   any
		want string
	}{
		{"string", col, "abc", "abc"},
		{"float", col, 12.5, "12.5"},
		{"bool", col, true, "true"},
		{"nil map", col, map[string]any(nil), ""},
		{"list", col, []string{"a", "b"}, `["a","b"]`},
		{"render wins", col.WithRender(func(r row) any { return "shown" }), 1, "shown"},
		{"render object falls back", col.WithRender(func(r row) any { return struct{}{} }), "raw", "raw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellText(tt.col, row{tt.in}); got != tt.want {
				t.Errorf("CellText() = %q, want %q", got, tt.want)
			}
		})
	}
}
