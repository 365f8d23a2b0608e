package services

import "testing"

func TestGenerateCSV(t *testing.T) {
	tests := []struct {
		name  string
		table ExportTable
		want  string
	}{
		{
			name:  "quotes every field",
			table: ExportTable{Headers: []string{"Name", "Amount"}, Rows: [][]string{{"Asha", "₹1,200.00"}}},
			want:  "\"Name\",\"Amount\"\n\"Asha\",\"₹1,200.00\"\n",
		},
		{
			name:  "doubles embedded quotes",
			table: ExportTable{Headers: []string{"Note"}, Rows: [][]string{{`say "hi"`}}},
			want:  "\"Note\"\n\"say \"\"hi\"\"\"\n",
		},
		{
			name:  "keeps newlines inside quotes",
			table: ExportTable{Headers: []string{"A"}, Rows: [][]string{{"line1\nline2"}}},
			want:  "\"A\"\n\"line1\nline2\"\n",
		},
		{
			name:  "header only",
			table: ExportTable{Headers: []string{"A", "B"}},
			want:  "\"A\",\"B\"\n",
		},
		{
			name:  "empty cells",
			table: ExportTable{Headers: []string{"A", "B"}, Rows: [][]string{{"", ""}}},
			want:  "\"A\",\"B\"\n\"\",\"\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(GenerateCSV(tt.table)); got != tt.want {
				t.Errorf("GenerateCSV() = %q, want %q", got, tt.want)
			}
		})
	}
}
