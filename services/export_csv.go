package services

import (
	"bytes"
	"strings"
)

// GenerateCSV writes the header line followed by one line per row. Every
// field is wrapped in double quotes with embedded quotes doubled, and lines
// end with "\n".
func GenerateCSV(table ExportTable) []byte {
	var buf bytes.Buffer
	writeCSVLine(&buf, table.Headers)
	for _, r := range table.Rows {
		writeCSVLine(&buf, r)
	}
	return buf.Bytes()
}

func writeCSVLine(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
