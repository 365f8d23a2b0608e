package datagrid

import (
	"fmt"
	"strings"
	"time"
)

// zonedLayouts carry their own offset; the written calendar day is kept.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
}

// localLayouts have no offset and are read in time.Local.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// ParseDate parses a cell or filter value into local midnight of the
// calendar day it names. It accepts YYYY-MM-DD, DD/MM/YYYY, date-times
// (a space before the time is read as 'T'), time.Time, and fmt.Stringer
// values whose text is one of those forms.
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return midnight(t), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return midnight(*t), true
	case string:
		return parseDateString(t)
	case fmt.Stringer:
		return parseDateString(t.String())
	}
	return time.Time{}, false
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("02/01/2006", s, time.Local); err == nil {
		return t, true
	}

	normalized := s
	if len(normalized) > 10 && normalized[10] == ' ' && normalized[4] == '-' {
		normalized = normalized[:10] + "T" + normalized[11:]
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return midnight(t), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, normalized, time.Local); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

// midnight keeps t's own calendar day so the time of day and its offset never
// move a date across a day boundary.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
