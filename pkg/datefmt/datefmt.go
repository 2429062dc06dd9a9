// Package datefmt converts moment-style display formats (YYYY-MM-DD) into Go
// reference layouts and parses loosely typed date values.
package datefmt

import (
	"strings"
	"time"
)

var tokens = []struct {
	moment string
	layout string
}{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"DD", "02"},
	{"D", "2"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"HH", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"SSS", "000"},
	{"A", "PM"},
	{"a", "pm"},
	{"ZZ", "-0700"},
	{"Z", "-07:00"},
}

// ISOLayouts are tried, in order, when no explicit format is declared.
var ISOLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Layout converts a moment-style format into a Go layout. Formats that
// already contain the Go reference year are returned unchanged. Text inside
// square brackets is copied literally.
func Layout(format string) string {
	format = strings.TrimSpace(format)
	if format == "" || strings.Contains(format, "2006") {
		return format
	}
	var b strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i:], ']')
			if end > 0 {
				b.WriteString(format[i+1 : i+end])
				i += end + 1
				continue
			}
		}
		matched := false
		for _, tok := range tokens {
			if strings.HasPrefix(format[i:], tok.moment) {
				b.WriteString(tok.layout)
				i += len(tok.moment)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}

// Parse reads s using format when given (strictly), else the ISO layouts.
func Parse(s, format string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if layout := Layout(format); layout != "" {
		t, err := time.ParseInLocation(layout, s, time.Local)
		return t, err == nil
	}
	for _, layout := range ISOLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Coerce turns v into a time when it is a time, a pointer to one, or a
// parseable string.
func Coerce(v any, format string) (time.Time, bool) {
	switch typed := v.(type) {
	case time.Time:
		return typed, !typed.IsZero()
	case *time.Time:
		if typed == nil {
			return time.Time{}, false
		}
		return *typed, !typed.IsZero()
	case string:
		if t, ok := Parse(typed, format); ok {
			return t, true
		}
		if format != "" {
			return Parse(typed, "")
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Format renders t with a moment-style or Go layout.
func Format(t time.Time, format string) string {
	layout := Layout(format)
	if layout == "" {
		layout = time.RFC3339
	}
	return t.Format(layout)
}
