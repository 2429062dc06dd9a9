package filters

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-informal/pkg/datefmt"
	"github.com/goliatone/go-informal/pkg/model"
)

// Built-in filter names.
const (
	AsInteger = "as_integer"
	AsFloat   = "as_float"
	AsDate    = "as_date"
	Trim      = "trim"
)

func (r *Registry) registerBuiltins() {
	r.MustRegister(AsInteger, func(value any, _ model.Field) any { return ParseInt(value) })
	r.MustRegister(AsFloat, func(value any, _ model.Field) any { return ParseFloat(value) })
	r.MustRegister(AsDate, func(value any, field model.Field) any { return ParseDate(value, field.DateFormat) })
	r.MustRegister(Trim, func(value any, _ model.Field) any { return TrimValue(value) })
}

// IsNaN reports whether v is the not-a-number sentinel produced by the
// numeric filters.
func IsNaN(v any) bool {
	f, ok := v.(float64)
	return ok && math.IsNaN(f)
}

// ParseInt reads a base-10 integer prefix: leading whitespace, an optional
// sign, then digits. Trailing characters are ignored. Anything without a
// leading digit yields NaN.
func ParseInt(v any) any {
	switch typed := v.(type) {
	case int:
		return int64(typed)
	case int64:
		return typed
	case int32:
		return int64(typed)
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return math.NaN()
		}
		if typed < math.MinInt64 || typed >= math.MaxInt64 {
			return typed
		}
		return int64(math.Trunc(typed))
	}
	s, ok := textOf(v)
	if !ok {
		return math.NaN()
	}
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return math.NaN()
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s[:end], 64)
		if ferr != nil {
			return math.NaN()
		}
		return f
	}
	return n
}

// ParseFloat reads the longest floating-point prefix, accepting an
// optional sign, digits, a fraction, an exponent and "Infinity".
func ParseFloat(v any) any {
	switch typed := v.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	}
	s, ok := textOf(v)
	if !ok {
		return math.NaN()
	}
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	if prefix := floatPrefix(s); prefix != "" {
		if f, err := strconv.ParseFloat(prefix, 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

func floatPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return s[:i] + "Inf"
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	mantissa := s[start:i]
	if mantissa == "" || mantissa == "." {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return s[:i]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ParseDate reads v with the field's date format, returning the zero time
// when it cannot be parsed.
func ParseDate(v any, format string) any {
	if t, ok := datefmt.Coerce(v, format); ok {
		return t
	}
	return time.Time{}
}

// TrimValue trims surrounding whitespace from strings and string lists.
func TrimValue(v any) any {
	switch typed := v.(type) {
	case string:
		return strings.TrimSpace(typed)
	case []string:
		out := make([]string, len(typed))
		for i, item := range typed {
			out[i] = strings.TrimSpace(item)
		}
		return out
	default:
		return v
	}
}

func textOf(v any) (string, bool) {
	switch typed := v.(type) {
	case string:
		return typed, true
	case []string:
		return strings.Join(typed, ","), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}
