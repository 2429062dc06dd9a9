package model

import (
	"math"
	"sort"
	"time"
)

type absent struct{}

func (absent) String() string { return "<absent>" }

// MarshalJSON encodes the marker as null.
func (absent) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Absent marks a control that is present but carries no value, such as an
// unchecked checkbox. It is distinct from the empty string.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

// IsEmpty reports whether v counts as "no value": nil, Absent, "", NaN, an
// empty slice or the zero time. Numeric zero is a value.
func IsEmpty(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case absent:
		return true
	case string:
		return typed == ""
	case float64:
		return math.IsNaN(typed)
	case float32:
		return math.IsNaN(float64(typed))
	case []string:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	case time.Time:
		return typed.IsZero()
	case *time.Time:
		return typed == nil || typed.IsZero()
	default:
		return false
	}
}

func sortedKeys(m map[string][]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
