package informal

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-informal/pkg/datefmt"
	"github.com/goliatone/go-informal/pkg/value"
)

// Load writes record values into the matching controls. record may be a map
// with string keys or a struct (or pointer to one); struct fields match by
// `form` tag, then name, then case-insensitive name, and zero-argument
// methods match by name. Function values are invoked to obtain the value.
// Controls declaring a date format receive the formatted date; other
// controls receive times as RFC 3339. Controls with
// no matching entry are set to "".
func (f *Form) Load(record any) error {
	if record == nil {
		return errors.New("informal: record is nil")
	}
	src := reflect.ValueOf(record)

	for _, binding := range f.Bindings() {
		field := binding.Field()
		if field.Name == "" {
			continue
		}

		v, found, err := lookup(src, field.Name)
		if err != nil {
			return fmt.Errorf("informal: load %q: %w", field.Name, err)
		}
		if !found || v == nil {
			binding.Set("")
			continue
		}
		if text, ok := dateText(v, field.DateFormat); ok {
			v = text
		}
		binding.Set(v)
	}

	f.logger.Debug().Msg("record loaded")
	return nil
}

// dateText formats times, and date strings when format is declared. The
// zero time is written as "".
func dateText(v any, format string) (string, bool) {
	switch v.(type) {
	case time.Time, *time.Time:
		t, ok := datefmt.Coerce(v, "")
		if !ok {
			return "", true
		}
		return datefmt.Format(t, format), true
	}
	if format == "" {
		return "", false
	}
	t, ok := datefmt.Coerce(v, "")
	if !ok {
		return "", false
	}
	return datefmt.Format(t, format), true
}

func lookup(src reflect.Value, name string) (any, bool, error) {
	for src.Kind() == reflect.Pointer || src.Kind() == reflect.Interface {
		if src.IsNil() {
			return nil, false, nil
		}
		if m, ok := method(src, name); ok {
			return resolve(m)
		}
		src = src.Elem()
	}

	switch src.Kind() {
	case reflect.Map:
		if src.Type().Key().Kind() != reflect.String {
			return nil, false, fmt.Errorf("unsupported map key type %s", src.Type().Key())
		}
		entry := src.MapIndex(reflect.ValueOf(name).Convert(src.Type().Key()))
		if !entry.IsValid() {
			return nil, false, nil
		}
		return resolve(entry)
	case reflect.Struct:
		if field, ok := structField(src, name); ok {
			return resolve(field)
		}
		if m, ok := method(src, name); ok {
			return resolve(m)
		}
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("unsupported record type %s", src.Type())
	}
}

func structField(src reflect.Value, name string) (reflect.Value, bool) {
	typ := src.Type()
	fold := -1
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tag, ok := sf.Tag.Lookup("form"); ok {
			tagName := strings.Split(tag, ",")[0]
			if tagName == "-" {
				continue
			}
			if tagName == name {
				return src.Field(i), true
			}
			if tagName != "" {
				continue
			}
		}
		if sf.Name == name {
			return src.Field(i), true
		}
		if fold < 0 && strings.EqualFold(sf.Name, name) {
			fold = i
		}
	}
	if fold >= 0 {
		return src.Field(fold), true
	}
	return reflect.Value{}, false
}

func method(src reflect.Value, name string) (reflect.Value, bool) {
	m := src.MethodByName(name)
	if !m.IsValid() {
		m = src.MethodByName(exportName(name))
	}
	if !m.IsValid() || !isAccessor(m.Type()) {
		return reflect.Value{}, false
	}
	return m, true
}

func exportName(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// isAccessor accepts func() T and func() (T, error).
func isAccessor(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 0 {
		return false
	}
	switch t.NumOut() {
	case 1:
		return true
	case 2:
		return t.Out(1) == errorType
	default:
		return false
	}
}

func resolve(v reflect.Value) (any, bool, error) {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() == reflect.Func {
		if v.IsNil() || !isAccessor(v.Type()) {
			return nil, false, nil
		}
		out := v.Call(nil)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, false, out[1].Interface().(error)
		}
		return resolve(out[0])
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil, true, nil
	}
	if !v.IsValid() {
		return nil, true, nil
	}
	if v.Kind() == reflect.Pointer && v.Elem().Kind() != reflect.Struct {
		v = v.Elem()
	}
	return normalize(v.Interface()), true, nil
}

// normalize turns typed slices into []string so multi-selects accept them.
func normalize(v any) any {
	if _, ok := value.Strings(v); ok {
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return v
	}
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, value.Stringify(rv.Index(i).Interface()))
	}
	return out
}
