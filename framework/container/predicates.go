package container

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ── Predicates ────────────────────────────────────────────────────────────────

// IsString reports whether v holds a string.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsObject reports whether v is a structured value a module may be built
// from: a non-nil pointer, a struct or a non-nil map. Slices, arrays,
// scalars, functions and nil are not objects.
func IsObject(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		return !rv.IsNil()
	case reflect.Struct:
		return true
	}
	return false
}

// IsSequence reports whether v is a slice or an array.
func IsSequence(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// IsFunction reports whether v is a non-nil func value.
func IsFunction(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// IsBoolean reports whether v holds a bool.
func IsBoolean(v any) bool {
	_, ok := v.(bool)
	return ok
}

// IsNumber reports whether v holds any integer, unsigned or float kind.
func IsNumber(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsAbsent reports whether v is nil, including typed nil pointers, maps,
// slices, funcs, channels and interfaces.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// ── Iteration ─────────────────────────────────────────────────────────────────

var (
	errForEachCollection = errors.New("container: ForEach: first argument must be a sequence or a map")
	errForEachCallback   = errors.New("container: ForEach: callback must not be nil")
)

// ForEach calls fn for every element of a slice or array (in order) or every
// value of a map (in ascending key order, formatted with %v), along with a
// running index.
//
//	_ = container.ForEach([]string{"a", "b"}, func(v any, i int) { ... })
func ForEach(collection any, fn func(value any, index int)) error {
	if fn == nil {
		return errForEachCallback
	}
	if collection == nil {
		return errForEachCollection
	}

	rv := reflect.ValueOf(collection)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			fn(rv.Index(i).Interface(), i)
		}
		return nil

	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for i, k := range keys {
			fn(rv.MapIndex(k).Interface(), i)
		}
		return nil
	}

	return errForEachCollection
}
