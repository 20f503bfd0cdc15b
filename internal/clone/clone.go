// Package clone copies layout configuration data.
//
// Configuration mappings routinely embed callbacks. Function values are
// never copied: the clone holds the same func, so calling it runs the same
// closure with the same captured state.
package clone

import (
	"reflect"
	"sync"

	"github.com/mcncl/navlayout/internal/models"
	"github.com/mohae/deepcopy"
)

// Map returns a structural copy of m. A nil map yields an empty one.
func Map(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return newCopier().copyMap(m)
}

// Value returns a structural copy of v.
//
// Generic document values (map[string]any, []any and their models
// aliases) are copied by a type switch that remembers every map and slice
// it has seen, so shared and self-referencing values keep their shape.
// Funcs and channels are returned as-is. Typed values carrying unexported
// struct fields are returned as-is too, since they cannot be rebuilt from
// outside their package. Other composites go through deepcopy, which also
// keeps func fields by reference.
func Value(v any) any {
	return newCopier().value(v)
}

type sliceKey struct {
	ptr uintptr
	n   int
}

type copier struct {
	maps   map[uintptr]map[string]any
	slices map[sliceKey][]any
}

func newCopier() *copier {
	return &copier{
		maps:   make(map[uintptr]map[string]any),
		slices: make(map[sliceKey][]any),
	}
}

func (c *copier) value(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		if val == nil {
			return val
		}
		return c.copyMap(val)
	case models.JSONObject:
		if val == nil {
			return val
		}
		return models.JSONObject(c.copyMap(val))
	case []any:
		if val == nil {
			return val
		}
		return c.copySlice(val)
	case models.JSONArray:
		if val == nil {
			return val
		}
		return models.JSONArray(c.copySlice(val))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer, reflect.Interface:
		if hasUnexported(rv.Type()) {
			return v
		}
		return deepcopy.Copy(v)
	default:
		return v
	}
}

func (c *copier) copyMap(m map[string]any) map[string]any {
	ptr := reflect.ValueOf(m).Pointer()
	if out, ok := c.maps[ptr]; ok {
		return out
	}
	out := make(map[string]any, len(m))
	c.maps[ptr] = out
	for k, v := range m {
		out[k] = c.value(v)
	}
	return out
}

func (c *copier) copySlice(s []any) []any {
	if len(s) == 0 {
		return make([]any, 0)
	}
	key := sliceKey{ptr: reflect.ValueOf(s).Pointer(), n: len(s)}
	if out, ok := c.slices[key]; ok {
		return out
	}
	out := make([]any, len(s))
	c.slices[key] = out
	for i, v := range s {
		out[i] = c.value(v)
	}
	return out
}

var opaqueTypes sync.Map // reflect.Type -> bool

// hasUnexported reports whether t reaches a struct field deepcopy would
// drop.
func hasUnexported(t reflect.Type) bool {
	if cached, ok := opaqueTypes.Load(t); ok {
		return cached.(bool)
	}
	result := reachesUnexported(t, map[reflect.Type]bool{})
	opaqueTypes.Store(t, result)
	return result
}

func reachesUnexported(t reflect.Type, visiting map[reflect.Type]bool) bool {
	if visiting[t] {
		return false
	}
	visiting[t] = true

	switch t.Kind() {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || reachesUnexported(f.Type, visiting) {
				return true
			}
		}
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return reachesUnexported(t.Elem(), visiting)
	case reflect.Map:
		return reachesUnexported(t.Key(), visiting) || reachesUnexported(t.Elem(), visiting)
	}
	return false
}
