package format

import "reflect"

// exceedsDepth walks value and reports whether it contains a
// reference cycle or is nested deeper than limit.
func exceedsDepth(value any, limit int) bool {
	p := probe{limit: limit, active: make(map[visit]bool)}
	return p.walk(reflect.ValueOf(value), 0)
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

type probe struct {
	limit  int
	active map[visit]bool
}

func (p *probe) walk(v reflect.Value, depth int) bool {
	if !v.IsValid() {
		return false
	}
	if depth > p.limit {
		return true
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return false
		}
		// Only pointer-like values can close a cycle. A key is
		// active while its subtree is being walked, so shared
		// but acyclic references are not reported.
		if v.Kind() != reflect.Slice || v.Len() > 0 {
			key := visit{ptr: v.Pointer(), typ: v.Type()}
			if p.active[key] {
				return true
			}
			p.active[key] = true
			defer delete(p.active, key)
		}
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return p.walk(v.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if p.walk(v.Index(i), depth+1) {
				return true
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if p.walk(iter.Key(), depth+1) ||
				p.walk(iter.Value(), depth+1) {
				return true
			}
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if p.walk(v.Field(i), depth+1) {
				return true
			}
		}
	}
	return false
}
