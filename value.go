// File: roots/wp-config/value.go
package config

import (
	"math"
	"reflect"
)

// sameValue is the equality used for conflict detection: same dynamic type and
// deeply equal contents. Unlike reflect.DeepEqual, NaN equals NaN and funcs or
// channels are equal when they are the same object, so a value always equals
// itself.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return equalValue(reflect.ValueOf(a), reflect.ValueOf(b), make(map[visit]bool))
}

// visit records a pair of references already being compared, for cyclic values.
type visit struct {
	a, b uintptr
	typ  reflect.Type
}

func equalValue(a, b reflect.Value, visited map[visit]bool) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return floatEqual(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		x, y := a.Complex(), b.Complex()
		return floatEqual(real(x), real(y)) && floatEqual(imag(x), imag(y))
	case reflect.String:
		return a.String() == b.String()
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return equalValue(a.Elem(), b.Elem(), visited)
	case reflect.Ptr:
		if a.Pointer() == b.Pointer() {
			return true
		}
		if a.IsNil() || b.IsNil() || seen(a, b, visited) {
			return a.IsNil() == b.IsNil()
		}
		return equalValue(a.Elem(), b.Elem(), visited)
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !equalValue(a.Index(i), b.Index(i), visited) {
				return false
			}
		}
		return true
	case reflect.Slice:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		if a.Pointer() == b.Pointer() || seen(a, b, visited) {
			return true
		}
		for i := 0; i < a.Len(); i++ {
			if !equalValue(a.Index(i), b.Index(i), visited) {
				return false
			}
		}
		return true
	case reflect.Map:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		if a.Pointer() == b.Pointer() || seen(a, b, visited) {
			return true
		}
		iter := a.MapRange()
		for iter.Next() {
			other := b.MapIndex(iter.Key())
			if !other.IsValid() || !equalValue(iter.Value(), other, visited) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !equalValue(a.Field(i), b.Field(i), visited) {
				return false
			}
		}
		return true
	}
	return false
}

func floatEqual(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}

// seen marks the pair as visited and reports whether it already was.
func seen(a, b reflect.Value, visited map[visit]bool) bool {
	v := visit{a: a.Pointer(), b: b.Pointer(), typ: a.Type()}
	if visited[v] {
		return true
	}
	visited[v] = true
	return false
}

// cloneValue returns a deep copy of v. Maps, slices, arrays, pointers and the
// exported fields of structs are copied; funcs and channels are shared.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	return cloneReflect(reflect.ValueOf(v), make(map[uintptr]reflect.Value)).Interface()
}

func cloneReflect(v reflect.Value, copies map[uintptr]reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneReflect(v.Elem(), copies))
		return out
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		if c, ok := copies[v.Pointer()]; ok && c.Type() == v.Type() {
			return c
		}
		out := reflect.New(v.Type().Elem())
		copies[v.Pointer()] = out
		out.Elem().Set(cloneReflect(v.Elem(), copies))
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		if c, ok := copies[v.Pointer()]; ok && c.Type() == v.Type() {
			return c
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		copies[v.Pointer()] = out
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneReflect(iter.Value(), copies))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneReflect(v.Index(i), copies))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneReflect(v.Index(i), copies))
		}
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if field := out.Field(i); field.CanSet() {
				field.Set(cloneReflect(v.Field(i), copies))
			}
		}
		return out
	default:
		return v
	}
}
