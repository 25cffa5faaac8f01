package schema

import (
	"reflect"
	"strings"
)

// TrimStrings trims the spaces around every string reachable from v. It is a
// ready-made body for a Normalize method.
func TrimStrings(v any) { MapStrings(v, strings.TrimSpace) }

// MapStrings replaces every settable string reachable from the pointer v
// (fields, nested structs, pointers, slice elements and map values) with
// f of itself. Interface values are left alone.
func MapStrings(v any, f func(string) string) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	mapStrings(rv.Elem(), f)
}

func mapStrings(v reflect.Value, f func(string) string) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(f(v.String()))
		}
	case reflect.Ptr:
		if !v.IsNil() {
			mapStrings(v.Elem(), f)
		}
	case reflect.Struct:
		for i := range v.NumField() {
			if field := v.Field(i); field.CanSet() {
				mapStrings(field, f)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			mapStrings(v.Index(i), f)
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			val := iter.Value()
			switch val.Kind() {
			case reflect.String, reflect.Struct:
				cp := reflect.New(val.Type()).Elem()
				cp.Set(val)
				mapStrings(cp, f)
				v.SetMapIndex(iter.Key(), cp)
			case reflect.Ptr, reflect.Slice, reflect.Map:
				mapStrings(val, f)
			}
		}
	}
}
