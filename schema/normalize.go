package schema

import (
	"context"
	"reflect"
)

// Normalizer is implemented by types that clean themselves up after
// decoding and before validation (trimming, lower-casing, defaults).
type Normalizer interface {
	Normalize()
}

// ContextNormalizer is like Normalizer but receives the request context.
type ContextNormalizer interface {
	Normalize(context.Context)
}

// Normalize calls Normalize on v and then, depth first, on every nested
// struct, pointer, slice element and map value that implements it.
func Normalize(ctx context.Context, v any) {
	if v == nil {
		return
	}
	callNormalize(ctx, v)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	walkNormalize(ctx, rv)
}

func callNormalize(ctx context.Context, v any) {
	switch n := v.(type) {
	case ContextNormalizer:
		n.Normalize(ctx)
	case Normalizer:
		n.Normalize()
	}
}

func walkNormalize(ctx context.Context, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Struct:
		for i := range rv.NumField() {
			if rv.Type().Field(i).IsExported() {
				normalizeValue(ctx, rv.Field(i))
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			normalizeValue(ctx, rv.Index(i))
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			val := iter.Value()
			if val.Kind() != reflect.Struct {
				continue
			}
			// Map values are not addressable: normalise a copy and store it back.
			cp := reflect.New(val.Type())
			cp.Elem().Set(val)
			Normalize(ctx, cp.Interface())
			rv.SetMapIndex(iter.Key(), cp.Elem())
		}
	}
}

func normalizeValue(ctx context.Context, fv reflect.Value) {
	switch fv.Kind() {
	case reflect.Struct:
		if fv.CanAddr() {
			callNormalize(ctx, fv.Addr().Interface())
		}
		walkNormalize(ctx, fv)
	case reflect.Ptr:
		if !fv.IsNil() {
			Normalize(ctx, fv.Interface())
		}
	case reflect.Slice, reflect.Array, reflect.Map:
		walkNormalize(ctx, fv)
	}
}
