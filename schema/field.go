package schema

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// findStructField locates the struct field (possibly promoted from an
// embedded struct) whose address is ptr. Fields sharing an address, such as
// an embedded struct and its first field, are told apart by type.
func findStructField(structVal reflect.Value, ptr reflect.Value) *reflect.StructField {
	target := ptr.Pointer()
	elem := ptr.Type().Elem()
	for i := range structVal.NumField() {
		sf := structVal.Type().Field(i)
		fv := structVal.Field(i)
		if fv.CanAddr() && fv.Addr().Pointer() == target && sf.Type == elem {
			return &sf
		}
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			if inner := findStructField(fv, ptr); inner != nil {
				return inner
			}
		}
	}
	return nil
}

// jsonName is the name a field is decoded from and documented as.
func jsonName(sf reflect.StructField) string {
	name := strings.Split(sf.Tag.Get("json"), ",")[0]
	if name == "" {
		return sf.Name
	}
	return name
}

// expandFields inlines the rules of embedded Ruler fields so that error keys
// and schema properties stay flat.
func expandFields(ctx context.Context, structPtr any, fields []*FieldRules) []*FieldRules {
	structVal := reflect.Indirect(reflect.ValueOf(structPtr))
	if !structVal.IsValid() || structVal.Kind() != reflect.Struct {
		return fields
	}
	out := make([]*FieldRules, 0, len(fields))
	for _, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() == reflect.Ptr {
			if sf := findStructField(structVal, fv); sf != nil && sf.Anonymous {
				embedded := fv.Interface()
				if inner, ok := rulesOf(ctx, embedded); ok {
					out = append(out, expandFields(ctx, embedded, inner)...)
					continue
				}
			}
		}
		out = append(out, fr)
	}
	return out
}

// resolveTags fills in the JSON property name of every field rule.
func resolveTags(fields []*FieldRules, structVal reflect.Value) error {
	for i, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() != reflect.Ptr {
			return fmt.Errorf("rule target for field index %d must be a pointer, got %s", i, fv.Kind())
		}
		sf := findStructField(structVal, fv)
		if sf == nil {
			return fmt.Errorf("rule target for field index %d not found in struct %s", i, structVal.Type())
		}
		if sf.Anonymous {
			fr.tag = ""
			continue
		}
		fr.tag = jsonName(*sf)
	}
	return nil
}
