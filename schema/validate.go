package schema

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks value against its declared rules. Struct fields, slice
// elements and map values whose types declare rules are checked recursively,
// whether or not the enclosing struct lists them in its [Ruler] rules, so a
// field is validated by every rule [Generate] documents for it.
func Validate(ctx context.Context, value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return nil
	}
	if fields, ok := rulesOf(ctx, value); ok {
		return validateStruct(ctx, value, fields)
	}
	if rv.Kind() == reflect.Struct {
		// ozzo hands struct fields over by value; rules live on *T.
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		if fields, ok := rulesOf(ctx, ptr.Interface()); ok {
			return validateStruct(ctx, ptr.Interface(), fields)
		}
		rv = ptr
	}
	if vr, ok := value.(ValueRuler); ok {
		for _, rule := range vr.ValueRules() {
			if err := rule.Validate(value); err != nil {
				return err
			}
		}
		return nil
	}

	rv = reflect.Indirect(rv)
	switch rv.Kind() {
	case reflect.Struct:
		errs := Errors{}
		validateUnlisted(ctx, rv, nil, errs)
		return errs.Filter()
	case reflect.Slice, reflect.Array:
		errs := Errors{}
		for i := range rv.Len() {
			if err := validateElem(ctx, rv.Index(i)); err != nil {
				errs[strconv.Itoa(i)] = err
			}
		}
		return errs.Filter()
	case reflect.Map:
		errs := Errors{}
		iter := rv.MapRange()
		for iter.Next() {
			if err := validateElem(ctx, iter.Value()); err != nil {
				errs[fmt.Sprint(iter.Key().Interface())] = err
			}
		}
		return errs.Filter()
	}
	return nil
}

func validateElem(ctx context.Context, v reflect.Value) error {
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		return Validate(ctx, v.Interface())
	}
	if v.CanAddr() {
		return Validate(ctx, v.Addr().Interface())
	}
	return Validate(ctx, v.Interface())
}

// nested re-enters Validate for every field so that children declaring
// their own rules are checked without listing them explicitly.
type nested struct {
	ctx context.Context
}

func (n nested) Validate(value any) error {
	if value == nil {
		return nil
	}
	return Validate(n.ctx, value)
}

// fieldKey identifies a struct field by address and type; an embedded struct
// and its first field share an address.
type fieldKey struct {
	addr uintptr
	typ  reflect.Type
}

// validateStruct runs the listed field rules through ozzo, then checks the
// fields the rules leave out.
func validateStruct(ctx context.Context, structPtr any, fields []*FieldRules) error {
	flat := expandFields(ctx, structPtr, fields)
	listed := make(map[fieldKey]bool, len(flat))
	for _, fr := range flat {
		if fv := reflect.ValueOf(fr.fieldPtr); fv.Kind() == reflect.Ptr {
			listed[fieldKey{fv.Pointer(), fv.Type().Elem()}] = true
		}
	}

	errs := Errors{}
	if err := validation.ValidateStruct(structPtr, ozzoFields(ctx, flat)...); err != nil {
		fieldErrs, ok := err.(validation.Errors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	validateUnlisted(ctx, reflect.Indirect(reflect.ValueOf(structPtr)), listed, errs)
	return errs.Filter()
}

// validateUnlisted validates every exported field of the addressable struct
// sv that is not in listed, keyed by its JSON name. Embedded structs are
// walked in place since their fields are promoted.
func validateUnlisted(ctx context.Context, sv reflect.Value, listed map[fieldKey]bool, errs Errors) {
	for i := range sv.NumField() {
		sf := sv.Type().Field(i)
		fv := sv.Field(i)
		if listed[fieldKey{fv.Addr().Pointer(), sf.Type}] {
			continue
		}
		if sf.Anonymous {
			inner := fv
			if inner.Kind() == reflect.Ptr {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				validateUnlisted(ctx, inner, listed, errs)
			}
			continue
		}
		if !sf.IsExported() || !fv.CanInterface() {
			continue
		}
		name := jsonName(sf)
		if name == "-" || strings.Split(sf.Tag.Get("docs"), ",")[0] == "skip" {
			continue
		}
		if _, seen := errs[name]; seen {
			continue
		}
		if err := validateElem(ctx, fv); err != nil {
			errs[name] = err
		}
	}
}

func ozzoFields(ctx context.Context, flat []*FieldRules) []*validation.FieldRules {
	out := make([]*validation.FieldRules, len(flat))
	for i, fr := range flat {
		rules := append(toOzzo(fr.rules), nested{ctx: ctx})
		out[i] = validation.Field(fr.fieldPtr, rules...)
	}
	return out
}

// dropRequired removes required-check failures from a validation result.
func dropRequired(err error) error {
	errs, ok := err.(validation.Errors)
	if !ok {
		if isRequiredError(err) {
			return nil
		}
		return err
	}
	kept := Errors{}
	for field, e := range errs {
		if !isRequiredError(e) {
			kept[field] = e
		}
	}
	return kept.Filter()
}
