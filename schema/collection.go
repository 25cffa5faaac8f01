package schema

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

type uniqueRule struct {
	key func(elem any) any
}

// Unique returns a validation rule that checks if all elements in a slice are
// unique according to key. A nil key compares the elements themselves, which
// must then be comparable. The schema is documented with uniqueItems.
func Unique(key func(elem any) any) Rule {
	if key == nil {
		key = func(elem any) any { return elem }
	}
	return uniqueRule{key: key}
}

func (r uniqueRule) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return nil
	}
	rv = reflect.Indirect(rv)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return errors.New("must be a list")
	}
	seen := make(map[any]struct{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		k := r.key(rv.Index(i).Interface())
		if _, dup := seen[k]; dup {
			return errors.New("must not contain duplicates")
		}
		seen[k] = struct{}{}
	}
	return nil
}

func (uniqueRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.UniqueItems = true
	return nil
}

type keyInRule struct {
	keys []string
}

// KeyIn ensures that the keys of a map are in the allowed keys.
func KeyIn(keys ...string) Rule {
	return keyInRule{keys: keys}
}

func (r keyInRule) Validate(value any) error {
	rv := reflect.Indirect(reflect.ValueOf(value))
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil
	}
	iter := rv.MapRange()
	for iter.Next() {
		k := fmt.Sprint(iter.Key().Interface())
		if !slices.Contains(r.keys, k) {
			return fmt.Errorf("key '%s' not allowed", k)
		}
	}
	return nil
}

func (r keyInRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, fmt.Sprintf("keys must be in (%s)", strings.Join(r.keys, ",")))
	return nil
}
