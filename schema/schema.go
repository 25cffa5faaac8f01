package schema

import (
	"context"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema is a request or response shape: a prototype value plus the
// options it is used with.
type Schema struct {
	typ     reflect.Type
	partial bool
}

// Of returns the Schema for v. v may be a value, a pointer to one, a
// reflect.Type or a *Schema, which is returned as is.
func Of(v any) *Schema {
	switch s := v.(type) {
	case *Schema:
		return s
	case reflect.Type:
		return &Schema{typ: deref(s)}
	}
	return &Schema{typ: deref(reflect.TypeOf(v))}
}

// Partial is like Of but the returned schema does not enforce required
// fields, neither when validating nor in the generated document.
func Partial(v any) *Schema {
	s := *Of(v)
	s.partial = true
	return &s
}

func deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// Type is the decoded Go type, never a pointer.
func (s *Schema) Type() reflect.Type { return s.typ }

// IsPartial reports whether required checks are disabled.
func (s *Schema) IsPartial() bool { return s.partial }

// Many reports whether the schema describes a list of items.
func (s *Schema) Many() bool {
	return s.typ != nil && (s.typ.Kind() == reflect.Slice || s.typ.Kind() == reflect.Array)
}

// Item is the element type of a list schema, or the schema type itself.
func (s *Schema) Item() reflect.Type {
	if s.Many() {
		return deref(s.typ.Elem())
	}
	return s.typ
}

// Name is the OpenAPI component name: the type name (of the element type for
// lists) with a "Partial-" prefix for partial schemas and a trailing "Schema"
// removed. Unnamed types have no name and are documented inline.
func (s *Schema) Name() string {
	item := s.Item()
	if item == nil || item.Name() == "" {
		return ""
	}
	name := item.Name()
	if s.partial {
		name = "Partial-" + name
	}
	if trimmed := strings.TrimSuffix(name, "Schema"); trimmed != "" {
		return trimmed
	}
	return name
}

// New allocates a zero value to decode into and returns a pointer to it.
func (s *Schema) New() any {
	return reflect.New(s.typ).Interface()
}

// Generate builds the JSON schema of a single item; for lists the caller
// wraps it in an array. Partial schemas carry no required list.
func (s *Schema) Generate() (*openapi3.SchemaRef, error) {
	ref, err := Generate(reflect.New(s.Item()).Elem().Interface())
	if err != nil {
		return nil, err
	}
	if s.partial && ref.Value != nil {
		ref.Value.Required = nil
	}
	return ref, nil
}

// Validate normalises and validates a decoded value.
func (s *Schema) Validate(ctx context.Context, v any) error {
	Normalize(ctx, v)
	err := Validate(ctx, v)
	if err != nil && s.partial {
		return dropRequired(err)
	}
	return err
}
