package schema

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type (
	// Rule validates a value and documents itself on an OpenAPI schema.
	// Describe receives the enclosing object schema (for object-level
	// keywords such as required) and the property schema ref.
	Rule interface {
		Validate(value any) error
		Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
	}

	// RuleFunc validates a single value.
	RuleFunc func(value any) error

	// FieldRules binds a struct field pointer to its rules.
	FieldRules struct {
		fieldPtr any
		tag      string
		rules    []Rule
	}

	// Ruler is implemented by structs that declare field rules.
	Ruler interface {
		Rules() []*FieldRules
	}

	// ContextRuler is like Ruler but builds its rules from a context.
	ContextRuler interface {
		Rules(ctx context.Context) []*FieldRules
	}

	// ValueRuler is implemented by non-struct types (type Gender string)
	// that carry their own rules wherever they appear as a field.
	ValueRuler interface {
		ValueRules() []Rule
	}
)

// Errors maps field names to their validation errors. It is ozzo-validation's
// error map and marshals to JSON as {"field": "message"}.
type Errors = validation.Errors

// Field binds fieldPtr to rules.
func Field[T any](fieldPtr *T, rules ...Rule) *FieldRules {
	return &FieldRules{fieldPtr: fieldPtr, rules: rules}
}

func rulesOf(ctx context.Context, v any) ([]*FieldRules, bool) {
	switch r := v.(type) {
	case Ruler:
		return r.Rules(), true
	case ContextRuler:
		return r.Rules(ctx), true
	}
	return nil, false
}

func toOzzo(rules []Rule) []validation.Rule {
	out := make([]validation.Rule, len(rules))
	for i := range rules {
		out[i] = rules[i]
	}
	return out
}

// appendDescription adds text to the property description, space separated.
func appendDescription(ref *openapi3.SchemaRef, text string) {
	if text == "" {
		return
	}
	if ref.Value.Description != "" {
		ref.Value.Description += " "
	}
	ref.Value.Description += text
}
