package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type presenceRule struct {
	validation.Rule
	note     string
	nullable bool
}

var (
	// NotNil is a validation rule that checks if a value is not nil. A pointer
	// to a zero value still passes; combine it with [Required] to reject that.
	NotNil Rule = presenceRule{Rule: validation.NotNil}
	// Nil is a validation rule that checks if a value is nil. The schema is
	// marked nullable.
	Nil Rule = presenceRule{Rule: validation.Nil, note: "null", nullable: true}
	// Empty checks if a not nil value is empty.
	Empty Rule = presenceRule{Rule: validation.Empty, note: "empty"}
)

func (r presenceRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Nullable = r.nullable
	appendDescription(ref, r.note)
	return nil
}
