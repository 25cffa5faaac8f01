package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type requiredRule struct {
	validation.RequiredRule
}

// Required is a validation rule that checks if a value is not empty.
// The field is added to the required list of the enclosing schema.
var Required = requiredRule{validation.Required}

func (requiredRule) Describe(name string, schema *openapi3.Schema, _ *openapi3.SchemaRef) error {
	for _, n := range schema.Required {
		if n == name {
			return nil
		}
	}
	schema.Required = append(schema.Required, name)
	return nil
}

// isRequiredError reports whether err was produced by a required check.
// Partial schemas drop these.
func isRequiredError(err error) bool {
	e, ok := err.(validation.Error)
	if !ok {
		return false
	}
	switch e.Code() {
	case validation.ErrRequired.Code(), validation.ErrNilOrNotEmpty.Code():
		return true
	}
	return false
}
