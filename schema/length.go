package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type lengthRule struct {
	validation.LengthRule
	lo, hi int
}

// Length returns a validation rule that checks if a string's rune length, or
// the length of a list, is within [lo, hi]. A zero hi means no upper bound.
// The bounds are documented as minLength and maxLength, or as minItems and
// maxItems for arrays.
func Length(lo, hi int) Rule {
	return &lengthRule{validation.RuneLength(lo, hi), lo, hi}
}

func (r *lengthRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if ref.Value.Type.Is(openapi3.TypeArray) {
		ref.Value.MinItems = uint64(r.lo)
		if r.hi > 0 {
			hi := uint64(r.hi)
			ref.Value.MaxItems = &hi
		}
		return nil
	}
	ref.Value.MinLength = uint64(r.lo)
	if r.hi > 0 {
		hi := uint64(r.hi)
		ref.Value.MaxLength = &hi
	}
	return nil
}
