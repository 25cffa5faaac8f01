package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// docRule never fails validation; it only edits the property schema.
type docRule func(ref *openapi3.SchemaRef)

func (docRule) Validate(any) error { return nil }

func (r docRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	r(ref)
	return nil
}

// Describe returns a documentation-only rule that appends desc to the schema description.
func Describe(desc string) Rule {
	return docRule(func(ref *openapi3.SchemaRef) { appendDescription(ref, desc) })
}

// Example returns a documentation-only rule that sets the schema example value.
func Example(ex any) Rule {
	return docRule(func(ref *openapi3.SchemaRef) { ref.Value.Example = ex })
}

// Default returns a documentation-only rule that sets the schema default
// value. It does not fill in missing fields; use a [Normalizer] for that.
func Default(v any) Rule {
	return docRule(func(ref *openapi3.SchemaRef) { ref.Value.Default = v })
}

// Deprecated returns a documentation-only rule that marks the field as deprecated in the schema.
func Deprecated() Rule {
	return docRule(func(ref *openapi3.SchemaRef) { ref.Value.Deprecated = true })
}
