package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type eachRule struct {
	validation.EachRule
	rules []Rule
}

// Each returns a validation rule that applies the given rules to every
// element of a slice or array, or to every value of a map. The rules describe
// the items schema.
func Each(rules ...Rule) Rule {
	return &eachRule{validation.Each(toOzzo(rules)...), rules}
}

// Describe documents the element rules on the items schema when there is one.
func (r *eachRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	target := ref
	if ref.Value.Items != nil && ref.Value.Items.Value != nil {
		target = ref.Value.Items
	}
	for _, rule := range r.rules {
		if err := rule.Describe(name, schema, target); err != nil {
			return err
		}
	}
	return nil
}
