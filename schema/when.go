package schema

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// WhenRule validates conditionally: it applies one set of rules when the
// condition is true, and an optional alternative set (via [WhenRule.Else])
// when false. Use [When] to create one.
type WhenRule struct {
	condition bool
	desc      string
	then      []Rule
	otherwise []Rule
}

// When returns a conditional validation rule that applies rules only when
// condition is true. desc names the condition in the generated description.
func When(condition bool, desc string, rules ...Rule) *WhenRule {
	return &WhenRule{condition: condition, desc: desc, then: rules}
}

// Else specifies alternative rules to apply when the [When] condition is false.
func (r *WhenRule) Else(rules ...Rule) *WhenRule {
	r.otherwise = rules
	return r
}

func (r *WhenRule) Validate(value any) error {
	rules := r.otherwise
	if r.condition {
		rules = r.then
	}
	return validation.Validate(value, toOzzo(rules)...)
}

// Describe implements [Rule] by appending a human-readable summary of both
// branches to the schema description. Conditional rules never touch the
// enclosing required list.
func (r *WhenRule) Describe(name string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	then, err := summarize(name, r.then)
	if err != nil {
		return err
	}
	if then != "" && r.desc != "" {
		then = fmt.Sprintf("when %s: %s", r.desc, then)
	}
	appendDescription(ref, then)

	otherwise, err := summarize(name, r.otherwise)
	if err != nil {
		return err
	}
	if otherwise != "" {
		appendDescription(ref, "else: "+otherwise)
	}
	return nil
}

// summarize describes rules onto a scratch schema and renders the result.
func summarize(name string, rules []Rule) (string, error) {
	if len(rules) == 0 {
		return "", nil
	}
	parent := openapi3.NewObjectSchema()
	ref := &openapi3.SchemaRef{Value: openapi3.NewSchema()}
	for _, rule := range rules {
		if err := rule.Describe(name, parent, ref); err != nil {
			return "", err
		}
	}

	var parts []string
	v := ref.Value
	if v.Description != "" {
		parts = append(parts, v.Description)
	}
	if len(parent.Required) > 0 {
		parts = append(parts, "required")
	}
	if v.Min != nil {
		parts = append(parts, fmt.Sprintf("min %g", *v.Min))
	}
	if v.Max != nil {
		parts = append(parts, fmt.Sprintf("max %g", *v.Max))
	}
	if v.MinLength > 0 {
		parts = append(parts, fmt.Sprintf("min length %d", v.MinLength))
	}
	if v.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("max length %d", *v.MaxLength))
	}
	if len(v.Enum) > 0 {
		vals := make([]string, len(v.Enum))
		for i := range v.Enum {
			vals[i] = fmt.Sprint(v.Enum[i])
		}
		parts = append(parts, "one of ["+strings.Join(vals, ", ")+"]")
	}
	if v.UniqueItems {
		parts = append(parts, "unique")
	}
	return strings.Join(parts, ", "), nil
}
