package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type stringRule struct {
	validation.StringRule
	desc   string
	format string
}

// NewStringRule returns a string validation rule that accepts a value when
// validate reports true. desc is used as the error message. A non-empty
// format is set as the schema format; otherwise desc is appended to the
// schema description.
func NewStringRule(validate func(string) bool, desc, format string) Rule {
	return stringRule{validation.NewStringRule(validate, desc), desc, format}
}

func (r stringRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if r.format != "" {
		ref.Value.Format = r.format
		return nil
	}
	appendDescription(ref, r.desc)
	return nil
}

type funcRule struct {
	f    RuleFunc
	desc string
}

// By wraps f as a [Rule] whose schema documentation is desc.
func By(f RuleFunc, desc string) Rule {
	return funcRule{f: f, desc: desc}
}

func (r funcRule) Validate(value any) error { return r.f(value) }

func (r funcRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}
