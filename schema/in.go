package schema

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type inRule struct {
	validation.InRule
	values []any
}

// In returns a validation rule that checks if a value is one of the allowed
// values. The values are documented as the schema enum.
func In(values ...any) Rule {
	quoted := make([]string, len(values))
	for i := range values {
		quoted[i] = fmt.Sprintf("'%v'", values[i])
	}
	msg := "must be one of " + strings.Join(quoted, ", ")
	return &inRule{validation.In(values...).Error(msg), values}
}

func (r *inRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Enum = append([]any(nil), r.values...)
	return nil
}
