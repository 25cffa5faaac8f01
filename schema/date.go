package schema

import (
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateRule validates that a string value parses with the given time layout.
// Use [Date] to create one, then chain [DateRule.Min] and [DateRule.Max] to
// bound the accepted range, which is also written to the schema description.
type DateRule struct {
	validation.DateRule
	layout   string
	min, max time.Time
}

// Date creates a date validation rule with the given layout, such as
// time.DateOnly. The layout decides the documented format: date for
// time.DateOnly, date-time for time.RFC3339.
func Date(layout string) *DateRule {
	return &DateRule{DateRule: validation.Date(layout), layout: layout}
}

// Min sets the earliest accepted date. Earlier dates fail validation.
func (r *DateRule) Min(t time.Time) *DateRule {
	r.min = t
	r.DateRule = r.DateRule.Min(t)
	return r
}

// Max sets the latest accepted date.
func (r *DateRule) Max(t time.Time) *DateRule {
	r.max = t
	r.DateRule = r.DateRule.Max(t)
	return r
}

// Describe implements [Rule] by setting the format and date range on the schema.
func (r *DateRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	switch r.layout {
	case time.DateOnly:
		ref.Value.Format = "date"
	case time.RFC3339, time.RFC3339Nano:
		ref.Value.Format = "date-time"
	default:
		ref.Value.Format = r.layout
	}
	if !r.min.IsZero() {
		appendDescription(ref, "not before "+r.min.Format(r.layout))
	}
	if !r.max.IsZero() {
		appendDescription(ref, "not after "+r.max.Format(r.layout))
	}
	return nil
}
