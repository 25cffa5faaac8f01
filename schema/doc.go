// Package schema describes request and response shapes as Go structs with
// validation rules, and derives OpenAPI 3 schemas from the same rules.
//
// Implement [Ruler] on a struct to attach rules to its fields:
//
//	func (u *User) Rules() []*schema.FieldRules {
//	    return []*schema.FieldRules{
//	        schema.Field(&u.ID, schema.Required),
//	        schema.Field(&u.Name, schema.Required, schema.Length(1, 100)),
//	    }
//	}
//
// Wrap a value with [Of] or [Partial] to obtain a [Schema] that knows its
// OpenAPI component name, generates its JSON schema and validates decoded
// values. Partial schemas skip required checks, both when validating and in
// the generated document.
//
// Sub-packages:
//   - is – string format rules backed by govalidator
package schema
