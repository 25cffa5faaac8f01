package apispec

import (
	"fmt"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/apispec/schema"
)

// Decorator edits a view's description. Decorators given to Handle or
// Decorate run left to right.
type Decorator func(*Description) error

// Doc is the static documentation of a view.
type Doc struct {
	Tags        []string
	Summary     string
	Description string
	// Responses is keyed by status code; 0 is the default response.
	Responses  map[int]Response
	Parameters []*openapi3.Parameter
	// Extra operation fields, applied verbatim over the generated operation.
	Extra map[string]any
}

// Docs merges doc into the description: tags are added to the set, summary
// and description replace non-empty values, responses replace those with the
// same status and parameters are appended.
func Docs(doc Doc) Decorator {
	return func(d *Description) error {
		for _, tag := range doc.Tags {
			if !slices.Contains(d.Tags, tag) {
				d.Tags = append(d.Tags, tag)
			}
		}
		if doc.Summary != "" {
			d.Summary = doc.Summary
		}
		if doc.Description != "" {
			d.Description = doc.Description
		}
		if len(doc.Responses) > 0 && d.Responses == nil {
			d.Responses = make(map[int]Response, len(doc.Responses))
		}
		for status, resp := range doc.Responses {
			d.Responses[status] = resp
		}
		d.Parameters = append(d.Parameters, doc.Parameters...)
		if len(doc.Extra) > 0 && d.Extra == nil {
			d.Extra = make(map[string]any, len(doc.Extra))
		}
		for k, v := range doc.Extra {
			d.Extra[k] = v
		}
		return nil
	}
}

// BindingOption configures a RequestSchema binding.
type BindingOption func(*Binding)

// In sets the locations the schema is parsed from. The default is JSON.
func In(locations ...Location) BindingOption {
	return func(b *Binding) { b.Locations = locations }
}

// PutInto stores the parsed value under name instead of merging it into the
// request data.
func PutInto(name string) BindingOption {
	return func(b *Binding) { b.PutInto = name }
}

// Required marks a body schema as required in the document.
func Required(required bool) BindingOption {
	return func(b *Binding) { b.Required = required }
}

// RequestSchema parses requests to the view with s, anything schema.Of
// accepts. Only one body schema is allowed per view, and a list schema read
// from the body must not name other locations.
func RequestSchema(s any, opts ...BindingOption) Decorator {
	return func(d *Description) error {
		if s == nil {
			return ErrNilSchema
		}
		b := Binding{Schema: schema.Of(s), Locations: []Location{JSON}}
		for _, opt := range opts {
			opt(&b)
		}
		if b.Schema.Type() == nil {
			return ErrNilSchema
		}
		if len(b.Locations) == 0 {
			b.Locations = []Location{JSON}
		}
		if b.HasBody() && b.Schema.Many() && len(b.Locations) > 1 {
			return fmt.Errorf("%s: %w", b.Schema.Type(), ErrListBodyLocations)
		}
		if b.HasBody() && d.hasBody() {
			return fmt.Errorf("%s: %w", b.Schema.Type(), ErrMultipleBodyParameters)
		}
		d.Schemas = append(d.Schemas, b)
		return nil
	}
}

func located(loc Location) func(s any, opts ...BindingOption) Decorator {
	return func(s any, opts ...BindingOption) Decorator {
		return RequestSchema(s, append([]BindingOption{In(loc)}, opts...)...)
	}
}

var (
	// QuerySchema parses the query string.
	QuerySchema = located(Query)
	// FormSchema parses a form body.
	FormSchema = located(Form)
	// JSONSchema parses a JSON body.
	JSONSchema = located(JSON)
	// HeadersSchema parses request headers.
	HeadersSchema = located(Headers)
	// CookiesSchema parses cookies.
	CookiesSchema = located(Cookies)
	// PathSchema parses the matched path parameters.
	PathSchema = located(Path)
	// MatchInfoSchema is PathSchema.
	MatchInfoSchema = PathSchema
)

// ResponseSchema documents s as the response body for status, replacing any
// response already documented there.
func ResponseSchema(s any, status int, description string) Decorator {
	return func(d *Description) error {
		if s == nil {
			return ErrNilSchema
		}
		if d.Responses == nil {
			d.Responses = map[int]Response{}
		}
		d.Responses[status] = Response{Description: description, Schema: s}
		return nil
	}
}

var (
	// UseKwargs is RequestSchema.
	UseKwargs = RequestSchema
	// MarshalWith is ResponseSchema.
	MarshalWith = ResponseSchema
)
