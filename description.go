package apispec

import (
	"maps"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/apispec/schema"
)

// Location is a part of the request a schema is parsed from.
type Location string

const (
	Query   Location = "query"
	Headers Location = "headers"
	Cookies Location = "cookies"
	Path    Location = "path"
	JSON    Location = "json"
	Form    Location = "form"
	Body    Location = "body"

	// MatchInfo is another name for Path.
	MatchInfo = Path
)

// IsBody reports whether l is read from the request body.
func (l Location) IsBody() bool {
	switch l {
	case JSON, Form, Body:
		return true
	}
	return false
}

// Binding ties a schema to the request locations it is parsed from.
type Binding struct {
	Schema    *schema.Schema
	Locations []Location
	// PutInto stores the parsed value in its own request slot instead of
	// merging it into the request data.
	PutInto  string
	Required bool
}

// HasBody reports whether any of the binding's locations is a body location.
func (b Binding) HasBody() bool {
	return slices.ContainsFunc(b.Locations, Location.IsBody)
}

// Response documents one response of a view.
type Response struct {
	// Description defaults to the status text.
	Description string
	// Schema is anything schema.Of accepts; nil means no body.
	Schema   any
	Headers  map[string]string
	Examples map[string]any
}

// Description is everything documented about one view.
type Description struct {
	Tags        []string
	Summary     string
	Description string
	Parameters  []*openapi3.Parameter
	// Responses is keyed by status code; 0 is the default response.
	Responses map[int]Response
	Schemas   []Binding
	// Extra holds operation fields copied verbatim, such as operationId.
	Extra map[string]any
}

func (d *Description) clone() *Description {
	cp := *d
	cp.Tags = slices.Clone(d.Tags)
	cp.Parameters = slices.Clone(d.Parameters)
	cp.Responses = maps.Clone(d.Responses)
	cp.Schemas = slices.Clone(d.Schemas)
	cp.Extra = maps.Clone(d.Extra)
	return &cp
}

func (d *Description) hasBody() bool {
	return slices.ContainsFunc(d.Schemas, Binding.HasBody)
}
