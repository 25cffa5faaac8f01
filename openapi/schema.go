package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/apispec/schema"
)

// Content types used for request bodies and responses.
const (
	JSON      = "application/json"
	Form      = "application/x-www-form-urlencoded"
	Multipart = "multipart/form-data"
)

const componentPrefix = "#/components/schemas/"

// NewSchemaRef generates the schema for s. Named schemas are stored once in
// the document components and referenced; unnamed ones are inlined. List
// schemas become an array of their item.
func NewSchemaRef(doc *openapi3.T, s *schema.Schema) (*openapi3.SchemaRef, error) {
	item, err := itemRef(doc, s)
	if err != nil {
		return nil, err
	}
	if !s.Many() {
		return item, nil
	}
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:  &openapi3.Types{openapi3.TypeArray},
		Items: item,
	}}, nil
}

func itemRef(doc *openapi3.T, s *schema.Schema) (*openapi3.SchemaRef, error) {
	ref, err := s.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate schema %s: %w", s.Type(), err)
	}
	name := s.Name()
	if name == "" {
		return ref, nil
	}
	if doc.Components == nil {
		doc.Components = &openapi3.Components{}
	}
	if doc.Components.Schemas == nil {
		doc.Components.Schemas = openapi3.Schemas{}
	}

	name = componentName(doc.Components.Schemas, s, name, ref.Value)
	if existing, ok := doc.Components.Schemas[name]; ok {
		return openapi3.NewSchemaRef(componentPrefix+name, existing.Value), nil
	}
	doc.Components.Schemas[name] = ref
	return openapi3.NewSchemaRef(componentPrefix+name, ref.Value), nil
}

// componentName returns the name to store value under. A name already taken
// by a different schema, such as a same-named type from another package, is
// qualified with the package name and then numbered.
func componentName(schemas openapi3.Schemas, s *schema.Schema, name string, value *openapi3.Schema) string {
	free := func(n string) bool {
		existing, ok := schemas[n]
		return !ok || sameSchema(existing.Value, value)
	}
	if free(name) {
		return name
	}
	if pkg := path.Base(s.Item().PkgPath()); pkg != "." && pkg != "/" {
		name = pkg + "." + name
	}
	candidate := name
	for i := 2; !free(candidate); i++ {
		candidate = name + "-" + strconv.Itoa(i)
	}
	return candidate
}

func sameSchema(a, b *openapi3.Schema) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// NewParameters expands the properties of s into one parameter each, in
// property name order. in is one of the openapi3.ParameterIn constants;
// path parameters are always required.
func NewParameters(s *schema.Schema, in string) (openapi3.Parameters, error) {
	ref, err := s.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate schema %s: %w", s.Type(), err)
	}
	props := ref.Value.Properties
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(ref.Value.Required))
	for _, name := range ref.Value.Required {
		required[name] = true
	}

	params := make(openapi3.Parameters, 0, len(names))
	for _, name := range names {
		prop := props[name]
		p := &openapi3.Parameter{
			Name:     name,
			In:       in,
			Required: required[name] || in == openapi3.ParameterInPath,
			Schema:   prop,
		}
		if prop.Value != nil {
			p.Description = prop.Value.Description
			p.Deprecated = prop.Value.Deprecated
		}
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	return params, nil
}

// NewRequestBody documents s as the body for each of contentTypes.
func NewRequestBody(doc *openapi3.T, s *schema.Schema, contentTypes []string, required bool) (*openapi3.RequestBodyRef, error) {
	ref, err := NewSchemaRef(doc, s)
	if err != nil {
		return nil, err
	}
	if len(contentTypes) == 0 {
		contentTypes = []string{JSON}
	}
	body := openapi3.NewRequestBody().WithRequired(required)
	body.Content = openapi3.Content{}
	for _, ct := range contentTypes {
		body.Content[ct] = openapi3.NewMediaType().WithSchemaRef(ref)
	}
	return &openapi3.RequestBodyRef{Value: body}, nil
}

// Response describes one documented response.
type Response struct {
	Description string
	// Schema is the JSON body; nil means no body.
	Schema *schema.Schema
	// Headers maps a header name to its description.
	Headers map[string]string
	// Examples maps an example name to its value.
	Examples map[string]any
}

// NewResponse builds the response object for r. An empty description falls
// back to the status text of status.
func NewResponse(doc *openapi3.T, status int, r Response) (*openapi3.ResponseRef, error) {
	desc := r.Description
	if desc == "" {
		desc = http.StatusText(status)
	}
	if desc == "" {
		desc = "Default response"
	}
	resp := openapi3.NewResponse().WithDescription(desc)

	if len(r.Headers) > 0 {
		resp.Headers = openapi3.Headers{}
		for name, hdesc := range r.Headers {
			resp.Headers[name] = &openapi3.HeaderRef{Value: &openapi3.Header{Parameter: openapi3.Parameter{
				Description: hdesc,
				Schema:      openapi3.NewStringSchema().NewRef(),
			}}}
		}
	}

	if r.Schema != nil || len(r.Examples) > 0 {
		mt := openapi3.NewMediaType()
		if r.Schema != nil {
			ref, err := NewSchemaRef(doc, r.Schema)
			if err != nil {
				return nil, err
			}
			mt.Schema = ref
		}
		if len(r.Examples) > 0 {
			mt.Examples = openapi3.Examples{}
			for name, v := range r.Examples {
				mt.Examples[name] = &openapi3.ExampleRef{Value: openapi3.NewExample(v)}
			}
		}
		resp.Content = openapi3.Content{JSON: mt}
	}
	return &openapi3.ResponseRef{Value: resp}, nil
}

// StatusKey is the responses map key for status; 0 is "default".
func StatusKey(status int) string {
	if status == 0 {
		return "default"
	}
	return fmt.Sprint(status)
}
