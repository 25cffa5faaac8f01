package openapi

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// Methods lists the HTTP methods a path item has an operation slot for, in
// document order.
var Methods = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
	http.MethodPatch,
	http.MethodTrace,
}

// HasMethod reports whether method has an operation slot.
func HasMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(title, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Description: description,
			Version:     version,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: openapi3.Schemas{}},
	}
}

// AddPath sets op at path and method, replacing any operation already there.
// Methods without a slot are ignored.
func AddPath(doc *openapi3.T, path, method string, op *openapi3.Operation) {
	if !HasMethod(method) {
		return
	}
	p := doc.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}
	p.SetOperation(method, op)
	doc.Paths.Set(path, p)
}
