// Package openapi builds the pieces of an OpenAPI 3 document from
// [schema.Schema] values: the document base, operations at a path and
// method, parameters expanded from a schema's properties, request bodies,
// responses and the component schemas they reference.
//
//	doc := openapi.DocBase("Users API", "", "1.0")
//	body, _ := openapi.NewRequestBody(doc, schema.Of(User{}), []string{openapi.JSON}, true)
//	openapi.AddPath(doc, "/users", http.MethodPost, &openapi3.Operation{
//	    RequestBody: body,
//	    Responses:   openapi3.NewResponses(),
//	})
package openapi
