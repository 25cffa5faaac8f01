// Package apispec documents a chi router as an OpenAPI document and
// validates requests with the same schemas.
//
// Wrap handlers with [Handle] or [HandleFunc] and describe them with
// decorators:
//
//	getUser := apispec.HandleFunc(getUser,
//	    apispec.Docs(apispec.Doc{Tags: []string{"users"}, Summary: "Get user"}),
//	    apispec.ResponseSchema(User{}, http.StatusOK, "Ok. User"),
//	)
//	createUser := apispec.HandleFunc(createUser,
//	    apispec.JSONSchema(User{}),
//	)
//
// Register the views, install the [Spec.Middleware] and register the spec
// once the routes are defined:
//
//	spec := apispec.New(apispec.WithTitle("Users"))
//	r := chi.NewRouter()
//	r.Use(spec.Middleware)
//	r.Method(http.MethodGet, "/users/{id}/", getUser)
//	r.Method(http.MethodPost, "/users/", createUser)
//	if err := spec.Register(r, true); err != nil {
//	    return err
//	}
//
// Views read what the middleware parsed with [Data], [Bind], [Slot] and
// [Value].
//
// Sub-packages:
//   - schema – rule-based struct schemas, validation and schema generation
//   - schema/is – string format rules
//   - openapi – OpenAPI document builders
package apispec
