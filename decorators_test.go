package apispec_test

import (
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/apispec"
	"github.com/Gobd/apispec/schema"
)

type bodyIn struct {
	Name string `json:"name"`
}

type otherBody struct {
	Title string `json:"title"`
}

type queryIn struct {
	Q string `json:"q"`
}

type headersIn struct {
	Token string `json:"token"`
}

func noop(http.ResponseWriter, *http.Request) {}

func TestDocs_TagsUnion(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop,
		apispec.Docs(apispec.Doc{Tags: []string{"users", "admin"}}),
		apispec.Docs(apispec.Doc{Tags: []string{"admin", "audit"}}),
	)

	desc, ok := cat.Lookup(v)
	require.True(t, ok)
	assert.Equal(t, []string{"users", "admin", "audit"}, desc.Tags)
}

func TestDocs_Merge(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop, apispec.Docs(apispec.Doc{
		Summary:     "first",
		Description: "kept",
		Responses: map[int]apispec.Response{
			http.StatusOK:       {Description: "old"},
			http.StatusNotFound: {Description: "Not Found"},
		},
		Parameters: []*openapi3.Parameter{openapi3.NewHeaderParameter("X-Trace")},
		Extra:      map[string]any{"operationId": "one"},
	}))
	require.NoError(t, cat.Decorate(v, apispec.Docs(apispec.Doc{
		Summary:   "second",
		Responses: map[int]apispec.Response{http.StatusOK: {Description: "new"}},
		Extra:     map[string]any{"deprecated": true},
	})))

	desc, ok := cat.Lookup(v)
	require.True(t, ok)
	assert.Equal(t, "second", desc.Summary)
	assert.Equal(t, "kept", desc.Description)
	assert.Equal(t, "new", desc.Responses[http.StatusOK].Description)
	assert.Equal(t, "Not Found", desc.Responses[http.StatusNotFound].Description)
	assert.Len(t, desc.Parameters, 1)
	assert.Equal(t, map[string]any{"operationId": "one", "deprecated": true}, desc.Extra)
}

func TestRequestSchema_MultipleBody(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop, apispec.JSONSchema(bodyIn{}), apispec.Docs(apispec.Doc{Tags: []string{"a"}}))

	err := cat.Decorate(v,
		apispec.Docs(apispec.Doc{Tags: []string{"b"}}),
		apispec.FormSchema(otherBody{}),
	)
	require.ErrorIs(t, err, apispec.ErrMultipleBodyParameters)
	assert.Contains(t, err.Error(), "multiple body parameters are not allowed")

	desc, ok := cat.Lookup(v)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, desc.Tags)
	require.Len(t, desc.Schemas, 1)
	assert.Equal(t, "bodyIn", desc.Schemas[0].Schema.Type().Name())
}

func TestRequestSchema_MultipleBodyPanicsInHandle(t *testing.T) {
	cat := apispec.NewCatalog()
	assert.Panics(t, func() {
		cat.HandleFunc(noop, apispec.JSONSchema(bodyIn{}), apispec.RequestSchema(otherBody{}, apispec.In(apispec.Body)))
	})
}

func TestRequestSchema_NonBodyLocationsStack(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop,
		apispec.QuerySchema(queryIn{}),
		apispec.HeadersSchema(headersIn{}, apispec.PutInto("headers")),
		apispec.JSONSchema(bodyIn{}, apispec.Required(true)),
		apispec.CookiesSchema(headersIn{}),
		apispec.MatchInfoSchema(queryIn{}),
	)

	desc, _ := cat.Lookup(v)
	require.Len(t, desc.Schemas, 5)
	assert.Equal(t, []apispec.Location{apispec.Query}, desc.Schemas[0].Locations)
	assert.Equal(t, "headers", desc.Schemas[1].PutInto)
	assert.True(t, desc.Schemas[2].Required)
	assert.True(t, desc.Schemas[2].HasBody())
	assert.Equal(t, []apispec.Location{apispec.Cookies}, desc.Schemas[3].Locations)
	assert.Equal(t, []apispec.Location{apispec.Path}, desc.Schemas[4].Locations)
}

func TestRequestSchema_Defaults(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop, apispec.UseKwargs(&bodyIn{}))

	desc, _ := cat.Lookup(v)
	require.Len(t, desc.Schemas, 1)
	assert.Equal(t, []apispec.Location{apispec.JSON}, desc.Schemas[0].Locations)
	assert.Empty(t, desc.Schemas[0].PutInto)
}

func TestRequestSchema_Partial(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop, apispec.JSONSchema(schema.Partial(bodyIn{})))

	desc, _ := cat.Lookup(v)
	assert.True(t, desc.Schemas[0].Schema.IsPartial())
	assert.Equal(t, "Partial-bodyIn", desc.Schemas[0].Schema.Name())
}

func TestRequestSchema_Nil(t *testing.T) {
	cat := apispec.NewCatalog()
	err := cat.Decorate(cat.HandleFunc(noop), apispec.QuerySchema(nil))
	assert.ErrorIs(t, err, apispec.ErrNilSchema)
}

func TestResponseSchema(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop,
		apispec.Docs(apispec.Doc{Responses: map[int]apispec.Response{http.StatusOK: {Description: "from docs"}}}),
		apispec.MarshalWith(bodyIn{}, http.StatusOK, "Ok. Body"),
		apispec.ResponseSchema([]bodyIn{}, http.StatusCreated, ""),
	)

	desc, _ := cat.Lookup(v)
	assert.Equal(t, "Ok. Body", desc.Responses[http.StatusOK].Description)
	assert.Equal(t, bodyIn{}, desc.Responses[http.StatusOK].Schema)
	assert.Equal(t, []bodyIn{}, desc.Responses[http.StatusCreated].Schema)
}

func TestHandle_KeepsIdentity(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop, apispec.Docs(apispec.Doc{Summary: "s"}))
	again := cat.Handle(v, apispec.Docs(apispec.Doc{Tags: []string{"t"}}))

	assert.Same(t, v, again)
	desc, _ := cat.Lookup(again)
	assert.Equal(t, "s", desc.Summary)
	assert.Equal(t, []string{"t"}, desc.Tags)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop, apispec.Docs(apispec.Doc{Tags: []string{"a"}}))

	desc, _ := cat.Lookup(v)
	desc.Tags[0] = "changed"
	desc.Summary = "changed"

	again, _ := cat.Lookup(v)
	assert.Equal(t, []string{"a"}, again.Tags)
	assert.Empty(t, again.Summary)
}

func TestLookup_NotAView(t *testing.T) {
	_, ok := apispec.Lookup(http.HandlerFunc(noop))
	assert.False(t, ok)
	_, ok = apispec.NewCatalog().Lookup(apispec.HandleFunc(noop))
	assert.False(t, ok)
}

func TestDefaultCatalog(t *testing.T) {
	v := apispec.HandleFunc(noop, apispec.Docs(apispec.Doc{Summary: "default"}))
	require.NoError(t, apispec.Decorate(v, apispec.Docs(apispec.Doc{Description: "more"})))

	desc, ok := apispec.Lookup(v)
	require.True(t, ok)
	assert.Equal(t, "default", desc.Summary)
	assert.Equal(t, "more", desc.Description)
}

func TestRequestSchema_ListBodyWithOtherLocations(t *testing.T) {
	cat := apispec.NewCatalog()
	v := cat.HandleFunc(noop)

	err := cat.Decorate(v, apispec.RequestSchema([]bodyIn{}, apispec.In(apispec.JSON, apispec.Query)))
	require.ErrorIs(t, err, apispec.ErrListBodyLocations)

	require.NoError(t, cat.Decorate(v, apispec.JSONSchema([]bodyIn{})))
	require.NoError(t, cat.Decorate(v, apispec.RequestSchema(queryIn{}, apispec.In(apispec.Query, apispec.Headers))))
}
