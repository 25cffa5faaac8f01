package demo_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/apispec/internal/demo"
	"github.com/Gobd/apispec/schema"
)

func newApp(t *testing.T) *demo.App {
	t.Helper()
	app, err := demo.New(demo.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return app
}

func do(app *demo.App, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestUsers_CreateAndGet(t *testing.T) {
	app := newApp(t)

	rec := do(app, http.MethodPost, "/users/", `{"id":1,"name":"  Ann ","gender":"f"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(app, http.MethodGet, "/users/1/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var u demo.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	assert.Equal(t, demo.User{ID: 1, Name: "Ann", Gender: "f"}, u)

	rec = do(app, http.MethodGet, "/users/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list demo.UsersList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Items, 1)
}

func TestUsers_NotFound(t *testing.T) {
	app := newApp(t)

	rec := do(app, http.MethodGet, "/users/7/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found")
}

func TestUsers_PathValidation(t *testing.T) {
	app := newApp(t)

	rec := do(app, http.MethodGet, "/users/0/", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"location":"path"`)
}

func TestUsers_CreateInvalid(t *testing.T) {
	app := newApp(t)

	rec := do(app, http.MethodPost, "/users/", `{"id":1,"gender":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Location string            `json:"location"`
		Errors   map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "json", body.Location)
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "gender")
	assert.Empty(t, app.Store.List())
}

func TestUsers_CreateDuplicate(t *testing.T) {
	app := newApp(t)

	require.Equal(t, http.StatusOK, do(app, http.MethodPost, "/users/", `{"id":1,"name":"Ann"}`).Code)
	assert.Equal(t, http.StatusConflict, do(app, http.MethodPost, "/users/", `{"id":1,"name":"Bob"}`).Code)
}

func TestDocument(t *testing.T) {
	app := newApp(t)

	rec := do(app, http.MethodGet, "/api/docs/swagger.json", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]map[string]struct {
			Tags       []string `json:"tags"`
			Parameters []struct {
				Name     string `json:"name"`
				In       string `json:"in"`
				Required bool   `json:"required"`
				Schema   struct {
					Type string `json:"type"`
				} `json:"schema"`
			} `json:"parameters"`
			RequestBody map[string]any `json:"requestBody"`
			Responses   map[string]any `json:"responses"`
		} `json:"paths"`
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	assert.Equal(t, "Users API", doc.Info.Title)
	require.Contains(t, doc.Paths, "/users/")
	require.Contains(t, doc.Paths, "/users/{id}/")

	get := doc.Paths["/users/{id}/"]["get"]
	assert.Equal(t, []string{"users"}, get.Tags)
	require.Len(t, get.Parameters, 1)
	assert.Equal(t, "id", get.Parameters[0].Name)
	assert.Equal(t, "path", get.Parameters[0].In)
	assert.True(t, get.Parameters[0].Required)
	assert.Equal(t, "integer", get.Parameters[0].Schema.Type)
	assert.Contains(t, get.Responses, "404")

	post := doc.Paths["/users/"]["post"]
	assert.NotEmpty(t, post.RequestBody)
	assert.Contains(t, post.Responses, "422")

	assert.Contains(t, doc.Components.Schemas, "User")
	assert.Contains(t, doc.Components.Schemas, "UsersList")
	assert.Contains(t, doc.Components.Schemas, "Message")
}

func TestSwaggerPage(t *testing.T) {
	app := newApp(t)

	rec := do(app, http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/docs/swagger.json")
	assert.Contains(t, rec.Body.String(), "/static/swagger-ui.css")
}

func TestSchemas_AllFieldsHaveRules(t *testing.T) {
	assert.Empty(t, schema.MissingRules(&demo.User{}))
	assert.Empty(t, schema.MissingRules(&demo.UserPath{}))
}

func TestRateLimit(t *testing.T) {
	app, err := demo.New(demo.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)), demo.WithRateLimit(0.001, 2))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(app, http.MethodGet, "/users/", "").Code)
	assert.Equal(t, http.StatusOK, do(app, http.MethodGet, "/users/", "").Code)

	rec := do(app, http.MethodGet, "/users/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
