package apispec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/apispec"
)

func TestPathTemplate(t *testing.T) {
	assert.Equal(t, "/users/{id}/", apispec.PathTemplate("/users/{id}/"))
	assert.Equal(t, "/files/*", apispec.PathTemplate("/files/*"))
}

func TestPathParameterNames(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"none", "/users/", nil},
		{"single", "/users/{id}/", []string{"id"}},
		{"order of appearance", "/orgs/{org}/users/{user}", []string{"org", "user"}},
		{"repeated", "/a/{x}/b/{x}/c/{y}", []string{"x", "y"}},
		{"regexp", "/users/{id:[0-9]+}", []string{"id"}},
		{"nested braces", `/codes/{code:[a-z]{3}}/{n}`, []string{"code", "n"}},
		{"literal braces", "/lit/{{x}}/{id}", []string{"id"}},
		{"empty placeholder", "/a/{}/b", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := apispec.PathParameterNames(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathParameterNames_Malformed(t *testing.T) {
	for _, tmpl := range []string{"/users/{id", "/users/id}", "/x/{a:[0-9]{2}"} {
		names, err := apispec.PathParameterNames(tmpl)
		assert.ErrorIs(t, err, apispec.ErrMalformedTemplate, tmpl)
		assert.Nil(t, names, tmpl)
	}
}

func TestOpenAPIPath(t *testing.T) {
	assert.Equal(t, "/users/{id}/posts/{slug}", apispec.OpenAPIPath("/users/{id:[0-9]+}/posts/{slug}"))
	assert.Equal(t, "/codes/{code}", apispec.OpenAPIPath(`/codes/{code:[a-z]{3}}`))
	assert.Equal(t, "/users/{id", apispec.OpenAPIPath("/users/{id"))
	assert.Equal(t, "/static/*", apispec.OpenAPIPath("/static/*"))
}
