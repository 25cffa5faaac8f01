package apispec

import (
	"bytes"
	"embed"
	"net/http"
	"strings"
	"text/template"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed swagger/index.html
var swagFS embed.FS

// viewerPage renders the Swagger UI page pointing at specURL, with its
// assets under static.
func viewerPage(specURL, static string) (http.Handler, error) {
	tmpl, err := template.ParseFS(swagFS, "swagger/index.html")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Path":   specURL,
		"Static": strings.TrimSuffix(static, "/"),
	})
	if err != nil {
		return nil, err
	}
	page := buf.Bytes()

	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}), nil
}

// viewerAssets serves the Swagger UI files bundled with http-swagger.
func viewerAssets(specURL string) http.Handler {
	return httpSwagger.Handler(httpSwagger.URL(specURL))
}
