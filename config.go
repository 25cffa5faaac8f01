package apispec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the generated document and where it is served.
type Config struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`

	// URL serves the document as JSON. Empty disables it.
	URL string `yaml:"url"`
	// RequestDataName is the slot the middleware stores merged data in.
	RequestDataName string `yaml:"request_data_name"`
	// SwaggerPath serves the HTML viewer. Empty disables it.
	SwaggerPath string `yaml:"swagger_path"`
	// StaticPath serves the viewer's assets.
	StaticPath string `yaml:"static_path"`
	// InPlace builds the document during Setup instead of on first use.
	InPlace bool `yaml:"in_place"`
	// Prefix is prepended to every documented path.
	Prefix string `yaml:"prefix"`
	// OpenAPIVersion is "3.0.3", or "2.0" for a Swagger 2.0 document.
	OpenAPIVersion string `yaml:"openapi_version"`

	Servers []string `yaml:"servers"`
	Tags    []Tag    `yaml:"tags"`
}

// Tag documents a tag used by views.
type Tag struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() Config {
	return Config{
		Title:           "API documentation",
		Version:         "0.0.1",
		URL:             "/api/docs/swagger.json",
		RequestDataName: "data",
		StaticPath:      "/static/swagger",
		OpenAPIVersion:  "3.0.3",
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return LoadConfigOver(DefaultConfig(), path)
}

// LoadConfigOver reads a YAML file over base. Keys absent from the file keep
// their base value.
func LoadConfigOver(base Config, path string) (Config, error) {
	cfg := base
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) swagger2() bool {
	return c.OpenAPIVersion == "2.0" || c.OpenAPIVersion == "2"
}
