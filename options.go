package apispec

import (
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"
)

// Option configures a Spec.
type Option func(*Spec)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(s *Spec) { s.cfg = cfg }
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(s *Spec) { s.cfg.Title = title }
}

// WithVersion sets the document version.
func WithVersion(version string) Option {
	return func(s *Spec) { s.cfg.Version = version }
}

// WithURL sets where the JSON document is served. Empty disables it.
func WithURL(url string) Option {
	return func(s *Spec) { s.cfg.URL = url }
}

// WithSwaggerUI serves the viewer page at path and its assets under static.
func WithSwaggerUI(path, static string) Option {
	return func(s *Spec) {
		s.cfg.SwaggerPath = path
		if static != "" {
			s.cfg.StaticPath = static
		}
	}
}

// WithPrefix prepends prefix to every documented path.
func WithPrefix(prefix string) Option {
	return func(s *Spec) { s.cfg.Prefix = prefix }
}

// WithRequestDataName sets the slot Data reads.
func WithRequestDataName(name string) Option {
	return func(s *Spec) { s.cfg.RequestDataName = name }
}

// WithInPlace makes Setup build the document immediately.
func WithInPlace(inPlace bool) Option {
	return func(s *Spec) { s.cfg.InPlace = inPlace }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Spec) { s.log = l }
}

// WithCatalog reads descriptions from c instead of DefaultCatalog.
func WithCatalog(c *Catalog) Option {
	return func(s *Spec) { s.catalog = c }
}

// WithParser replaces the default ArgParser.
func WithParser(p Parser) Option {
	return func(s *Spec) { s.parser = p }
}

// WithErrorCallback handles request validation errors. It is installed into
// the parser by Register when the parser has a SetErrorCallback method.
func WithErrorCallback(cb ErrorCallback) Option {
	return func(s *Spec) { s.onError = cb }
}

// WithDocument edits the base document before routes are added, for fields
// Config has no place for such as security schemes.
func WithDocument(fn func(*openapi3.T)) Option {
	return func(s *Spec) { s.docFuncs = append(s.docFuncs, fn) }
}
