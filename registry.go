package apispec

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/Gobd/apispec/openapi"
	"github.com/Gobd/apispec/schema"
)

// ErrNotRegistered is returned when the document is requested before
// Register.
var ErrNotRegistered = errors.New("spec is not registered with a router")

// registryState is set once by Register.
type registryState struct {
	registered bool
	router     chi.Router
}

// Spec builds the OpenAPI document of one chi router from the descriptions
// of its views, and serves it.
type Spec struct {
	cfg      Config
	log      *slog.Logger
	catalog  *Catalog
	parser   Parser
	onError  ErrorCallback
	docFuncs []func(*openapi3.T)

	mu    sync.RWMutex
	state registryState

	once sync.Once
	doc  *openapi3.T
	body []byte
	err  error

	routes atomic.Pointer[routeTable]
}

// New returns a Spec with DefaultConfig modified by opts.
func New(opts ...Option) *Spec {
	s := &Spec{
		cfg:     DefaultConfig(),
		log:     slog.Default(),
		catalog: DefaultCatalog,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.parser == nil {
		s.parser = NewParser()
	}
	return s
}

// NewFromConfig is New starting from cfg.
func NewFromConfig(cfg Config, opts ...Option) *Spec {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// Setup creates a Spec and registers it with r, building in place when the
// configuration says so. Routes must already be defined on r when building
// in place. To use the Middleware, create the Spec with New, install its
// Middleware and call Register after defining the routes.
func Setup(r chi.Router, opts ...Option) (*Spec, error) {
	s := New(opts...)
	return s, s.Register(r, s.cfg.InPlace)
}

// Config returns the configuration in use.
func (s *Spec) Config() Config { return s.cfg }

// Register mounts the document endpoints on r and schedules the route walk:
// now when inPlace, otherwise on the first request or Document call. Calls
// after the first are no-ops.
func (s *Spec) Register(r chi.Router, inPlace bool) error {
	s.mu.Lock()
	if s.state.registered {
		s.mu.Unlock()
		return nil
	}

	var page http.Handler
	if s.cfg.URL != "" && s.cfg.SwaggerPath != "" {
		var err error
		if page, err = viewerPage(s.cfg.URL, s.cfg.StaticPath); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("swagger page: %w", err)
		}
	}

	if s.onError != nil {
		if p, ok := s.parser.(interface{ SetErrorCallback(ErrorCallback) }); ok {
			p.SetErrorCallback(s.onError)
		}
	}
	if s.cfg.URL != "" {
		r.Get(s.cfg.URL, s.serveDocument)
		if page != nil {
			r.Method(http.MethodGet, s.cfg.SwaggerPath, page)
			r.Handle(strings.TrimSuffix(s.cfg.StaticPath, "/")+"/*", viewerAssets(s.cfg.URL))
		}
	}
	s.state = registryState{registered: true, router: r}
	s.mu.Unlock()

	s.log.Info("openapi registered", "url", s.cfg.URL, "swagger_path", s.cfg.SwaggerPath, "in_place", inPlace)
	if inPlace {
		return s.ensureBuilt()
	}
	return nil
}

func (s *Spec) registeredRouter() chi.Router {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.router
}

func (s *Spec) ensureBuilt() error {
	if s.registeredRouter() == nil {
		return ErrNotRegistered
	}
	s.once.Do(s.build)
	return s.err
}

// Document returns the built document. It must not be modified.
func (s *Spec) Document() (*openapi3.T, error) {
	if err := s.ensureBuilt(); err != nil {
		return nil, err
	}
	return s.doc, nil
}

// JSON returns the serialised document, converted to Swagger 2.0 when
// configured.
func (s *Spec) JSON() ([]byte, error) {
	if err := s.ensureBuilt(); err != nil {
		return nil, err
	}
	return s.body, nil
}

// Snapshot returns a fresh JSON-shaped copy of the document.
func (s *Spec) Snapshot() (map[string]any, error) {
	body, err := s.JSON()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Spec) serveDocument(w http.ResponseWriter, r *http.Request) {
	body, err := s.JSON()
	if err != nil {
		s.log.Error("openapi document", "error", err)
		http.Error(w, "failed to build OpenAPI document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

type walkedRoute struct {
	method  string
	pattern string
	handler http.Handler
}

func (s *Spec) build() {
	doc := s.baseDocument()

	var routes []walkedRoute
	tbl := routeTable{}
	_ = chi.Walk(s.registeredRouter(), func(method, route string, h http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, walkedRoute{method, route, h})
		tbl[routeKey(method, route)] = h
		return nil
	})
	s.routes.Store(&tbl)

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].pattern != routes[j].pattern {
			return routes[i].pattern < routes[j].pattern
		}
		return slices.Index(openapi.Methods, routes[i].method) < slices.Index(openapi.Methods, routes[j].method)
	})
	for _, rt := range routes {
		if err := s.registerRoute(doc, rt); err != nil {
			s.err = fmt.Errorf("document %s %s: %w", rt.method, rt.pattern, err)
			s.log.Error("openapi build failed", "error", s.err)
			return
		}
	}

	body, err := s.marshal(doc)
	if err != nil {
		s.err = fmt.Errorf("marshal document: %w", err)
		s.log.Error("openapi build failed", "error", s.err)
		return
	}
	s.doc, s.body = doc, body
	s.log.Info("openapi document built", "paths", doc.Paths.Len(), "schemas", len(doc.Components.Schemas))
}

func (s *Spec) baseDocument() *openapi3.T {
	doc := openapi.DocBase(s.cfg.Title, s.cfg.Description, s.cfg.Version)
	for _, u := range s.cfg.Servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: u})
	}
	for _, t := range s.cfg.Tags {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: t.Name, Description: t.Description})
	}
	for _, fn := range s.docFuncs {
		fn(doc)
	}
	return doc
}

func (s *Spec) validMethod(method string) bool {
	switch method {
	case http.MethodOptions, http.MethodHead:
		return false
	case http.MethodTrace:
		return !s.cfg.swagger2()
	}
	return openapi.HasMethod(method)
}

func (s *Spec) registerRoute(doc *openapi3.T, rt walkedRoute) error {
	if !s.validMethod(rt.method) {
		return nil
	}
	v, ok := viewFor(rt.method, rt.handler)
	if !ok {
		return nil
	}
	desc, ok := s.catalog.Lookup(v)
	if !ok {
		s.log.Debug("route not documented", "method", rt.method, "pattern", rt.pattern)
		return nil
	}
	tmpl := PathTemplate(rt.pattern)
	if tmpl == "" {
		return nil
	}

	op, err := s.operation(doc, tmpl, desc)
	if err != nil {
		return err
	}
	path := s.cfg.Prefix + OpenAPIPath(tmpl)
	openapi.AddPath(doc, path, rt.method, op)
	s.log.Debug("route documented", "method", rt.method, "path", path)
	return nil
}

func (s *Spec) operation(doc *openapi3.T, tmpl string, desc *Description) (*openapi3.Operation, error) {
	op := openapi3.NewOperation()
	op.Tags = desc.Tags
	op.Summary = desc.Summary
	op.Description = desc.Description

	var params openapi3.Parameters
	for _, p := range desc.Parameters {
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	for _, b := range desc.Schemas {
		var contentTypes []string
		for _, loc := range b.Locations {
			if loc.IsBody() {
				for _, ct := range bodyContentTypes(loc) {
					if !slices.Contains(contentTypes, ct) {
						contentTypes = append(contentTypes, ct)
					}
				}
				continue
			}
			ps, err := openapi.NewParameters(b.Schema, parameterIn(loc))
			if err != nil {
				return nil, err
			}
			params = append(params, ps...)
		}
		if len(contentTypes) > 0 {
			body, err := openapi.NewRequestBody(doc, b.Schema, contentTypes, b.Required)
			if err != nil {
				return nil, err
			}
			op.RequestBody = body
		}
	}
	params = uniqueParameters(params)

	names, err := PathParameterNames(tmpl)
	if err != nil {
		s.log.Warn("path parameters", "template", tmpl, "error", err)
	}
	declared := map[string]bool{}
	for _, p := range params {
		if p.Value.In == openapi3.ParameterInPath {
			declared[p.Value.Name] = true
		}
	}
	for _, name := range names {
		if !declared[name] {
			params = append(params, &openapi3.ParameterRef{
				Value: openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()),
			})
		}
	}
	if len(params) > 0 {
		op.Parameters = params
	}

	if op.Responses, err = responses(doc, desc.Responses); err != nil {
		return nil, err
	}
	if len(desc.Extra) > 0 {
		return applyExtra(op, desc.Extra)
	}
	return op, nil
}

func parameterIn(loc Location) string {
	switch loc {
	case Headers:
		return openapi3.ParameterInHeader
	case Cookies:
		return openapi3.ParameterInCookie
	case Path:
		return openapi3.ParameterInPath
	}
	return openapi3.ParameterInQuery
}

func bodyContentTypes(loc Location) []string {
	if loc == Form {
		return []string{openapi.Form, openapi.Multipart}
	}
	return []string{openapi.JSON}
}

// uniqueParameters keeps the first parameter of every name and location.
func uniqueParameters(params openapi3.Parameters) openapi3.Parameters {
	seen := map[string]bool{}
	out := params[:0]
	for _, p := range params {
		key := p.Value.In + ":" + p.Value.Name
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// responses documents rs in status order. An operation without documented
// responses gets a described default response.
func responses(doc *openapi3.T, rs map[int]Response) (*openapi3.Responses, error) {
	if len(rs) == 0 {
		rs = map[int]Response{0: {}}
	}
	codes := slices.Sorted(maps.Keys(rs))
	opts := make([]openapi3.NewResponsesOption, 0, len(codes))
	for _, code := range codes {
		r := rs[code]
		var sch *schema.Schema
		if r.Schema != nil {
			sch = schema.Of(r.Schema)
		}
		ref, err := openapi.NewResponse(doc, code, openapi.Response{
			Description: r.Description,
			Schema:      sch,
			Headers:     r.Headers,
			Examples:    r.Examples,
		})
		if err != nil {
			return nil, fmt.Errorf("response %d: %w", code, err)
		}
		opts = append(opts, openapi3.WithName(openapi.StatusKey(code), ref.Value))
	}
	return openapi3.NewResponses(opts...), nil
}

// applyExtra overlays extra on the JSON form of op.
func applyExtra(op *openapi3.Operation, extra map[string]any) (*openapi3.Operation, error) {
	b, err := json.Marshal(op)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	maps.Copy(m, extra)
	if b, err = json.Marshal(m); err != nil {
		return nil, err
	}
	out := openapi3.NewOperation()
	if err := json.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("apply extra operation fields: %w", err)
	}
	return out, nil
}

func (s *Spec) marshal(doc *openapi3.T) ([]byte, error) {
	if s.cfg.swagger2() {
		v2, err := openapi2conv.FromV3(doc)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v2)
	}
	return json.Marshal(doc)
}
