package apispec

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
)

// routeTable maps "METHOD pattern" to the handler chi.Walk reports for it.
type routeTable map[string]http.Handler

func routeKey(method, pattern string) string { return method + " " + pattern }

// Middleware parses requests to documented views. Install it with Use on the
// router later passed to Register. For every binding of the matched view the
// parser's result is stored under the binding's PutInto slot, or merged into
// the request data read with Data.
//
// A binding whose result is not a mapping (a list, for example) replaces
// everything merged so far and ends the merge.
func (s *Spec) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		router := s.registeredRouter()
		if router == nil {
			next.ServeHTTP(w, r)
			return
		}
		s.ensureBuilt()

		rctx := chi.NewRouteContext()
		pattern := router.Find(rctx, r.Method, routePath(r))
		if pattern == "" {
			next.ServeHTTP(w, r)
			return
		}
		bindings := s.bindingsFor(r.Method, pattern)
		if len(bindings) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		st := newStore(s.cfg.RequestDataName, rctx.URLParams)
		r = withStore(r, st)

		var result any = map[string]any{}
		for _, b := range bindings {
			data, err := s.parser.Parse(r, b)
			if err != nil {
				s.log.Debug("request rejected", "method", r.Method, "pattern", pattern, "error", err)
				s.parser.HandleError(w, r, err)
				return
			}
			if b.PutInto != "" {
				st.set(b.PutInto, data)
				continue
			}
			if isEmpty(data) {
				continue
			}
			m, ok := asMapping(data)
			if !ok {
				result = data
				break
			}
			merged := result.(map[string]any)
			for k, v := range m {
				merged[k] = v
			}
		}
		st.set(s.cfg.RequestDataName, result)

		next.ServeHTTP(w, r)
	})
}

// routePath is the path chi routes r by.
func routePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		return rctx.RoutePath
	}
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	if r.URL.Path != "" {
		return r.URL.Path
	}
	return "/"
}

// bindingsFor returns the bindings of the view chi serves for method and
// pattern. The route table is walked again once on a miss, for routes added
// after the last walk.
func (s *Spec) bindingsFor(method, pattern string) []Binding {
	key := routeKey(method, pattern)
	tbl := s.routes.Load()
	if tbl == nil {
		tbl = s.refreshRoutes()
	}
	h, ok := (*tbl)[key]
	if !ok {
		tbl = s.refreshRoutes()
		if h, ok = (*tbl)[key]; !ok {
			return nil
		}
	}
	v, ok := viewFor(method, h)
	if !ok {
		return nil
	}
	return s.catalog.bindings(v)
}

func (s *Spec) refreshRoutes() *routeTable {
	tbl := routeTable{}
	router := s.registeredRouter()
	if router != nil {
		_ = chi.Walk(router, func(method, route string, h http.Handler, _ ...func(http.Handler) http.Handler) error {
			tbl[routeKey(method, route)] = h
			return nil
		})
	}
	s.routes.Store(&tbl)
	return &tbl
}

func isEmpty(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	}
	return false
}

// asMapping returns v as a map when it is mapping-shaped: a map with string
// keys or a struct, converted through its JSON form.
func asMapping(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch {
	case rv.Kind() == reflect.Struct:
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
	default:
		return nil, false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	return m, true
}
