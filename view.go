package apispec

import (
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// View is a documented handler. Its identity is what ties it to its
// Description in a Catalog, so register the *View itself with the router.
type View struct {
	id      uuid.UUID
	handler http.Handler
}

func newView(h http.Handler) *View {
	if v, ok := h.(*View); ok {
		return v
	}
	return &View{id: uuid.New(), handler: h}
}

// ID is the view's catalog key.
func (v *View) ID() uuid.UUID { return v.id }

func (v *View) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v.handler.ServeHTTP(w, r)
}

// MethodView dispatches on the request method. Register it with
// chi.Router.Handle; each method's handler is documented and validated on
// its own when it is a *View.
type MethodView map[string]http.Handler

func (m MethodView) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, ok := m[r.Method]
	if !ok {
		w.Header().Set("Allow", strings.Join(m.Methods(), ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.ServeHTTP(w, r)
}

// Methods returns the handled methods, sorted.
func (m MethodView) Methods() []string {
	out := make([]string, 0, len(m))
	for method := range m {
		out = append(out, method)
	}
	slices.Sort(out)
	return out
}

// viewFor returns the view documenting method on h, following MethodView
// dispatch.
func viewFor(method string, h http.Handler) (*View, bool) {
	switch t := h.(type) {
	case *View:
		return t, true
	case MethodView:
		v, ok := t[method].(*View)
		return v, ok
	}
	return nil, false
}
