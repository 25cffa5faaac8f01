package apispec

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// Catalog maps views to their descriptions.
type Catalog struct {
	mu    sync.RWMutex
	descs map[uuid.UUID]*Description
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{descs: map[uuid.UUID]*Description{}}
}

// DefaultCatalog is used by the package level Handle, HandleFunc, Decorate
// and Lookup, and by every Spec not given WithCatalog.
var DefaultCatalog = NewCatalog()

// Handle wraps h in a View and applies ds. It panics if a decorator fails,
// which is a configuration error. Passing a *View decorates it further.
func (c *Catalog) Handle(h http.Handler, ds ...Decorator) *View {
	v := newView(h)
	if err := c.Decorate(v, ds...); err != nil {
		panic(err)
	}
	return v
}

// HandleFunc is Handle for a handler function.
func (c *Catalog) HandleFunc(fn http.HandlerFunc, ds ...Decorator) *View {
	return c.Handle(fn, ds...)
}

// Decorate applies ds to v's description in order. Either every decorator
// succeeds and the result is stored, or the description is left as it was.
func (c *Catalog) Decorate(v *View, ds ...Decorator) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	desc := &Description{}
	if cur, ok := c.descs[v.id]; ok {
		desc = cur.clone()
	}
	for i, d := range ds {
		if err := d(desc); err != nil {
			return fmt.Errorf("decorate view %s: decorator %d: %w", v.id, i, err)
		}
	}
	c.descs[v.id] = desc
	return nil
}

// Lookup returns a copy of the description of h, which must be a *View.
func (c *Catalog) Lookup(h http.Handler) (*Description, bool) {
	v, ok := h.(*View)
	if !ok {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.descs[v.id]
	if !ok {
		return nil, false
	}
	return d.clone(), true
}

// bindings returns the schema bindings of v without copying the description.
func (c *Catalog) bindings(v *View) []Binding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if d, ok := c.descs[v.id]; ok {
		return d.Schemas
	}
	return nil
}

// Handle wraps h in a View registered in DefaultCatalog.
func Handle(h http.Handler, ds ...Decorator) *View {
	return DefaultCatalog.Handle(h, ds...)
}

// HandleFunc wraps fn in a View registered in DefaultCatalog.
func HandleFunc(fn http.HandlerFunc, ds ...Decorator) *View {
	return DefaultCatalog.HandleFunc(fn, ds...)
}

// Decorate applies ds to v in DefaultCatalog.
func Decorate(v *View, ds ...Decorator) error {
	return DefaultCatalog.Decorate(v, ds...)
}

// Lookup returns the description of h in DefaultCatalog.
func Lookup(h http.Handler) (*Description, bool) {
	return DefaultCatalog.Lookup(h)
}
