package apispec

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

type storeKey struct{}

// requestStore holds the values parsed for one request.
type requestStore struct {
	dataName string
	params   map[string]string

	mu    sync.RWMutex
	slots map[string]any
}

func newStore(dataName string, params chi.RouteParams) *requestStore {
	st := &requestStore{
		dataName: dataName,
		params:   make(map[string]string, len(params.Keys)),
		slots:    map[string]any{},
	}
	for i, k := range params.Keys {
		if i < len(params.Values) {
			st.params[k] = params.Values[i]
		}
	}
	return st
}

func (st *requestStore) set(name string, v any) {
	st.mu.Lock()
	st.slots[name] = v
	st.mu.Unlock()
}

func (st *requestStore) get(name string) (any, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	v, ok := st.slots[name]
	return v, ok
}

// withStore attaches st to r.
func withStore(r *http.Request, st *requestStore) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), storeKey{}, st))
}

func storeOf(r *http.Request) *requestStore {
	st, _ := r.Context().Value(storeKey{}).(*requestStore)
	return st
}

// Data returns the request data stored by the middleware: usually a
// map[string]any of every merged binding, or the raw value of a binding that
// was not a mapping.
func Data(r *http.Request) any {
	st := storeOf(r)
	if st == nil {
		return nil
	}
	v, _ := st.get(st.dataName)
	return v
}

// DataMap returns Data when it is a mapping, or an empty map.
func DataMap(r *http.Request) map[string]any {
	if m, ok := Data(r).(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Bind decodes Data into dst through its JSON form.
func Bind(r *http.Request, dst any) error {
	b, err := json.Marshal(Data(r))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// Slot returns the value stored under name, such as a binding's PutInto.
func Slot(r *http.Request, name string) (any, bool) {
	st := storeOf(r)
	if st == nil {
		return nil, false
	}
	return st.get(name)
}

// Value returns the slot name as a T.
func Value[T any](r *http.Request, name string) (T, bool) {
	v, ok := Slot(r, name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// PathParam returns a matched path parameter. It works before chi has routed
// the request, inside the middleware chain, and falls back to chi.URLParam.
func PathParam(r *http.Request, name string) string {
	if st := storeOf(r); st != nil {
		if v, ok := st.params[name]; ok {
			return v
		}
	}
	return chi.URLParam(r, name)
}
