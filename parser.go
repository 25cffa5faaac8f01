package apispec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/apispec/schema"
)

// Parser turns a request into the value of one binding's schema.
type Parser interface {
	// Parse reads b's locations from r, decodes them into a new value of
	// b.Schema and validates it.
	Parse(r *http.Request, b Binding) (any, error)
	// HandleError writes the response for an error returned by Parse.
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

// ErrorCallback replaces a parser's default error response.
type ErrorCallback func(w http.ResponseWriter, r *http.Request, err error)

const (
	defaultMaxBodyBytes = 10 << 20
	defaultMaxMemory    = 32 << 20
)

// ArgParser is the default Parser. Strings from the query, headers, cookies,
// path and form are converted to the types of the schema's properties; JSON
// bodies are decoded as they are.
type ArgParser struct {
	// MaxBodyBytes caps the JSON body read. Zero means 10 MiB. Larger
	// bodies are rejected with 413.
	MaxBodyBytes int64
	// MaxMemory is passed to ParseMultipartForm. Zero means 32 MiB.
	MaxMemory int64

	mu      sync.RWMutex
	onError ErrorCallback

	props sync.Map // reflect.Type -> map[string]*openapi3.Schema
}

// NewParser returns an ArgParser with default limits.
func NewParser() *ArgParser {
	return &ArgParser{}
}

// SetErrorCallback installs cb in place of the default error response.
func (p *ArgParser) SetErrorCallback(cb ErrorCallback) {
	p.mu.Lock()
	p.onError = cb
	p.mu.Unlock()
}

// Parse implements Parser.
func (p *ArgParser) Parse(r *http.Request, b Binding) (any, error) {
	props, err := p.properties(b.Schema)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	var raw []byte
	for _, loc := range b.Locations {
		switch loc {
		case JSON, Body:
			body, err := p.readBody(r)
			if err != nil {
				return nil, bodyError(loc, err)
			}
			body = bytes.TrimSpace(body)
			if len(body) == 0 {
				continue
			}
			if body[0] != '{' {
				raw = body
				continue
			}
			var m map[string]any
			if err := json.Unmarshal(body, &m); err != nil {
				return nil, invalid(loc, err)
			}
			for k, v := range m {
				values[k] = v
			}
		case Form:
			if err := p.parseForm(r); err != nil {
				return nil, invalid(loc, err)
			}
			err = collect(values, props, loc, func(name string) []string { return r.PostForm[name] })
		case Query:
			q := r.URL.Query()
			err = collect(values, props, loc, func(name string) []string { return q[name] })
		case Headers:
			err = collect(values, props, loc, func(name string) []string {
				if vs := r.Header.Values(name); len(vs) > 0 {
					return vs
				}
				return r.Header.Values(strings.ReplaceAll(name, "_", "-"))
			})
		case Cookies:
			err = collect(values, props, loc, func(name string) []string {
				if c, err := r.Cookie(name); err == nil {
					return []string{c.Value}
				}
				return nil
			})
		case Path:
			err = collect(values, props, loc, func(name string) []string {
				if v := PathParam(r, name); v != "" {
					return []string{v}
				}
				return nil
			})
		default:
			return nil, fmt.Errorf("unsupported location %q", loc)
		}
		if err != nil {
			return nil, err
		}
	}

	// A non-object body is decoded on its own. Values read from the other
	// locations have nowhere to go, so the combination is rejected.
	if raw != nil && len(values) > 0 {
		return nil, invalid(b.Locations[0], errors.New("body must be a JSON object when combined with other locations"))
	}
	if raw == nil {
		if raw, err = json.Marshal(values); err != nil {
			return nil, err
		}
	}
	v, err := b.Schema.Unmarshal(r.Context(), raw)
	if err != nil {
		return nil, invalid(b.Locations[0], decodeError(err))
	}
	return v, nil
}

// HandleError implements Parser. Without a callback it writes a JSON body
// with the status of a *ValidationError, or 400.
func (p *ArgParser) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	p.mu.RLock()
	cb := p.onError
	p.mu.RUnlock()
	if cb != nil {
		cb(w, r, err)
		return
	}

	status := http.StatusBadRequest
	body := map[string]any{"error": err.Error()}
	var ve *ValidationError
	if errors.As(err, &ve) {
		status = ve.Status
		body["location"] = ve.Location
		if errs, ok := ve.Err.(schema.Errors); ok {
			body["errors"] = errs
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// bodyError reports an oversize body as 413 and any other read failure as
// invalid input.
func bodyError(loc Location, err error) *ValidationError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &ValidationError{
			Status:   http.StatusRequestEntityTooLarge,
			Location: loc,
			Err:      fmt.Errorf("body exceeds %d bytes", tooLarge.Limit),
		}
	}
	return invalid(loc, err)
}

func (p *ArgParser) readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	limit := p.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, limit))
	if err != nil {
		return nil, err
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

func (p *ArgParser) parseForm(r *http.Request) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		mem := p.MaxMemory
		if mem <= 0 {
			mem = defaultMaxMemory
		}
		return r.ParseMultipartForm(mem)
	}
	return r.ParseForm()
}

// properties returns the property schemas of s's item type.
func (p *ArgParser) properties(s *schema.Schema) (map[string]*openapi3.Schema, error) {
	if cached, ok := p.props.Load(s.Item()); ok {
		return cached.(map[string]*openapi3.Schema), nil
	}
	ref, err := s.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate schema %s: %w", s.Type(), err)
	}
	props := make(map[string]*openapi3.Schema, len(ref.Value.Properties))
	for name, prop := range ref.Value.Properties {
		if prop.Value != nil {
			props[name] = prop.Value
		}
	}
	p.props.Store(s.Item(), props)
	return props, nil
}

// collect reads every property of props with get and stores the converted
// value in dst.
func collect(dst map[string]any, props map[string]*openapi3.Schema, loc Location, get func(string) []string) error {
	errs := schema.Errors{}
	for name, prop := range props {
		raw := get(name)
		if len(raw) == 0 {
			continue
		}
		v, err := coerce(prop, raw)
		if err != nil {
			errs[name] = err
			continue
		}
		dst[name] = v
	}
	if len(errs) > 0 {
		return invalid(loc, errs)
	}
	return nil
}

func coerce(prop *openapi3.Schema, raw []string) (any, error) {
	if prop.Type.Is(openapi3.TypeArray) {
		out := make([]any, 0, len(raw))
		for _, s := range raw {
			var item *openapi3.Schema
			if prop.Items != nil {
				item = prop.Items.Value
			}
			v, err := coerceOne(item, s)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return coerceOne(prop, raw[0])
}

var (
	errNotInteger = errors.New("must be an integer")
	errNotNumber  = errors.New("must be a number")
	errNotBoolean = errors.New("must be a boolean")
)

func coerceOne(prop *openapi3.Schema, s string) (any, error) {
	if prop == nil {
		return s, nil
	}
	switch {
	case prop.Type.Is(openapi3.TypeInteger):
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errNotInteger
		}
		return n, nil
	case prop.Type.Is(openapi3.TypeNumber):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errNotNumber
		}
		return f, nil
	case prop.Type.Is(openapi3.TypeBoolean):
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, errNotBoolean
		}
		return b, nil
	}
	return s, nil
}

// decodeError keys JSON type mismatches by field.
func decodeError(err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return schema.Errors{te.Field: fmt.Errorf("must be %s", kindName(te.Type))}
	}
	return err
}

func kindName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a list"
	}
	return "an object"
}
