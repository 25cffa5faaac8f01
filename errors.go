package apispec

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMultipleBodyParameters is returned when a second body schema is
	// attached to the same view.
	ErrMultipleBodyParameters = errors.New("multiple body parameters are not allowed")

	// ErrMalformedTemplate is returned for route templates with an unclosed
	// or stray placeholder brace.
	ErrMalformedTemplate = errors.New("malformed path template")

	// ErrListBodyLocations is returned when a list schema read from the
	// body is also bound to other locations. A list has no fields to merge
	// other locations into.
	ErrListBodyLocations = errors.New("a list body schema cannot be combined with other locations")

	// ErrNilSchema is returned when a schema decorator is given nil.
	ErrNilSchema = errors.New("schema is nil")
)

// ValidationError is a request that could not be parsed or did not satisfy
// its schema.
type ValidationError struct {
	// Status is the HTTP status the default error handler responds with.
	Status   int
	Location Location
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Location, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(loc Location, err error) *ValidationError {
	return &ValidationError{Status: http.StatusUnprocessableEntity, Location: loc, Err: err}
}
