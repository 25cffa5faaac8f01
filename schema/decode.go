package schema

import (
	"context"
	"encoding/json"
	"io"
)

// UnmarshalAndValidate decodes JSON b into dst, normalises it and validates.
func UnmarshalAndValidate(ctx context.Context, b []byte, dst any) error {
	if err := json.Unmarshal(b, dst); err != nil {
		return err
	}
	Normalize(ctx, dst)
	return Validate(ctx, dst)
}

// DecodeAndValidate is like UnmarshalAndValidate but streams from r, such as
// a request body.
func DecodeAndValidate(ctx context.Context, r io.Reader, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return err
	}
	Normalize(ctx, dst)
	return Validate(ctx, dst)
}

// Unmarshal decodes JSON b into a new value of the schema's type and
// validates it with the schema's options. It returns the pointer.
func (s *Schema) Unmarshal(ctx context.Context, b []byte) (any, error) {
	v := s.New()
	if err := json.Unmarshal(b, v); err != nil {
		return nil, err
	}
	if err := s.Validate(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}
