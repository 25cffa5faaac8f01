package schema

import (
	"fmt"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type thresholdRule struct {
	validation.ThresholdRule
	threshold any
	min       bool
}

// Min returns a validation rule that checks if a value is greater than or
// equal to threshold. The threshold is documented as the schema minimum and
// must therefore convert to float64.
func Min(threshold any) Rule {
	return thresholdRule{validation.Min(threshold), threshold, true}
}

// Max returns a validation rule that checks if a value is less than or
// equal to threshold. Like [Min], the threshold must convert to float64.
func Max(threshold any) Rule {
	return thresholdRule{validation.Max(threshold), threshold, false}
}

func (r thresholdRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	f, err := toFloat(r.threshold)
	if err != nil {
		return err
	}
	if r.min {
		ref.Value.Min = &f
	} else {
		ref.Value.Max = &f
	}
	return nil
}

var floatType = reflect.TypeOf(float64(0))

func toFloat(v any) (float64, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() || !rv.Type().ConvertibleTo(floatType) {
		return 0, fmt.Errorf("cannot convert %T to float64", v)
	}
	return rv.Convert(floatType).Float(), nil
}
