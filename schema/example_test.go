package schema_test

import (
	"fmt"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Gobd/apispec/schema"
)

func ExampleDate() {
	rule := schema.Date(time.DateOnly).Min(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	ref := openapi3.NewStringSchema().NewRef()
	if err := rule.Describe("start", openapi3.NewObjectSchema(), ref); err != nil {
		panic(err)
	}
	fmt.Println(ref.Value.Format)
	fmt.Println(ref.Value.Description)
	fmt.Println(rule.Validate("2019-12-31"))
	// Output:
	// date
	// not before 2020-01-01
	// the date is out of range
}

func ExampleMin() {
	ref := openapi3.NewIntegerSchema().NewRef()
	if err := schema.Min(18).Describe("age", openapi3.NewObjectSchema(), ref); err != nil {
		panic(err)
	}
	fmt.Println(*ref.Value.Min)
	fmt.Println(schema.Min(18).Validate(17))
	// Output:
	// 18
	// must be no less than 18
}
