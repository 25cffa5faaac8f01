package schema

import (
	"context"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Generate builds the OpenAPI schema of value's type, with every rule
// declared through [Ruler], [ContextRuler] or [ValueRuler] applied to the
// matching properties.
func Generate(value any) (*openapi3.SchemaRef, error) {
	g := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(customize))
	return g.NewSchemaRefForValue(value, nil)
}

// customize runs once per generated type; for Ruler structs it maps each
// rule's field pointer to its property and lets the rule describe itself.
func customize(name string, t reflect.Type, _ reflect.StructTag, s *openapi3.Schema) error {
	if t.Kind() != reflect.Struct {
		return describeValue(t, name, s)
	}
	inst := reflect.New(t).Interface()
	fields, ok := rulesOf(context.Background(), inst)
	if !ok {
		return nil
	}
	fields = expandFields(context.Background(), inst, fields)
	structVal := reflect.Indirect(reflect.ValueOf(inst))
	dropSkipped(structVal, s)
	if err := resolveTags(fields, structVal); err != nil {
		return err
	}
	for prop, ref := range s.Properties {
		for _, f := range fields {
			if f.tag != prop {
				continue
			}
			for _, rule := range f.rules {
				if err := rule.Describe(prop, s, ref); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// describeValue applies ValueRuler rules of a named non-struct type.
func describeValue(t reflect.Type, name string, s *openapi3.Schema) error {
	vr, ok := reflect.New(t).Interface().(ValueRuler)
	if !ok {
		return nil
	}
	ref := &openapi3.SchemaRef{Value: s}
	for _, rule := range vr.ValueRules() {
		if err := rule.Describe(name, s, ref); err != nil {
			return err
		}
	}
	return nil
}

// dropSkipped removes properties of fields tagged docs:"skip".
func dropSkipped(structVal reflect.Value, s *openapi3.Schema) {
	for i := range structVal.NumField() {
		sf := structVal.Type().Field(i)
		if sf.Anonymous {
			fv := structVal.Field(i)
			if fv.Kind() == reflect.Struct {
				dropSkipped(fv, s)
			}
			continue
		}
		if strings.Split(sf.Tag.Get("docs"), ",")[0] == "skip" {
			delete(s.Properties, jsonName(sf))
		}
	}
}
