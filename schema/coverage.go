package schema

import (
	"context"
	"reflect"
	"slices"
	"strings"
)

// MissingRules lists the JSON names of exported fields of structPtr that no
// rule covers. Rules of embedded structs are expanded. Fields tagged
// json:"-", docs:"skip" or validate:"-" are ignored, as are the names (Go or
// JSON) in exclude. Non-Ruler values report nothing.
//
//	assert.Empty(t, schema.MissingRules(&User{}))
func MissingRules(structPtr any, exclude ...string) []string {
	ctx := context.Background()
	fields, ok := rulesOf(ctx, structPtr)
	if !ok {
		return nil
	}
	fields = expandFields(ctx, structPtr, fields)

	structVal := reflect.Indirect(reflect.ValueOf(structPtr))
	covered := map[string]bool{}
	for _, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() != reflect.Ptr {
			continue
		}
		if sf := findStructField(structVal, fv); sf != nil {
			covered[jsonName(*sf)] = true
		}
	}

	var missing []string
	uncovered(structVal.Type(), exclude, covered, &missing)
	return missing
}

func uncovered(t reflect.Type, exclude []string, covered map[string]bool, missing *[]string) {
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous {
			if inner := deref(sf.Type); inner.Kind() == reflect.Struct {
				uncovered(inner, exclude, covered, missing)
			}
			continue
		}
		if !sf.IsExported() || sf.Tag.Get("validate") == "-" {
			continue
		}
		name := jsonName(sf)
		if name == "-" || strings.Split(sf.Tag.Get("docs"), ",")[0] == "skip" {
			continue
		}
		if covered[name] || slices.Contains(exclude, name) || slices.Contains(exclude, sf.Name) {
			continue
		}
		*missing = append(*missing, name)
	}
}
