package apispec

import (
	"fmt"
	"strings"
)

// PathTemplate returns the route template of a chi pattern. chi already
// writes placeholders as {name}, so the pattern is returned unchanged.
func PathTemplate(pattern string) string {
	return pattern
}

// PathParameterNames returns the placeholder names of template in order of
// first appearance, without duplicates. Both {name} and {name:regexp} are
// recognised; "{{" and "}}" are literal braces.
func PathParameterNames(template string) ([]string, error) {
	var names []string
	seen := map[string]bool{}
	_, err := scanTemplate(template, func(name, _ string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// OpenAPIPath rewrites {name:regexp} placeholders to {name}. Malformed
// templates are returned unchanged.
func OpenAPIPath(template string) string {
	out, err := scanTemplate(template, nil)
	if err != nil {
		return template
	}
	return out
}

// scanTemplate walks template, calling fn for every placeholder, and returns
// the template with regexps stripped from placeholders.
func scanTemplate(template string, fn func(name, pattern string)) (string, error) {
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			b.WriteString("{{")
			i++
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			b.WriteString("}}")
			i++
		case c == '}':
			return "", fmt.Errorf("%w: stray '}' at %d in %q", ErrMalformedTemplate, i, template)
		case c == '{':
			end := closingBrace(template, i)
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at %d in %q", ErrMalformedTemplate, i, template)
			}
			name, pattern, _ := strings.Cut(template[i+1:end], ":")
			if fn != nil {
				fn(name, pattern)
			}
			b.WriteString("{" + name + "}")
			i = end
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// closingBrace returns the index of the brace closing the one at start,
// skipping braces nested inside a regexp, or -1.
func closingBrace(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
