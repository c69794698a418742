package binding

import (
	"regexp"
	"strings"
)

// placeholderPattern matches {{...}} spans non-greedily so adjacent
// placeholders never merge into one.
var placeholderPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Resolve replaces every {{name}} / {{name|format}} span in text with the
// formatted bound value. Unbound names are left verbatim so missing data
// surfaces on the printed label instead of vanishing.
func Resolve(text string, vars Map) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := match[2 : len(match)-2]
		name, format := splitSpec(inner)
		if name == "" {
			return match
		}
		v, ok := vars[name]
		if !ok {
			return match
		}
		return Format(v, format)
	})
}

// Reference is one placeholder occurrence found in a text property.
type Reference struct {
	Name   string
	Format string
}

// ExtractReferences returns every placeholder occurrence in text, in order,
// including duplicates.
func ExtractReferences(text string) []Reference {
	var refs []Reference
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		name, format := splitSpec(m[1])
		if name == "" {
			continue
		}
		refs = append(refs, Reference{Name: name, Format: format})
	}
	return refs
}

// splitSpec splits placeholder content at the first '|' into a trimmed
// variable name and a trimmed format spec.
func splitSpec(inner string) (name, format string) {
	if i := strings.IndexByte(inner, '|'); i >= 0 {
		return strings.TrimSpace(inner[:i]), strings.TrimSpace(inner[i+1:])
	}
	return strings.TrimSpace(inner), ""
}
