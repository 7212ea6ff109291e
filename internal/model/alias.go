package model

import "strings"

// Most wire names map onto internal names mechanically (camelCase to
// snake_case). The tables below list the exceptions, declared once here so
// no call site ever re-derives them. "self" is renamed because it is a
// reserved word in at least one consumer language; the avatar sizes are
// renamed because "16x16" is not a usable identifier anywhere.
var wireToInternal = map[string]string{
	"self":      "self_url",
	"issuetype": "issue_type",
	"16x16":     "small",
	"24x24":     "medium",
	"32x32":     "large",
	"48x48":     "xlarge",
}

var internalToWire = invert(wireToInternal)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// InternalName maps a wire field name to the internal convention.
func InternalName(wire string) string {
	if s, ok := wireToInternal[wire]; ok {
		return s
	}
	return camelToSnake(wire)
}

// WireName maps an internal field name back to the wire convention.
func WireName(internal string) string {
	if s, ok := internalToWire[internal]; ok {
		return s
	}
	return snakeToCamel(internal)
}

// ToInternalKeys rewrites every map key in a decoded JSON value from the
// wire convention to the internal one, recursing through objects and
// arrays. Values are left untouched.
func ToInternalKeys(v any) any {
	return rewriteKeys(v, InternalName)
}

// ToWireKeys is the inverse of ToInternalKeys.
func ToWireKeys(v any) any {
	return rewriteKeys(v, WireName)
}

func rewriteKeys(v any, rename func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[rename(k)] = rewriteKeys(val, rename)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = rewriteKeys(val, rename)
		}
		return out
	default:
		return v
	}
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for i, p := range parts {
		if i == 0 || p == "" {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
