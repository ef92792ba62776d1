package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// SchemaJSONKey is the conventional key hosting pages use to bundle the raw
// serialized schema into a domain submission so the backend need not
// re-fetch it.
const SchemaJSONKey = "_schemaJson"

// HiddenField is a name/value pair emitted as a hidden input alongside the
// visible schema.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden builds a HiddenField from an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// MergeHidden returns a copy of base with the given fields applied. Empty
// names are ignored; later fields win on collisions.
func MergeHidden(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHidden normalises hidden fields into deterministic render order.
func SortedHidden(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: fields[name]})
	}
	return out
}

// Payload assembles the domain submission body from a session's values,
// optionally bundling the serialized schema under SchemaJSONKey.
func Payload(session *Session, withSchema bool) (map[string]any, error) {
	values := session.Values()
	if !withSchema {
		return values, nil
	}
	raw, err := schema.Marshal(session.Form())
	if err != nil {
		return nil, fmt.Errorf("render: bundle schema into payload: %w", err)
	}
	values[SchemaJSONKey] = string(raw)
	return values, nil
}
