package event

import (
	"reflect"
	"slices"
	"strings"
)

// Matcher reports whether an event satisfies a predicate.
type Matcher func(Event) bool

// Match builds a matcher that accepts events whose kind is one of kinds
// and whose payload contains every entry of fields.
//
// Field keys are dotted paths ("token.uid" descends nested maps) and
// values are compared with deep equality. Payload keys not named in
// fields are ignored. A path that does not resolve matches only a nil
// expected value. With no kinds the matcher constrains payload alone;
// with nil fields it constrains kind alone.
func Match(fields map[string]any, kinds ...string) Matcher {
	return func(evt Event) bool {
		if len(kinds) > 0 && !slices.Contains(kinds, evt.Kind) {
			return false
		}
		for path, want := range fields {
			got, ok := lookup(evt.Payload, path)
			if !ok {
				if want == nil {
					continue
				}
				return false
			}
			if !reflect.DeepEqual(got, want) {
				return false
			}
		}
		return true
	}
}

// lookup resolves a dotted path against nested map[string]any values.
func lookup(payload map[string]any, path string) (any, bool) {
	cur := any(payload)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
