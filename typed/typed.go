// Package typed has small reflection helpers for logs and debug output.
package typed

import (
	"reflect"
	"strings"
)

// TypeName returns the bare name of v's type: pointers are dereferenced,
// the package path and generic arguments are dropped. Unnamed types keep
// their literal form ("[]int", "map[string]any"), and nil yields "nil".
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		return t.String()
	}
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}
