package binding

import (
	"reflect"
	"strings"

	validatorV10 "github.com/go-playground/validator/v10"
)

var validator = newValidator()

// Field names in validation errors follow the query tag, then the json tag,
// so they match what the client actually sent.
func newValidator() *validatorV10.Validate {
	v := validatorV10.New(validatorV10.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			name := strings.Split(f.Tag.Get(tag), ",")[0]
			switch name {
			case "-":
				return ""
			case "":
				continue
			default:
				return name
			}
		}
		return f.Name
	})
	return v
}

// Validator exposes the shared instance for custom rule registration.
func Validator() *validatorV10.Validate {
	return validator
}

// parameterName strips the root struct from a validator namespace.
func parameterName(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
