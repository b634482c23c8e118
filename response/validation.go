package response

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	validatorV10 "github.com/go-playground/validator/v10"
)

// CodeValidationFailed is the code of objects built from validator errors.
const CodeValidationFailed = "validation_failed"

var indexPattern = regexp.MustCompile(`\[(\w+)\]`)

// FromValidationErrors builds one 400 object per failed field, in validator
// order. source.pointer points at the field inside the request document.
func FromValidationErrors(errs validatorV10.ValidationErrors) ErrorResponse {
	objs := make([]ErrorObject, 0, len(errs))
	for _, fe := range errs {
		objs = append(objs, NewErrorObject(
			fe.Field()+" "+ValidationMessage(fe),
			WithStatus(http.StatusBadRequest),
			WithTitle("Validation Failed"),
			WithCode(CodeValidationFailed),
			WithSourcePointer(FieldPointer(fe.Namespace())),
			WithMetaValue("rule", fe.Tag()),
		))
	}
	return ErrorResponse{Errors: objs}
}

// FieldPointer turns a validator namespace such as "Order.items[0].sku" into
// a JSON Pointer relative to the document root: "/items/0/sku".
func FieldPointer(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	} else {
		return "/" + namespace
	}
	namespace = indexPattern.ReplaceAllString(namespace, ".$1")
	return "/" + strings.ReplaceAll(namespace, ".", "/")
}

// ValidationMessage returns a short English phrase for a failed rule.
func ValidationMessage(fe validatorV10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "alphanum":
		return "must contain only alphanumeric characters"
	case "alpha":
		return "must contain only alphabetic characters"
	case "numeric":
		return "must be a valid number"
	case "url":
		return "must be a valid URL"
	case "uri":
		return "must be a valid URI"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}
