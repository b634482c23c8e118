package response

import (
	"errors"
	"net/http"

	validatorV10 "github.com/go-playground/validator/v10"
)

// ErrorResponder is implemented by errors that already know their error
// objects. ErrorObject and ErrorResponse both implement it.
type ErrorResponder interface {
	ErrorResponse() ErrorResponse
}

// FromError converts any Go error into an ErrorResponse:
//   - an ErrorResponder anywhere in the chain is used as is;
//   - validator.ValidationErrors become one 400 object per field;
//   - anything else becomes a single 500 object with err's text as detail.
//
// A nil error yields an empty response.
func FromError(err error) ErrorResponse {
	if err == nil {
		return ErrorResponse{Errors: []ErrorObject{}}
	}

	var responder ErrorResponder
	if errors.As(err, &responder) {
		return responder.ErrorResponse().Clone()
	}

	var ve validatorV10.ValidationErrors
	if errors.As(err, &ve) {
		return FromValidationErrors(ve)
	}

	return FromErrorObject(NewErrorObject(err.Error(), WithStatus(http.StatusInternalServerError)))
}

// Errorf is shorthand for a single-object failure Result.
func Errorf(status int, format string, args ...any) Result {
	return FailWith(ErrorObjectf(status, format, args...))
}
