// Package binding decodes request input into structs, validates it and
// reports every failure as a JSON:API Error Response.
package binding

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	validatorV10 "github.com/go-playground/validator/v10"

	"github.com/leeforge/webresult/json"
	"github.com/leeforge/webresult/response"
)

const (
	TypeBind       = "bind_error"
	TypeJSON       = "json_error"
	TypeValidation = "validation_error"
	TypeTooLarge   = "body_too_large"
)

// DefaultMaxBodyBytes caps request bodies read by JSON.
const DefaultMaxBodyBytes int64 = 1 << 20

// Location says where the offending input was.
type Location string

const (
	LocationQuery Location = "query"
	LocationBody  Location = "body"
)

// BindError describes one rejected input. Field is the query parameter name
// for LocationQuery and a JSON Pointer for LocationBody.
type BindError struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Field    string   `json:"field,omitempty"`
	Location Location `json:"location,omitempty"`
	Rule     string   `json:"rule,omitempty"`
}

func (e BindError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s' %s", e.Type, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorObject converts e to a 400 error object, or 413 for an oversized body.
func (e BindError) ErrorObject() response.ErrorObject {
	status := http.StatusBadRequest
	if e.Type == TypeTooLarge {
		status = http.StatusRequestEntityTooLarge
	}
	opts := []response.Option{
		response.WithStatus(status),
		response.WithStatusTitle(),
		response.WithCode(e.Type),
	}
	switch {
	case e.Field == "":
	case e.Location == LocationQuery:
		opts = append(opts, response.WithSourceParameter(e.Field))
	default:
		opts = append(opts, response.WithSourcePointer(e.Field))
	}
	if e.Rule != "" {
		opts = append(opts, response.WithMetaValue("rule", e.Rule))
	}
	return response.NewErrorObject(e.Message, opts...)
}

// ErrorResponse makes BindError a response.ErrorResponder.
func (e BindError) ErrorResponse() response.ErrorResponse {
	return response.FromErrorObject(e.ErrorObject())
}

// ValidationErrors holds one BindError per failed rule.
type ValidationErrors []BindError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", ve[0].Error())
}

// ErrorResponse keeps validator order.
func (ve ValidationErrors) ErrorResponse() response.ErrorResponse {
	objs := make([]response.ErrorObject, len(ve))
	for i, e := range ve {
		objs[i] = e.ErrorObject()
	}
	return response.NewErrorResponse(objs...)
}

// Query binds and validates the URL query of r.
func Query(r *http.Request, v any) error {
	return NewQueryParser().Bind(r.URL.Query(), v)
}

// Values binds and validates already parsed query values.
func Values(values url.Values, v any) error {
	return NewQueryParser().Bind(values, v)
}

// JSON decodes at most DefaultMaxBodyBytes of the request body into v and
// validates it.
func JSON(r *http.Request, v any) error {
	return JSONLimit(r, v, DefaultMaxBodyBytes)
}

// JSONLimit is JSON with a caller-chosen body cap. A body over maxBytes is
// rejected with TypeTooLarge; maxBytes <= 0 means DefaultMaxBodyBytes.
func JSONLimit(r *http.Request, v any, maxBytes int64) error {
	if r.Body == nil {
		return &BindError{Type: TypeBind, Location: LocationBody, Message: "request body is empty"}
	}
	defer r.Body.Close()
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &BindError{
				Type:     TypeTooLarge,
				Location: LocationBody,
				Message:  fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			}
		}
		return &BindError{Type: TypeBind, Location: LocationBody, Message: "failed to read request body: " + err.Error()}
	}
	if len(body) == 0 {
		return &BindError{Type: TypeBind, Location: LocationBody, Message: "request body is empty"}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &BindError{Type: TypeJSON, Location: LocationBody, Message: "failed to unmarshal JSON: " + err.Error()}
	}

	return validate(v, LocationBody)
}

func validate(v any, loc Location) error {
	err := validator.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validatorV10.ValidationErrors)
	if !ok {
		return &BindError{Type: TypeValidation, Location: loc, Message: err.Error()}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := response.FieldPointer(fe.Namespace())
		if loc == LocationQuery {
			field = parameterName(fe.Namespace())
		}
		out = append(out, BindError{
			Type:     TypeValidation,
			Field:    field,
			Location: loc,
			Rule:     fe.Tag(),
			Message:  fe.Field() + " " + response.ValidationMessage(fe),
		})
	}
	return out
}
