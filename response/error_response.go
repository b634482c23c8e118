package response

import (
	"net/http"
	"strings"

	"github.com/leeforge/webresult/json"
)

// ErrorResponse is the failure body: error objects returned as an array
// keyed by "errors" (https://jsonapi.org/format/#errors).
//
// Order is significant and preserved through encoding. An ErrorResponse
// owns its objects; constructors copy what they are given.
type ErrorResponse struct {
	Errors []ErrorObject `json:"errors"`
}

// NewErrorResponse collects objs in the order given.
func NewErrorResponse(objs ...ErrorObject) ErrorResponse {
	errs := make([]ErrorObject, len(objs))
	for i, o := range objs {
		errs[i] = o.Clone()
	}
	return ErrorResponse{Errors: errs}
}

// FromErrorObject wraps a single object.
func FromErrorObject(e ErrorObject) ErrorResponse {
	return ErrorResponse{Errors: []ErrorObject{e.Clone()}}
}

// Append returns a response with objs added after the existing ones.
func (r ErrorResponse) Append(objs ...ErrorObject) ErrorResponse {
	out := r.Clone()
	for _, o := range objs {
		out.Errors = append(out.Errors, o.Clone())
	}
	return out
}

// Len is the number of error objects.
func (r ErrorResponse) Len() int {
	return len(r.Errors)
}

// Clone returns a deep copy.
func (r ErrorResponse) Clone() ErrorResponse {
	return NewErrorResponse(r.Errors...)
}

// Status resolves the overall HTTP status, see ResolveStatus.
func (r ErrorResponse) Status() int {
	return ResolveStatus(r.Errors)
}

// Error joins the messages of all objects.
func (r ErrorResponse) Error() string {
	if len(r.Errors) == 0 {
		return http.StatusText(http.StatusInternalServerError)
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// ErrorResponse lets an ErrorResponse satisfy ErrorResponder.
func (r ErrorResponse) ErrorResponse() ErrorResponse {
	return r
}

// MarshalJSON always emits an array, so an empty response encodes as
// {"errors":[]} rather than {"errors":null}.
func (r ErrorResponse) MarshalJSON() ([]byte, error) {
	errs := r.Errors
	if errs == nil {
		errs = []ErrorObject{}
	}
	return json.Marshal(struct {
		Errors []ErrorObject `json:"errors"`
	}{Errors: errs})
}

// ResolveStatus derives one HTTP status from per-object statuses: the most
// severe (numerically largest) wins, and an empty list resolves to 500.
// Objects are inspected, never reordered.
func ResolveStatus(objs []ErrorObject) int {
	if len(objs) == 0 {
		return http.StatusInternalServerError
	}
	status := objs[0].Status.Code()
	for _, o := range objs[1:] {
		if c := o.Status.Code(); c > status {
			status = c
		}
	}
	return status
}
