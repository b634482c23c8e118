package response

// Result is either a success value or an ErrorResponse, never both.
//
// The zero Result is Ok(nil), which renders as a 200 with a JSON null body.
type Result struct {
	value  any
	errors *ErrorResponse
}

// Ok wraps an arbitrary JSON-encodable success value. No shape validation is
// done here.
func Ok(v any) Result {
	return Result{value: v}
}

// Fail wraps an error response.
func Fail(r ErrorResponse) Result {
	cp := r.Clone()
	return Result{errors: &cp}
}

// FailWith is Fail(NewErrorResponse(objs...)).
func FailWith(objs ...ErrorObject) Result {
	r := NewErrorResponse(objs...)
	return Result{errors: &r}
}

// From maps a value-or-error pair onto a Result: a nil err passes v through
// as the success payload, otherwise err becomes the failure (see FromError).
// An ErrorResponse passed as err round-trips unchanged.
func From(v any, err error) Result {
	if err == nil {
		return Ok(v)
	}
	return Fail(FromError(err))
}

// IsOk reports whether r holds a success value.
func (r Result) IsOk() bool {
	return r.errors == nil
}

// Value returns the success payload and true, or nil and false on failure.
func (r Result) Value() (any, bool) {
	if r.errors != nil {
		return nil, false
	}
	return r.value, true
}

// Errors returns the failure and true, or an empty response and false.
func (r Result) Errors() (ErrorResponse, bool) {
	if r.errors == nil {
		return ErrorResponse{}, false
	}
	return r.errors.Clone(), true
}

// Match calls exactly one of ok or fail.
func (r Result) Match(ok func(v any), fail func(ErrorResponse)) {
	if r.errors == nil {
		ok(r.value)
		return
	}
	fail(r.errors.Clone())
}

// Localize returns r with failure titles and details translated, see
// ErrorObject.Localize. Success values are returned untouched.
func (r Result) Localize(p Printer) Result {
	if r.errors == nil || p == nil {
		return r
	}
	loc := r.errors.Localize(p)
	return Result{errors: &loc}
}

// MapErrors returns r with fn applied to a copy of every error object.
func (r Result) MapErrors(fn func(ErrorObject) ErrorObject) Result {
	if r.errors == nil {
		return r
	}
	out := make([]ErrorObject, len(r.errors.Errors))
	for i, e := range r.errors.Errors {
		out[i] = fn(e.Clone())
	}
	return Result{errors: &ErrorResponse{Errors: out}}
}
