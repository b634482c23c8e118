package response

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrorObject describes one problem, shaped after the JSON:API error object.
//
// Detail and Status are always present in memory. Every other member is
// optional and left out of the encoded form when empty.
type ErrorObject struct {
	// Detail is a human-readable explanation of this occurrence.
	Detail string `json:"detail,omitempty"`
	// Title is a short summary that does not change between occurrences,
	// except for localization.
	Title string `json:"title,omitempty"`
	// Meta carries non-standard, machine-readable information.
	Meta Object `json:"meta,omitempty"`
	// ID identifies this particular occurrence.
	ID string `json:"id,omitempty"`
	// Links is passed through as is; an "about" member is conventional.
	Links Object `json:"links,omitempty"`
	// Status is the HTTP status applicable to this problem.
	Status Status `json:"status"`
	// Code is an application-specific error code.
	Code string `json:"code,omitempty"`
	// Source points at the request part that caused the problem, usually
	// with a "pointer" or "parameter" member. Passed through as is.
	Source Object `json:"source,omitempty"`
}

// Option customizes an ErrorObject under construction.
type Option func(*ErrorObject)

// NewErrorObject creates an error object with status 500.
func NewErrorObject(detail string, opts ...Option) ErrorObject {
	e := ErrorObject{
		Detail: detail,
		Status: http.StatusInternalServerError,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// ErrorObjectf is NewErrorObject with a formatted detail.
func ErrorObjectf(status int, format string, args ...any) ErrorObject {
	return NewErrorObject(fmt.Sprintf(format, args...), WithStatus(status))
}

// NewErrorObjectWithMeta creates an error object carrying meta.
//
// The status is left unset, which reports as 200. This mirrors the historic
// behaviour of the meta constructor; pass WithStatus to pick a real one.
func NewErrorObjectWithMeta(detail string, meta Object, opts ...Option) ErrorObject {
	e := ErrorObject{
		Detail: detail,
		Meta:   meta.Clone(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// WithStatus sets the status. 0 leaves it unset; codes outside 100..999
// are stored as 500 so the object still decodes after encoding.
func WithStatus(code int) Option {
	return func(e *ErrorObject) {
		st := Status(code)
		if code != 0 && !st.Valid() {
			st = http.StatusInternalServerError
		}
		e.Status = st
	}
}

func WithTitle(title string) Option {
	return func(e *ErrorObject) {
		e.Title = title
	}
}

// WithStatusTitle sets the title to the reason phrase of the current status.
func WithStatusTitle() Option {
	return func(e *ErrorObject) {
		e.Title = e.Status.Text()
	}
}

func WithCode(code string) Option {
	return func(e *ErrorObject) {
		e.Code = code
	}
}

func WithID(id string) Option {
	return func(e *ErrorObject) {
		e.ID = id
	}
}

// WithNewID assigns a fresh UUIDv7 as the occurrence id.
func WithNewID() Option {
	return func(e *ErrorObject) {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		e.ID = id.String()
	}
}

func WithMeta(meta Object) Option {
	return func(e *ErrorObject) {
		e.Meta = meta.Clone()
	}
}

// WithMetaValue sets a single meta member.
func WithMetaValue(key string, value any) Option {
	return func(e *ErrorObject) {
		if e.Meta == nil {
			e.Meta = Object{}
		}
		e.Meta[key] = value
	}
}

func WithLinks(links Object) Option {
	return func(e *ErrorObject) {
		e.Links = links.Clone()
	}
}

// WithAboutLink sets links.about.
func WithAboutLink(href string) Option {
	return func(e *ErrorObject) {
		if e.Links == nil {
			e.Links = Object{}
		}
		e.Links["about"] = href
	}
}

func WithSource(source Object) Option {
	return func(e *ErrorObject) {
		e.Source = source.Clone()
	}
}

// WithSourcePointer sets source.pointer to a JSON Pointer (RFC 6901) into
// the request document, e.g. "/data/attributes/title".
func WithSourcePointer(pointer string) Option {
	return func(e *ErrorObject) {
		if e.Source == nil {
			e.Source = Object{}
		}
		e.Source["pointer"] = pointer
	}
}

// WithSourceParameter sets source.parameter to the offending query parameter.
func WithSourceParameter(name string) Option {
	return func(e *ErrorObject) {
		if e.Source == nil {
			e.Source = Object{}
		}
		e.Source["parameter"] = name
	}
}

// With returns a copy of e with opts applied. The receiver is not modified.
func (e ErrorObject) With(opts ...Option) ErrorObject {
	cp := e.Clone()
	for _, opt := range opts {
		opt(&cp)
	}
	return cp
}

// Clone returns a deep copy.
func (e ErrorObject) Clone() ErrorObject {
	e.Meta = e.Meta.Clone()
	e.Links = e.Links.Clone()
	e.Source = e.Source.Clone()
	return e
}

// Error implements error, so an ErrorObject can be returned as one.
func (e ErrorObject) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.Status.Code(), e.Code, msg)
	}
	return fmt.Sprintf("%d: %s", e.Status.Code(), msg)
}

// ErrorResponse wraps e into a one-element ErrorResponse.
func (e ErrorObject) ErrorResponse() ErrorResponse {
	return FromErrorObject(e)
}
