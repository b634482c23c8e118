// Package render turns a response.Result into status, headers and body
// bytes. Framework adapters (httpresult, echoresult) only copy the
// Rendered value onto their native response, so every framework answers
// the same Result with the same bytes.
package render

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/leeforge/webresult/json"
	"github.com/leeforge/webresult/response"
	"github.com/leeforge/webresult/typed"
)

const (
	// ContentTypeJSON is set on every rendered response.
	ContentTypeJSON = "application/json"
	// TotalCountHeader mirrors the full_count member of a success object.
	TotalCountHeader = "X-Total-Count"
	// TotalCountField is the success member that drives TotalCountHeader.
	TotalCountField = "full_count"
)

// FallbackBody is written when a Result cannot be encoded.
var FallbackBody = []byte(`{"errors":[{"detail":"encode failed","status":"500"}]}`)

// Rendered is a framework-neutral HTTP response.
type Rendered struct {
	Status int
	Header http.Header
	Body   []byte
}

// Render encodes res.
//
// Success: status 200, body is the value encoded as is, and X-Total-Count is
// set when the value is a JSON object with a full_count member.
//
// Failure: status is resolved from the error objects (largest wins, 500 when
// empty) and the body is the full {"errors":[...]} document.
//
// An encode error means the handler produced a value that is not JSON; it is
// returned wrapped and the caller is expected to treat it as fatal.
func Render(res response.Result) (*Rendered, error) {
	out := &Rendered{Header: http.Header{}}
	out.Header.Set("Content-Type", ContentTypeJSON)

	if v, ok := res.Value(); ok {
		body, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "render: encode success payload of type %s", typed.TypeName(v))
		}
		out.Status = http.StatusOK
		out.Body = body
		if count, ok := TotalCount(body); ok {
			out.Header.Set(TotalCountHeader, count)
		}
		return out, nil
	}

	errs, _ := res.Errors()
	body, err := json.Marshal(errs)
	if err != nil {
		return nil, errors.Wrap(err, "render: encode error response")
	}
	out.Status = statusLine(errs.Status())
	out.Body = body
	return out, nil
}

// Fallback is the response written after an encode failure.
func Fallback() *Rendered {
	h := http.Header{}
	h.Set("Content-Type", ContentTypeJSON)
	body := make([]byte, len(FallbackBody))
	copy(body, FallbackBody)
	return &Rendered{Status: http.StatusInternalServerError, Header: h, Body: body}
}

// TotalCount extracts full_count from an encoded success body. Numbers keep
// their literal text, strings are unquoted, null and absence yield false.
func TotalCount(body []byte) (string, bool) {
	fc := json.Get(body, TotalCountField)
	switch fc.ValueType() {
	case json.InvalidValue, json.NilValue:
		return "", false
	default:
		return fc.ToString(), true
	}
}

// statusLine guards against objects carrying codes a server cannot write.
func statusLine(code int) int {
	if code < 100 || code > 999 {
		return http.StatusInternalServerError
	}
	return code
}
