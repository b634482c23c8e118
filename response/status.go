package response

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/leeforge/webresult/json"
)

// DefaultStatus is what an unset Status reports and serializes as.
const DefaultStatus = http.StatusOK

// Status is the HTTP status code of a single error object. On the wire it is
// a decimal string, e.g. "404".
//
// The zero value means "unset" and behaves as DefaultStatus (200). Error
// objects built with NewErrorObject start at 500 instead.
type Status int

// Code returns the effective numeric status.
func (s Status) Code() int {
	if s == 0 {
		return DefaultStatus
	}
	return int(s)
}

// Valid reports whether the effective code is a three digit HTTP status.
func (s Status) Valid() bool {
	c := s.Code()
	return c >= 100 && c <= 999
}

// Text returns the reason phrase, e.g. "Not Found".
func (s Status) Text() string {
	return http.StatusText(s.Code())
}

func (s Status) String() string {
	return strconv.Itoa(s.Code())
}

// MarshalJSON writes the effective code; an out-of-range code is written
// as "500", matching the status it renders with.
func (s Status) MarshalJSON() ([]byte, error) {
	code := s.Code()
	if !s.Valid() {
		code = http.StatusInternalServerError
	}
	return []byte(`"` + strconv.Itoa(code) + `"`), nil
}

// UnmarshalJSON accepts "404", 404 or null (unset).
func (s *Status) UnmarshalJSON(data []byte) error {
	v := json.Get(data)
	var (
		code int
		err  error
	)
	switch v.ValueType() {
	case json.NilValue:
		*s = 0
		return nil
	case json.StringValue:
		code, err = strconv.Atoi(v.ToString())
	case json.NumberValue:
		code, err = strconv.Atoi(string(data))
	default:
		return fmt.Errorf("response: invalid status %s", data)
	}
	if err != nil {
		return fmt.Errorf("response: invalid status %s: %w", data, err)
	}
	st := Status(code)
	if !st.Valid() {
		return fmt.Errorf("response: status %d out of range", code)
	}
	*s = st
	return nil
}
