package response

import (
	"errors"
	"fmt"

	"github.com/leeforge/webresult/json"
)

// ErrNotObject is returned when a value does not encode to a JSON object.
var ErrNotObject = errors.New("response: value is not a JSON object")

// Object is a free-form JSON object. It is used for the meta, links and
// source members of an ErrorObject.
type Object map[string]any

// ObjectFrom converts v into an Object. Maps and structs that encode to a
// JSON object are accepted; anything else yields ErrNotObject.
func ObjectFrom(v any) (Object, error) {
	switch t := v.(type) {
	case Object:
		return t.Clone(), nil
	case map[string]any:
		return Object(t).Clone(), nil
	case json.RawMessage:
		return ParseObject(t)
	case []byte:
		return ParseObject(t)
	case nil:
		return nil, ErrNotObject
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("response: encode object: %w", err)
	}
	return ParseObject(raw)
}

// MustObject is like ObjectFrom but panics when v is not object shaped.
// Passing a non-object is a programming error in the caller.
func MustObject(v any) Object {
	o, err := ObjectFrom(v)
	if err != nil {
		panic(err)
	}
	return o
}

// ParseObject decodes encoded JSON that must be an object.
func ParseObject(data []byte) (Object, error) {
	if json.Get(data).ValueType() != json.ObjectValue {
		return nil, ErrNotObject
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("response: decode object: %w", err)
	}
	return Object(m), nil
}

// UnmarshalJSON rejects anything but a JSON object or null.
func (o *Object) UnmarshalJSON(data []byte) error {
	switch json.Get(data).ValueType() {
	case json.NilValue:
		*o = nil
		return nil
	case json.ObjectValue:
	default:
		return ErrNotObject
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*o = Object(m)
	return nil
}

// Clone returns a deep copy. Nested maps and slices are copied so the clone
// never aliases the receiver.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Object(t).Clone())
	case Object:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
