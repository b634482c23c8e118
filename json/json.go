// Package json is the single JSON codec of the module. It is backed by
// jsoniter in standard-library compatible mode (sorted map keys, HTML
// escaping) so identical values always encode to identical bytes.
//
// Decoding applies `default` struct tags before reading input. Encoding
// never touches the value it is given.
package json

import (
	"io"
	"reflect"

	"github.com/creasty/defaults"
	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// RawMessage is a raw encoded JSON value.
type RawMessage = jsoniter.RawMessage

// Any is a lazily parsed JSON value, see Get.
type Any = jsoniter.Any

// ValueType re-exports the jsoniter kinds returned by Any.ValueType.
type ValueType = jsoniter.ValueType

const (
	InvalidValue = jsoniter.InvalidValue
	StringValue  = jsoniter.StringValue
	NumberValue  = jsoniter.NumberValue
	NilValue     = jsoniter.NilValue
	BoolValue    = jsoniter.BoolValue
	ArrayValue   = jsoniter.ArrayValue
	ObjectValue  = jsoniter.ObjectValue
)

// setDefaults applies `default` struct tags to a decode target. Only non-nil
// struct pointers carry defaults; other targets are left alone.
func setDefaults(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil
	}
	return defaults.Set(v)
}

type Encoder struct {
	*jsoniter.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		Encoder: api.NewEncoder(w),
	}
}

// Encode writes v as is; defaults only apply on decode.
func (e *Encoder) Encode(v any) error {
	return e.Encoder.Encode(v)
}

type Decoder struct {
	*jsoniter.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		Decoder: api.NewDecoder(r),
	}
}

// Decode applies defaults first so that fields present in the input win.
func (d *Decoder) Decode(v any) error {
	if err := setDefaults(v); err != nil {
		return err
	}
	return d.Decoder.Decode(v)
}

func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

func MarshalToString(v any) (string, error) {
	return api.MarshalToString(v)
}

func Unmarshal(data []byte, v any) error {
	if err := setDefaults(v); err != nil {
		return err
	}
	return api.Unmarshal(data, v)
}

// Valid reports whether data is a single well-formed JSON value.
func Valid(data []byte) bool {
	return api.Valid(data)
}

// Get looks a path up in encoded JSON without decoding the whole document.
// A missing path yields an Any whose ValueType is InvalidValue.
func Get(data []byte, path ...any) Any {
	return api.Get(data, path...)
}
