package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOptions struct {
	Limit  int    `json:"limit" default:"100"`
	Sort   string `json:"sort" default:"id"`
	Strict bool   `json:"strict" default:"true"`
}

func TestMarshalDoesNotApplyDefaults(t *testing.T) {
	opts := &testOptions{Sort: "name"}

	data, err := Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":0,"sort":"name","strict":false}`, string(data))
	assert.Equal(t, testOptions{Sort: "name"}, *opts)

	s, err := MarshalToString(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":0,"sort":"name","strict":false}`, s)

	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).Encode(opts))
	assert.Equal(t, testOptions{Sort: "name"}, *opts)
}

func TestMarshalLeavesNonPointerValuesAlone(t *testing.T) {
	data, err := Marshal(testOptions{Sort: "name"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":0,"sort":"name","strict":false}`, string(data))

	data, err = Marshal(map[string]any{"b": 1, "a": []int{1, 2}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2],"b":1}`, string(data))

	data, err = Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestMarshalSortsMapKeysDeterministically(t *testing.T) {
	v := map[string]any{"z": 1, "m": map[string]any{"y": true, "b": nil}, "a": "x"}

	first, err := Marshal(v)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Marshal(v)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
	assert.Equal(t, `{"a":"x","m":{"b":null,"y":true},"z":1}`, string(first))
}

func TestMarshalRejectsUnsupportedValues(t *testing.T) {
	_, err := Marshal(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestUnmarshalAppliesDefaultsForMissingFields(t *testing.T) {
	var opts testOptions
	require.NoError(t, Unmarshal([]byte(`{"sort":"created_at"}`), &opts))

	assert.Equal(t, 100, opts.Limit)
	assert.Equal(t, "created_at", opts.Sort)
	assert.True(t, opts.Strict)
}

func TestUnmarshalPreservesExplicitZeroValues(t *testing.T) {
	var opts testOptions
	require.NoError(t, Unmarshal([]byte(`{"limit":0,"sort":"","strict":false}`), &opts))

	assert.Equal(t, 0, opts.Limit)
	assert.Equal(t, "", opts.Sort)
	assert.False(t, opts.Strict)
}

func TestUnmarshalIntoInterface(t *testing.T) {
	var v any
	require.NoError(t, Unmarshal([]byte(`{"items":[1,2,3]}`), &v))

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Len(t, m["items"], 3)
}

func TestDecoderDisallowUnknownFields(t *testing.T) {
	decoder := NewDecoder(strings.NewReader(`{"sort":"name","unknown_field":1}`))
	decoder.DisallowUnknownFields()

	var opts testOptions
	assert.Error(t, decoder.Decode(&opts))
}

func TestEncoderSetEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	require.NoError(t, encoder.Encode(map[string]string{"content": "<b>&</b>"}))
	assert.Contains(t, buf.String(), "<b>&</b>")
}

func TestGet(t *testing.T) {
	data := []byte(`{"items":[1,2],"full_count":42,"name":"x","none":null}`)

	fc := Get(data, "full_count")
	assert.Equal(t, NumberValue, fc.ValueType())
	assert.Equal(t, "42", fc.ToString())

	assert.Equal(t, StringValue, Get(data, "name").ValueType())
	assert.Equal(t, NilValue, Get(data, "none").ValueType())
	assert.Equal(t, InvalidValue, Get(data, "missing").ValueType())
	assert.Equal(t, InvalidValue, Get([]byte(`[1,2,3]`), "full_count").ValueType())
}

func TestValid(t *testing.T) {
	assert.True(t, Valid([]byte(`{"a":1}`)))
	assert.False(t, Valid([]byte(`{"a":`)))
}
