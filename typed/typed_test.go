package typed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leeforge/webresult/response"
)

type zed struct{}

type superZed struct {
	MyName string
}

type box[T any] struct {
	V T
}

func TestTypeName(t *testing.T) {
	sz := &superZed{MyName: "My name is Zed!"}

	tests := []struct {
		name string
		v    any
		want string
	}{
		{name: "empty struct", v: zed{}, want: "zed"},
		{name: "pointer", v: sz, want: "superZed"},
		{name: "double pointer", v: &sz, want: "superZed"},
		{name: "generic", v: box[int]{V: 1}, want: "box"},
		{name: "generic with package types", v: box[response.Status]{}, want: "box"},
		{name: "other package", v: response.ErrorObject{}, want: "ErrorObject"},
		{name: "builtin", v: 42, want: "int"},
		{name: "unnamed slice", v: []int{1}, want: "[]int"},
		{name: "nil", v: nil, want: "nil"},
		{name: "error value", v: errors.New("x"), want: "errorString"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeName(tt.v))
		})
	}
}
