package response

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	validatorV10 "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"min=3"`
	Items []item `json:"items" validate:"dive"`
}

type item struct {
	SKU string `json:"sku" validate:"required"`
}

func newValidator() *validatorV10.Validate {
	v := validatorV10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func TestFromValidationErrors(t *testing.T) {
	err := newValidator().Struct(signup{Email: "nope", Name: "ab", Items: []item{{SKU: "a"}, {}}})
	require.Error(t, err)

	r := FromError(err)
	require.Len(t, r.Errors, 3)
	assert.Equal(t, http.StatusBadRequest, r.Status())

	first := r.Errors[0]
	assert.Equal(t, "email must be a valid email address", first.Detail)
	assert.Equal(t, CodeValidationFailed, first.Code)
	assert.Equal(t, Object{"pointer": "/email"}, first.Source)
	assert.Equal(t, "email", first.Meta["rule"])

	assert.Equal(t, "name must be at least 3 characters long", r.Errors[1].Detail)
	assert.Equal(t, "/items/1/sku", r.Errors[2].Source["pointer"])
}

func TestFieldPointer(t *testing.T) {
	assert.Equal(t, "/email", FieldPointer("signup.email"))
	assert.Equal(t, "/items/0/sku", FieldPointer("signup.items[0].sku"))
	assert.Equal(t, "/labels/env", FieldPointer("cfg.labels[env]"))
	assert.Equal(t, "/bare", FieldPointer("bare"))
}

func TestFromErrorPlainError(t *testing.T) {
	r := FromError(errors.New("connection refused"))
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "connection refused", r.Errors[0].Detail)
	assert.Equal(t, http.StatusInternalServerError, r.Status())
}

func TestFromErrorNil(t *testing.T) {
	r := FromError(nil)
	assert.NotNil(t, r.Errors)
	assert.Equal(t, 0, r.Len())
}

func TestErrorf(t *testing.T) {
	r := Errorf(http.StatusNotFound, "item %d not found", 7)
	errs, ok := r.Errors()
	require.True(t, ok)
	assert.Equal(t, "item 7 not found", errs.Errors[0].Detail)
	assert.Equal(t, http.StatusNotFound, errs.Status())
}
