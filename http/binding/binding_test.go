package binding

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leeforge/webresult/json"
	"github.com/leeforge/webresult/response"
)

type lineItem struct {
	SKU string `json:"sku" validate:"required"`
}

type signup struct {
	Email string     `json:"email" validate:"required,email"`
	Items []lineItem `json:"items" validate:"dive"`
	Tier  string     `json:"tier" default:"free"`
}

func jsonRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSON(t *testing.T) {
	var s signup
	require.NoError(t, JSON(jsonRequest(`{"email":"a@b.co","items":[{"sku":"x"}]}`), &s))

	assert.Equal(t, "a@b.co", s.Email)
	assert.Equal(t, "free", s.Tier)
}

func TestJSONBindErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     *http.Request
		errType string
	}{
		{name: "nil body", req: &http.Request{}, errType: TypeBind},
		{name: "empty body", req: jsonRequest(""), errType: TypeBind},
		{name: "malformed", req: jsonRequest(`{"email":`), errType: TypeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s signup
			err := JSON(tt.req, &s)

			var bindErr *BindError
			require.ErrorAs(t, err, &bindErr)
			assert.Equal(t, tt.errType, bindErr.Type)
			assert.Equal(t, LocationBody, bindErr.Location)

			res := response.FromError(err)
			require.Equal(t, 1, res.Len())
			assert.Equal(t, 400, res.Status())
			assert.Nil(t, res.Errors[0].Source)
		})
	}
}

func TestJSONLimit(t *testing.T) {
	body := `{"email":"a@b.co","items":[{"sku":"` + strings.Repeat("x", 64) + `"}]}`

	var s signup
	err := JSONLimit(jsonRequest(body), &s, 32)

	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, TypeTooLarge, bindErr.Type)
	assert.Equal(t, "request body exceeds 32 bytes", bindErr.Message)

	res := response.FromError(err)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.Status())
	assert.Equal(t, TypeTooLarge, res.Errors[0].Code)

	s = signup{}
	require.NoError(t, JSONLimit(jsonRequest(body), &s, int64(len(body))))
	assert.Equal(t, "a@b.co", s.Email)

	s = signup{}
	require.NoError(t, JSONLimit(jsonRequest(body), &s, 0))
}

func TestJSONValidationBecomesPointers(t *testing.T) {
	var s signup
	err := JSON(jsonRequest(`{"email":"nope","items":[{"sku":"a"},{}]}`), &s)

	res := response.FromError(err)
	require.Equal(t, 2, res.Len())
	assert.Equal(t, 400, res.Status())

	assert.Equal(t, "/email", res.Errors[0].Source["pointer"])
	assert.Equal(t, "email must be a valid email address", res.Errors[0].Detail)
	assert.Equal(t, TypeValidation, res.Errors[0].Code)
	assert.Equal(t, "email", res.Errors[0].Meta["rule"])

	assert.Equal(t, "/items/1/sku", res.Errors[1].Source["pointer"])
	assert.Equal(t, "required", res.Errors[1].Meta["rule"])
}

type statusFilter struct {
	Status string `query:"status" validate:"omitempty,oneof=open closed"`
}

func TestQueryErrorsBecomeParameters(t *testing.T) {
	type params struct {
		Limit  uint64       `query:"limit" validate:"max=1000"`
		Filter statusFilter `query:"filter"`
	}

	var p params
	err := Query(createRequest("limit=5000&filter.status=odd"), &p)
	res := response.FromError(err)
	require.Equal(t, 2, res.Len())
	assert.Equal(t, "limit", res.Errors[0].Source["parameter"])
	assert.Equal(t, "filter.status", res.Errors[1].Source["parameter"])

	err = Query(createRequest("limit=lots"), &p)
	body, mErr := json.Marshal(response.FromError(err))
	require.NoError(t, mErr)
	assert.Equal(t,
		`{"errors":[{"detail":"invalid unsigned integer value: invalid syntax","title":"Bad Request","status":"400","code":"bind_error","source":{"parameter":"limit"}}]}`,
		string(body))
}

func TestBindErrorMessages(t *testing.T) {
	assert.Equal(t, "bind_error: field 'limit' is bad", BindError{Type: TypeBind, Field: "limit", Message: "is bad"}.Error())
	assert.Equal(t, "json_error: broken", BindError{Type: TypeJSON, Message: "broken"}.Error())
	assert.Equal(t, "validation failed", ValidationErrors{}.Error())
	assert.Equal(t, "validation failed: validation_error: x", ValidationErrors{{Type: TypeValidation, Message: "x"}}.Error())
}
