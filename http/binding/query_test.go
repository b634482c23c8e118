package binding

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRequest(query string) *http.Request {
	req := &http.Request{URL: &url.URL{}}
	if query != "" {
		values, _ := url.ParseQuery(query)
		req.URL.RawQuery = values.Encode()
	}
	return req
}

func TestBasicTypes(t *testing.T) {
	type QueryParams struct {
		Name   string  `query:"name"`
		Age    int     `query:"age"`
		Height float64 `query:"height"`
		Active bool    `query:"active"`
		Page   uint    `query:"page"`
	}

	tests := []struct {
		name      string
		query     string
		want      QueryParams
		wantField string
	}{
		{
			name:  "all fields set",
			query: "name=john&age=25&height=175.5&active=true&page=1",
			want:  QueryParams{Name: "john", Age: 25, Height: 175.5, Active: true, Page: 1},
		},
		{
			name:  "partial fields",
			query: "name=alice&age=30",
			want:  QueryParams{Name: "alice", Age: 30},
		},
		{name: "invalid integer", query: "age=invalid", wantField: "age"},
		{name: "invalid boolean", query: "active=maybe", wantField: "active"},
		{name: "negative unsigned", query: "page=-1", wantField: "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params QueryParams
			err := Query(createRequest(tt.query), &params)

			if tt.wantField != "" {
				var bindErr *BindError
				require.ErrorAs(t, err, &bindErr)
				assert.Equal(t, TypeBind, bindErr.Type)
				assert.Equal(t, tt.wantField, bindErr.Field)
				assert.Equal(t, LocationQuery, bindErr.Location)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, params)
		})
	}
}

func TestDefaultValues(t *testing.T) {
	type QueryParams struct {
		Page     int     `query:"page" default:"1"`
		PageSize int     `query:"page_size" default:"10"`
		Sort     string  `query:"sort" default:"created_at"`
		Limit    *uint64 `query:"limit" default:"100"`
	}

	var params QueryParams
	require.NoError(t, Query(createRequest("page=2&sort=name"), &params))

	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 10, params.PageSize)
	assert.Equal(t, "name", params.Sort)
	require.NotNil(t, params.Limit)
	assert.Equal(t, uint64(100), *params.Limit)
}

func TestArrays(t *testing.T) {
	type QueryParams struct {
		Tags   []string  `query:"tags"`
		IDs    []int     `query:"ids"`
		Scores []float64 `query:"scores"`
	}

	tests := []struct {
		name  string
		query string
		want  QueryParams
	}{
		{name: "multiple values", query: "tags=go&tags=rust&tags=python", want: QueryParams{Tags: []string{"go", "rust", "python"}}},
		{name: "comma separated", query: "tags=go,rust,python", want: QueryParams{Tags: []string{"go", "rust", "python"}}},
		{name: "integer array", query: "ids=1&ids=2&ids=3", want: QueryParams{IDs: []int{1, 2, 3}}},
		{name: "float array with comma", query: "scores=9.5,8.7,10.0", want: QueryParams{Scores: []float64{9.5, 8.7, 10.0}}},
		{
			name:  "mixed arrays",
			query: "tags=go&tags=rust&ids=1,2,3&scores=9.5&scores=8.7",
			want:  QueryParams{Tags: []string{"go", "rust"}, IDs: []int{1, 2, 3}, Scores: []float64{9.5, 8.7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params QueryParams
			require.NoError(t, Query(createRequest(tt.query), &params))
			assert.Equal(t, tt.want, params)
		})
	}

	var params QueryParams
	err := Query(createRequest("ids=1,x"), &params)
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "ids", bindErr.Field)
	assert.Contains(t, bindErr.Message, "in array")
}

func TestArrayStrategy(t *testing.T) {
	type QueryParams struct {
		Tags []string `query:"tags"`
	}

	tests := []struct {
		name     string
		query    string
		strategy ArrayStrategy
		want     []string
	}{
		{name: "multiple", query: "tags=go&tags=rust", strategy: ArrayStrategyMultiple, want: []string{"go", "rust"}},
		{name: "multiple keeps commas", query: "tags=go,rust", strategy: ArrayStrategyMultiple, want: []string{"go,rust"}},
		{name: "comma", query: "tags=go,rust,python", strategy: ArrayStrategyComma, want: []string{"go", "rust", "python"}},
		{name: "both prefers multiple", query: "tags=go&tags=rust", strategy: ArrayStrategyBoth, want: []string{"go", "rust"}},
		{name: "both splits single value", query: "tags=go,rust,python", strategy: ArrayStrategyBoth, want: []string{"go", "rust", "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewQueryParser()
			parser.SetArrayStrategy(tt.strategy)

			var params QueryParams
			require.NoError(t, parser.Bind(createRequest(tt.query).URL.Query(), &params))
			assert.Equal(t, tt.want, params.Tags)
		})
	}
}

func TestNestedStructs(t *testing.T) {
	type User struct {
		Name string `query:"name"`
		Age  int    `query:"age"`
	}
	type QueryParams struct {
		User   User  `query:"user"`
		Filter *User `query:"filter"`
	}

	var params QueryParams
	require.NoError(t, Query(createRequest("user.name=john&user.age=25"), &params))
	assert.Equal(t, User{Name: "john", Age: 25}, params.User)
	assert.Nil(t, params.Filter)

	params = QueryParams{}
	require.NoError(t, Query(createRequest("filter.name=alice"), &params))
	require.NotNil(t, params.Filter)
	assert.Equal(t, "alice", params.Filter.Name)
}

func TestPointerTypes(t *testing.T) {
	type QueryParams struct {
		Name     *string  `query:"name"`
		Age      *int     `query:"age"`
		Active   *bool    `query:"active"`
		MinPrice *float64 `query:"min_price"`
	}

	var params QueryParams
	require.NoError(t, Query(createRequest("name=john&age=25&active=true&min_price=9.99"), &params))
	require.NotNil(t, params.Name)
	assert.Equal(t, "john", *params.Name)
	assert.Equal(t, 25, *params.Age)
	assert.True(t, *params.Active)
	assert.Equal(t, 9.99, *params.MinPrice)

	params = QueryParams{}
	require.NoError(t, Query(createRequest(""), &params))
	assert.Nil(t, params.Name)
	assert.Nil(t, params.Age)
	assert.Nil(t, params.Active)
	assert.Nil(t, params.MinPrice)
}

func TestTagsAndIgnoredFields(t *testing.T) {
	type QueryParams struct {
		Name     string `query:"username"`
		Age      int    `json:"age"`
		City     string
		Password string `query:"-"`
		Internal string `json:"-"`
	}

	var params QueryParams
	require.NoError(t, Query(createRequest("username=john&age=25&city=beijing&password=secret&internal=data"), &params))

	assert.Equal(t, QueryParams{Name: "john", Age: 25, City: "beijing"}, params)
}

type CustomType struct {
	Value string
}

func (ct *CustomType) UnmarshalQuery(s string) error {
	if s == "bad" {
		return fmt.Errorf("not accepted")
	}
	ct.Value = "custom:" + s
	return nil
}

func TestCustomUnmarshaler(t *testing.T) {
	type QueryParams struct {
		Custom  CustomType  `query:"custom"`
		Pointer *CustomType `query:"pointer"`
	}

	var params QueryParams
	require.NoError(t, Query(createRequest("custom=test&pointer=p"), &params))
	assert.Equal(t, "custom:test", params.Custom.Value)
	require.NotNil(t, params.Pointer)
	assert.Equal(t, "custom:p", params.Pointer.Value)

	err := Query(createRequest("custom=bad"), &QueryParams{})
	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "custom", bindErr.Field)
	assert.Equal(t, "invalid value: not accepted", bindErr.Message)
}

func TestInvalidInput(t *testing.T) {
	i := 42
	inputs := map[string]any{
		"nil pointer":           (*struct{})(nil),
		"not a pointer":         struct{}{},
		"pointer to non-struct": &i,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Query(createRequest("test=value"), input))
		})
	}
}

func TestValidation(t *testing.T) {
	type QueryParams struct {
		Page     int    `query:"page" validate:"required,min=1"`
		PageSize int    `query:"page_size" validate:"required,min=1,max=100"`
		Email    string `query:"email" validate:"omitempty,email"`
		Sort     string `query:"sort" validate:"omitempty,oneof=asc desc"`
	}

	tests := []struct {
		name      string
		query     string
		wantField string
		wantRule  string
	}{
		{name: "valid params", query: "page=1&page_size=10"},
		{name: "page too small", query: "page=0&page_size=10", wantField: "page", wantRule: "required"},
		{name: "page_size too large", query: "page=1&page_size=200", wantField: "page_size", wantRule: "max"},
		{name: "invalid email", query: "page=1&page_size=10&email=invalid", wantField: "email", wantRule: "email"},
		{name: "valid email", query: "page=1&page_size=10&email=test@example.com"},
		{name: "invalid sort value", query: "page=1&page_size=10&sort=invalid", wantField: "sort", wantRule: "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params QueryParams
			err := Query(createRequest(tt.query), &params)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var ve ValidationErrors
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve)
			assert.Equal(t, TypeValidation, ve[0].Type)
			assert.Equal(t, tt.wantField, ve[0].Field)
			assert.Equal(t, tt.wantRule, ve[0].Rule)
			assert.Equal(t, LocationQuery, ve[0].Location)
		})
	}
}

func TestDefaultWithValidation(t *testing.T) {
	type QueryParams struct {
		Page     int    `query:"page" default:"1" validate:"min=1"`
		PageSize int    `query:"page_size" default:"10" validate:"min=1,max=100"`
		Sort     string `query:"sort" default:"created_at"`
	}

	var params QueryParams
	require.NoError(t, Query(createRequest(""), &params))
	assert.Equal(t, QueryParams{Page: 1, PageSize: 10, Sort: "created_at"}, params)

	params = QueryParams{}
	require.NoError(t, Query(createRequest("page=2&page_size=20"), &params))
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 20, params.PageSize)
}

func TestValuesBindsParsedValues(t *testing.T) {
	var params struct {
		Q string `query:"q" validate:"required"`
	}
	require.NoError(t, Values(url.Values{"q": {"x"}}, &params))
	assert.Equal(t, "x", params.Q)
}
