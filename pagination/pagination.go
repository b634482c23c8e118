// Package pagination parses list windows from query strings and JSON.
//
// Query and JSON input accept the json-server style aliases _start, _end,
// _order and _sort for offset, limit, order and sort. When both spellings
// are present the canonical one wins.
package pagination

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/leeforge/webresult/http/binding"
	"github.com/leeforge/webresult/json"
)

// DefaultLimit is the limit used when none is given.
const DefaultLimit uint64 = 100

var aliases = map[string]string{
	"_start": "offset",
	"_end":   "limit",
	"_order": "order",
	"_sort":  "sort",
}

// ListOptions selects a window of a list. Offset defaults to 0 and Limit to
// DefaultLimit.
type ListOptions struct {
	Offset *uint64 `json:"offset" query:"offset"`
	Limit  *uint64 `json:"limit" query:"limit" default:"100"`
	Order  *Order  `json:"order" query:"order"`
	Sort   *string `json:"sort" query:"sort" validate:"omitempty,max=64"`
}

// Default returns options with only the limit set.
func Default() ListOptions {
	limit := DefaultLimit
	return ListOptions{Limit: &limit}
}

// Window resolves unset fields to 0 and DefaultLimit.
func (o ListOptions) Window() (offset, limit uint64) {
	limit = DefaultLimit
	if o.Offset != nil {
		offset = *o.Offset
	}
	if o.Limit != nil {
		limit = *o.Limit
	}
	return offset, limit
}

// UnmarshalJSON accepts the aliases. A missing limit defaults to
// DefaultLimit; an explicit null keeps it unset.
func (o *ListOptions) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("pagination: list options must be a JSON object")
	}
	for alias, canonical := range aliases {
		v, ok := raw[alias]
		if !ok {
			continue
		}
		if _, dup := raw[canonical]; !dup {
			raw[canonical] = v
		}
		delete(raw, alias)
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	type plain ListOptions
	var p plain
	if err := json.Unmarshal(normalized, &p); err != nil {
		return err
	}
	*o = ListOptions(p)
	return nil
}

// Parser reads ListOptions from query strings.
type Parser struct {
	binder       *binding.QueryParser
	maxLimit     uint64
	defaultLimit uint64
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxLimit rejects limits above max. Zero disables the check.
func WithMaxLimit(max uint64) Option {
	return func(p *Parser) {
		p.maxLimit = max
	}
}

// WithDefaultLimit replaces DefaultLimit for queries without a limit.
func WithDefaultLimit(limit uint64) Option {
	return func(p *Parser) {
		p.defaultLimit = limit
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{binder: binding.NewQueryParser()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// ParseQuery parses values with the default parser.
func ParseQuery(values url.Values) (ListOptions, error) {
	return defaultParser.Parse(values)
}

// FromRequest parses the URL query of r with the default parser.
func FromRequest(r *http.Request) (ListOptions, error) {
	return defaultParser.Parse(r.URL.Query())
}

// Parse reads values. Errors implement response.ErrorResponder and render
// as 400 responses pointing at the offending parameter.
func (p *Parser) Parse(values url.Values) (ListOptions, error) {
	values = normalize(values)
	var opts ListOptions
	if err := p.binder.Bind(values, &opts); err != nil {
		return ListOptions{}, err
	}
	if _, given := values["limit"]; !given && p.defaultLimit > 0 {
		limit := p.defaultLimit
		opts.Limit = &limit
	}
	if p.maxLimit > 0 && opts.Limit != nil && *opts.Limit > p.maxLimit {
		return ListOptions{}, &binding.BindError{
			Type:     binding.TypeValidation,
			Field:    "limit",
			Location: binding.LocationQuery,
			Rule:     "max",
			Message:  fmt.Sprintf("limit must be at most %d", p.maxLimit),
		}
	}
	return opts, nil
}

// FromRequest parses the URL query of r.
func (p *Parser) FromRequest(r *http.Request) (ListOptions, error) {
	return p.Parse(r.URL.Query())
}

func normalize(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	for alias, canonical := range aliases {
		v, ok := out[alias]
		if !ok {
			continue
		}
		if _, dup := out[canonical]; !dup {
			out[canonical] = v
		}
		delete(out, alias)
	}
	return out
}
