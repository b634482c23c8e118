// Package schema derives JSON Schemas for the wire types. The schemas
// follow the encoding rules: optional members are never required, status
// is a decimal string defaulting to "200", and meta, links and source are
// free-form objects.
package schema

import (
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/leeforge/webresult/pagination"
	"github.com/leeforge/webresult/response"
)

var (
	statusType = reflect.TypeOf(response.Status(0))
	objectType = reflect.TypeOf(response.Object(nil))
	orderType  = reflect.TypeOf(pagination.Order(""))
)

func mapper(t reflect.Type) *jsonschema.Schema {
	switch t {
	case statusType:
		return &jsonschema.Schema{
			Type:        "string",
			Pattern:     `^[1-9][0-9]{2}$`,
			Default:     "200",
			Description: "HTTP status code as a decimal string",
		}
	case objectType:
		return &jsonschema.Schema{
			Type:                 "object",
			AdditionalProperties: jsonschema.TrueSchema,
		}
	case orderType:
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{string(pagination.Asc), string(pagination.Desc)},
		}
	}
	return nil
}

func reflector(allowExtra bool) *jsonschema.Reflector {
	return &jsonschema.Reflector{
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  allowExtra,
		Mapper:                     mapper,
	}
}

// ForErrorObject describes a single error object.
func ForErrorObject() *jsonschema.Schema {
	return reflector(false).Reflect(&response.ErrorObject{})
}

// ForErrorResponse describes {"errors":[...]}; errors is always present.
func ForErrorResponse() *jsonschema.Schema {
	s := reflector(false).Reflect(&response.ErrorResponse{})
	s.Required = []string{"errors"}
	return s
}

// ForListOptions describes list options. Extra members are allowed so the
// _start, _end, _order and _sort aliases validate.
func ForListOptions() *jsonschema.Schema {
	s := reflector(true).Reflect(&pagination.ListOptions{})
	if limit, ok := s.Properties.Get("limit"); ok && limit != nil {
		limit.Default = pagination.DefaultLimit
	}
	return s
}
