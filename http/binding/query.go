package binding

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// QueryUnmarshaler lets a type parse its own query parameter.
type QueryUnmarshaler interface {
	UnmarshalQuery(string) error
}

var queryUnmarshalerType = reflect.TypeOf((*QueryUnmarshaler)(nil)).Elem()

// ArrayStrategy controls how slice fields read their values.
type ArrayStrategy int

const (
	// ArrayStrategyMultiple reads ?tags=go&tags=rust.
	ArrayStrategyMultiple ArrayStrategy = iota
	// ArrayStrategyComma reads ?tags=go,rust.
	ArrayStrategyComma
	// ArrayStrategyBoth splits a single comma separated value, otherwise
	// takes every occurrence.
	ArrayStrategyBoth
)

// QueryParser binds url.Values onto structs using query (then json) tags
// and fills missing parameters from default tags.
type QueryParser struct {
	tagName       string
	defaultTag    string
	arrayStrategy ArrayStrategy
}

func NewQueryParser() *QueryParser {
	return &QueryParser{
		tagName:       "query",
		defaultTag:    "default",
		arrayStrategy: ArrayStrategyBoth,
	}
}

func (qp *QueryParser) SetArrayStrategy(strategy ArrayStrategy) {
	qp.arrayStrategy = strategy
}

// Parse binds values onto v, a non-nil pointer to struct, without validating.
func (qp *QueryParser) Parse(values url.Values, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &BindError{Type: TypeBind, Location: LocationQuery, Message: "v must be a non-nil pointer"}
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return &BindError{Type: TypeBind, Location: LocationQuery, Message: "v must be a pointer to struct"}
	}
	return qp.parseStruct(values, rv, "")
}

// Bind is Parse followed by validation.
func (qp *QueryParser) Bind(values url.Values, v any) error {
	if err := qp.Parse(values, v); err != nil {
		return err
	}
	return validate(v, LocationQuery)
}

func (qp *QueryParser) parseStruct(values url.Values, rv reflect.Value, prefix string) error {
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		queryName := qp.getQueryName(fieldType, prefix)
		if queryName == "-" {
			continue
		}

		switch {
		case field.Kind() == reflect.Struct && fieldType.Type.Name() != "":
			if field.Addr().Type().Implements(queryUnmarshalerType) {
				break
			}
			if err := qp.parseStruct(values, field, queryName+"."); err != nil {
				return err
			}
			continue

		case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
			if field.Type().Implements(queryUnmarshalerType) {
				break
			}
			if qp.hasNestedParams(values, queryName+".") || fieldType.Tag.Get(qp.defaultTag) != "" {
				if field.IsNil() {
					field.Set(reflect.New(field.Type().Elem()))
				}
				if err := qp.parseStruct(values, field.Elem(), queryName+"."); err != nil {
					return err
				}
			}
			continue
		}

		if err := qp.setFieldValue(field, values, queryName, fieldType); err != nil {
			return err
		}
	}

	return nil
}

func (qp *QueryParser) hasNestedParams(values url.Values, prefix string) bool {
	for key := range values {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func (qp *QueryParser) getQueryName(fieldType reflect.StructField, prefix string) string {
	for _, tag := range []string{qp.tagName, "json"} {
		tagValue := fieldType.Tag.Get(tag)
		if tagValue == "" {
			continue
		}
		name := strings.Split(tagValue, ",")[0]
		if name == "-" {
			return "-"
		}
		return prefix + name
	}
	return prefix + strings.ToLower(fieldType.Name)
}

// setFieldValue uses the query value when present and the default tag
// otherwise. Absent parameters without a default leave the field alone.
func (qp *QueryParser) setFieldValue(field reflect.Value, values url.Values, queryName string, fieldType reflect.StructField) error {
	queryValues := values[queryName]
	if len(queryValues) == 0 {
		def := fieldType.Tag.Get(qp.defaultTag)
		if def == "" {
			return nil
		}
		queryValues = []string{def}
	}

	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}

	if field.CanAddr() && field.Addr().Type().Implements(queryUnmarshalerType) {
		u := field.Addr().Interface().(QueryUnmarshaler)
		if err := u.UnmarshalQuery(queryValues[0]); err != nil {
			return qp.fieldError(queryName, "invalid value: "+err.Error())
		}
		return nil
	}

	if field.Kind() == reflect.Slice {
		return qp.setSliceField(field, queryValues, queryName)
	}
	return qp.setScalar(field, queryValues[0], queryName, "")
}

func (qp *QueryParser) setScalar(field reflect.Value, raw, queryName, where string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return qp.fieldError(queryName, "invalid integer value"+where+": "+numError(err))
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return qp.fieldError(queryName, "invalid unsigned integer value"+where+": "+numError(err))
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return qp.fieldError(queryName, "invalid float value"+where+": "+numError(err))
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return qp.fieldError(queryName, "invalid boolean value"+where+": "+numError(err))
		}
		field.SetBool(b)

	default:
		return qp.fieldError(queryName, "unsupported field type: "+field.Kind().String())
	}
	return nil
}

func (qp *QueryParser) setSliceField(field reflect.Value, values []string, queryName string) error {
	var actual []string
	switch qp.arrayStrategy {
	case ArrayStrategyMultiple:
		actual = values
	case ArrayStrategyComma:
		actual = strings.Split(values[0], ",")
	case ArrayStrategyBoth:
		if len(values) == 1 && strings.Contains(values[0], ",") {
			actual = strings.Split(values[0], ",")
		} else {
			actual = values
		}
	}

	slice := reflect.MakeSlice(field.Type(), len(actual), len(actual))
	for i, raw := range actual {
		if err := qp.setScalar(slice.Index(i), strings.TrimSpace(raw), queryName, " in array"); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}

func (qp *QueryParser) fieldError(queryName, msg string) error {
	return &BindError{Type: TypeBind, Field: queryName, Location: LocationQuery, Message: msg}
}

// numError drops strconv's echo of the function name and input.
func numError(err error) string {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err.Error()
	}
	return err.Error()
}
