// Package validatex provides tag-driven struct validation.
//
// Fields opt in with a `validatex` tag listing comma-separated rules:
//
//	type ProviderConfig struct {
//		AuthorizationURL string `validatex:"required,url"`
//		ClientID         string `validatex:"required"`
//		Scope            string `validatex:"max=200"`
//	}
//
//	if err := validatex.Validate(cfg); err != nil {
//		// err is an errx validation error listing the failed fields
//	}
package validatex

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/arest/oauthkit/errx"
)

var validateErrors = errx.NewRegistry("VALIDATEX")

// Error codes
var (
	ErrInvalidStruct = validateErrors.Register("INVALID_STRUCT", errx.TypeValidation, http.StatusBadRequest, "Validation failed")
	ErrNotStruct     = validateErrors.Register("NOT_STRUCT", errx.TypeBadRequest, http.StatusBadRequest, "Value must be a struct")
)

// Validatable can replace tag-driven validation with custom logic.
type Validatable interface {
	Validate() error
}

// Validate checks every tagged field of a struct against its rules. It
// returns nil when all rules pass, or a validation error whose details map
// field names to the first failed rule.
func Validate(obj any) error {
	if v, ok := obj.(Validatable); ok {
		return v.Validate()
	}

	fields, err := structFields(obj)
	if err != nil {
		return validateErrors.NewWithCause(ErrNotStruct, err)
	}

	failures := make(map[string]any)
	for name, info := range fields {
		for _, rule := range info.Rules {
			fn, ok := getValidationFunc(rule.Name)
			if !ok {
				failures[name] = fmt.Sprintf("unknown rule %q", rule.Name)
				break
			}

			// Optional fields skip non-required rules when unset
			if rule.Name != "required" && isZero(info.Value) {
				continue
			}

			if !fn(info.Value, rule.Param) {
				failures[name] = rule.Name
				break
			}
		}
	}

	if len(failures) > 0 {
		return validateErrors.New(ErrInvalidStruct).WithDetails(failures)
	}
	return nil
}

// structFields collects the tagged fields of a struct, descending into
// nested structs with a dotted prefix.
func structFields(obj any) (map[string]fieldInfo, error) {
	val := reflect.ValueOf(obj)

	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("value must be a struct, got %s", val.Kind())
	}

	typ := val.Type()
	fields := make(map[string]fieldInfo)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldValue := val.Field(i)

		tag := field.Tag.Get("validatex")
		if tag != "" && tag != "-" {
			fields[field.Name] = fieldInfo{
				Name:  field.Name,
				Value: fieldValue.Interface(),
				Rules: parseTag(tag),
			}
		}

		// Recurse into nested structs
		actual := fieldValue
		if actual.Kind() == reflect.Ptr && !actual.IsNil() {
			actual = actual.Elem()
		}
		if actual.Kind() == reflect.Struct && actual.Type() != reflect.TypeOf(struct{}{}) {
			if _, ok := actual.Interface().(Validatable); ok {
				continue
			}
			nested, err := structFields(actual.Interface())
			if err != nil {
				return nil, err
			}
			for k, v := range nested {
				fields[field.Name+"."+k] = v
			}
		}
	}

	return fields, nil
}

type fieldInfo struct {
	Name  string
	Value any
	Rules []ruleInfo
}

type ruleInfo struct {
	Name  string
	Param string
}

// parseTag parses a validatex tag string into validation rules
func parseTag(tag string) []ruleInfo {
	parts := strings.Split(tag, ",")
	rules := make([]ruleInfo, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		nameParam := strings.SplitN(part, "=", 2)
		rule := ruleInfo{Name: nameParam[0]}
		if len(nameParam) > 1 {
			rule.Param = nameParam[1]
		}
		rules = append(rules, rule)
	}

	return rules
}

// isZero checks if a value is the zero value for its type
func isZero(value any) bool {
	if value == nil {
		return true
	}

	val := reflect.ValueOf(value)

	if val.Kind() == reflect.Ptr {
		return val.IsNil()
	}

	switch val.Kind() {
	case reflect.String:
		return val.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return val.Float() == 0
	case reflect.Bool:
		return !val.Bool()
	case reflect.Slice, reflect.Map, reflect.Array:
		return val.Len() == 0
	default:
		return reflect.DeepEqual(val.Interface(), reflect.Zero(val.Type()).Interface())
	}
}
