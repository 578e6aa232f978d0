package validatex

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// ValidationFunc defines a function that validates a value
type ValidationFunc func(value any, param string) bool

// builtinValidationFuncs is a map of built-in validation functions
var builtinValidationFuncs = map[string]ValidationFunc{
	"required": validateRequired,
	"email":    validateEmail,
	"url":      validateURL,
	"min":      validateMin,
	"max":      validateMax,
	"oneof":    validateOneOf,
	"regex":    validateRegex,
}

// customValidationFuncs is a map of user-registered validation functions
var customValidationFuncs = map[string]ValidationFunc{}

// RegisterValidationFunc registers a custom validation function
func RegisterValidationFunc(name string, fn ValidationFunc) {
	customValidationFuncs[name] = fn
}

// getValidationFunc returns a validation function by name
func getValidationFunc(name string) (ValidationFunc, bool) {
	if fn, ok := customValidationFuncs[name]; ok {
		return fn, true
	}
	if fn, ok := builtinValidationFuncs[name]; ok {
		return fn, true
	}
	return nil, false
}

// validateRequired validates that a value is not empty
func validateRequired(value any, _ string) bool {
	return !isZero(value)
}

// validateEmail validates that a value is a valid email address
func validateEmail(value any, _ string) bool {
	if str, ok := value.(string); ok {
		_, err := mail.ParseAddress(str)
		return err == nil
	}
	return false
}

// validateURL validates that a value is an absolute URL
func validateURL(value any, _ string) bool {
	if str, ok := value.(string); ok {
		u, err := url.Parse(str)
		return err == nil && u.IsAbs() && u.Host != ""
	}
	return false
}

// validateMin validates a minimum length or numeric value
func validateMin(value any, param string) bool {
	min, err := strconv.Atoi(param)
	if err != nil {
		return false
	}
	return compareSize(value, func(n int) bool { return n >= min },
		func(f float64) bool { return f >= float64(min) })
}

// validateMax validates a maximum length or numeric value
func validateMax(value any, param string) bool {
	max, err := strconv.Atoi(param)
	if err != nil {
		return false
	}
	return compareSize(value, func(n int) bool { return n <= max },
		func(f float64) bool { return f <= float64(max) })
}

// compareSize applies a comparison to string/collection lengths or numbers
func compareSize(value any, intCmp func(int) bool, floatCmp func(float64) bool) bool {
	switch v := value.(type) {
	case string:
		return intCmp(len(v))
	case int:
		return intCmp(v)
	case int64:
		return intCmp(int(v))
	case float32:
		return floatCmp(float64(v))
	case float64:
		return floatCmp(v)
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map || rv.Kind() == reflect.Array {
			return intCmp(rv.Len())
		}
		return false
	}
}

// validateOneOf validates that a value is one of a space-separated list
func validateOneOf(value any, param string) bool {
	allowed := strings.Fields(param)
	if len(allowed) == 0 {
		return false
	}

	strValue := fmt.Sprintf("%v", value)
	for _, v := range allowed {
		if v == strValue {
			return true
		}
	}
	return false
}

// validateRegex validates that a value matches a regular expression
func validateRegex(value any, param string) bool {
	if str, ok := value.(string); ok {
		re, err := regexp.Compile(param)
		if err != nil {
			return false
		}
		return re.MatchString(str)
	}
	return false
}
