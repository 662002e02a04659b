package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// JSONFieldTypeError tách field bị sai kiểu trong JSON body, vd "rating": "5".
// ok = false khi err không phải lỗi sai kiểu (body hỏng, rỗng...).
func JSONFieldTypeError(err error) (field, message string, ok bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return "", "", false
	}
	return typeErr.Field, fmt.Sprintf("%s must be %s", typeErr.Field, describeType(typeErr.Type)), true
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Pointer:
		return describeType(t.Elem())
	default:
		return "a valid " + t.Kind().String()
	}
}
