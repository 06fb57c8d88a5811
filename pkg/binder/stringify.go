package binder

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Stringify converts a record value into the string assigned to a control.
// nil and nil pointers become the empty string, booleans render as "true"/"false", and floats
// use the shortest decimal form without an exponent ("1.5", "3", "0.0001").
// Types outside the primitive set fall back to fmt.Sprint.
func Stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.FormatInt(int64(typed), 10)
	case int8:
		return strconv.FormatInt(int64(typed), 10)
	case int16:
		return strconv.FormatInt(int64(typed), 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint:
		return strconv.FormatUint(uint64(typed), 10)
	case uint8:
		return strconv.FormatUint(uint64(typed), 10)
	case uint16:
		return strconv.FormatUint(uint64(typed), 10)
	case uint32:
		return strconv.FormatUint(uint64(typed), 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float32:
		return formatFloat(float64(typed), 32)
	case float64:
		return formatFloat(typed, 64)
	case json.Number:
		return typed.String()
	case []byte:
		return string(typed)
	case fmt.Stringer:
		if isNilPointer(typed) {
			return ""
		}
		return typed.String()
	default:
		if isNilPointer(typed) {
			return ""
		}
		return fmt.Sprint(typed)
	}
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func formatFloat(value float64, bitSize int) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(value, 'f', -1, bitSize)
}
