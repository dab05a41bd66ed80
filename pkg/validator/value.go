package validator

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// isBlank reports whether v counts as missing for the required family:
// nil, a whitespace-only string, or an empty collection.
func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// isEmptyString reports whether v is a string with no visible content.
func isEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// toFloat converts numbers and numeric strings to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && strings.TrimSpace(n) != ""
	}
	return 0, false
}

// isNumber reports whether v is a Go numeric type (not a numeric string).
func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	}
	return false
}

// collectionLen returns the length of slices, arrays and maps.
func collectionLen(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}

// sizeKind names how a value is measured, matching the translation key suffix.
type sizeKind string

const (
	sizeString  sizeKind = "string"
	sizeNumeric sizeKind = "numeric"
	sizeArray   sizeKind = "array"
)

// sizeOf measures v: numbers by value, strings by rune count (or by value
// when the field carries a numeric rule), collections by length.
func sizeOf(v any, numeric bool) (float64, sizeKind, bool) {
	if isNumber(v) {
		f, ok := toFloat(v)
		return f, sizeNumeric, ok
	}
	if s, ok := v.(string); ok {
		if numeric {
			if f, ok := toFloat(s); ok {
				return f, sizeNumeric, true
			}
		}
		return float64(utf8.RuneCountInString(s)), sizeString, true
	}
	if n, ok := collectionLen(v); ok {
		return float64(n), sizeArray, true
	}
	return 0, "", false
}

// toText renders scalars for comparison against token params.
func toText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

// formatNumber renders a float without trailing zeros.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// lookup finds path in data. A literal key wins; otherwise dots descend
// into nested maps and slices ("address.city", "items.0.sku").
func lookup(data map[string]any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	if v, ok := data[path]; ok {
		return v, true
	}
	if !strings.Contains(path, ".") {
		return nil, false
	}

	var current any = data
	for part := range strings.SplitSeq(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[any]any:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}
	return current, true
}
