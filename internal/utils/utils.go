package utils

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedValue is returned for values that have no form encoding.
var ErrUnsupportedValue = errors.New("value has no form encoding")

// FormatValue converts a scalar parameter value to its form wire format.
// Nested structures and non-finite floats are rejected rather than coerced.
func FormatValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.FormatInt(int64(x), 10), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return FloatToWire(float64(x), 32)
	case float64:
		return FloatToWire(x, 64)
	case decimal.Decimal:
		return x.String(), nil
	case uuid.UUID:
		return x.String(), nil
	case fmt.Stringer:
		return x.String(), nil
	}

	return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

// FloatToWire formats x with the shortest representation that round-trips.
func FloatToWire(x float64, bitSize int) (string, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "", fmt.Errorf("%w: invalid float value %v", ErrUnsupportedValue, x)
	}

	formatted := strconv.FormatFloat(x, 'f', -1, bitSize)
	if formatted == "-0" {
		formatted = "0"
	}

	return formatted, nil
}

// FormEncode encodes params as application/x-www-form-urlencoded with keys
// in sorted order. Slices and arrays of scalars repeat their key.
func FormEncode(params map[string]any) (string, error) {
	values := make(url.Values, len(params))

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := params[k]

		rv := reflect.ValueOf(v)
		if v != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && !isScalarArray(v) {
			for i := 0; i < rv.Len(); i++ {
				s, err := FormatValue(rv.Index(i).Interface())
				if err != nil {
					return "", fmt.Errorf("param %q[%d]: %w", k, i, err)
				}
				values.Add(k, s)
			}
			continue
		}

		s, err := FormatValue(v)
		if err != nil {
			return "", fmt.Errorf("param %q: %w", k, err)
		}
		values.Set(k, s)
	}

	return values.Encode(), nil
}

// isScalarArray reports array types that format as a single value.
func isScalarArray(v any) bool {
	_, ok := v.(uuid.UUID)
	return ok
}
