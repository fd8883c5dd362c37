package cache

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrInvalidField is returned when a strict key segment is not a primitive value.
var ErrInvalidField = errors.New("cache: key field must be a bool, number or string")

// StrictKeySerializer produces injective keys from primitive values: two
// argument lists map to the same key only when they have the same length and
// equal elements of the same type. Each segment is "<type>=<quoted value>", so
// a separator embedded in a string cannot fake an extra segment.
type StrictKeySerializer struct{}

// NewStrictKeySerializer returns a serializer for primitive tuples.
func NewStrictKeySerializer() *StrictKeySerializer {
	return &StrictKeySerializer{}
}

// SerializeKey implements KeySerializer. Non primitive values are rendered
// with their type name only; use SerializeFields to reject them instead.
func (s *StrictKeySerializer) SerializeKey(namespace string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, namespace)
	for _, arg := range args {
		seg, err := segment(arg)
		if err != nil {
			seg = fmt.Sprintf("invalid=%T", arg)
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, KeySeparator)
}

// SerializeFields builds the key for fields, failing on the first non primitive.
func (s *StrictKeySerializer) SerializeFields(namespace string, fields ...any) (string, error) {
	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, namespace)
	for i, f := range fields {
		seg, err := segment(f)
		if err != nil {
			return "", fmt.Errorf("field %d (%T): %w", i, f, err)
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, KeySeparator), nil
}

func segment(v any) (string, error) {
	if v == nil {
		return "", ErrInvalidField
	}

	rv := reflect.ValueOf(v)
	var raw string
	switch rv.Kind() {
	case reflect.Bool:
		raw = strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		raw = strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		raw = strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		raw = strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		raw = strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.String:
		raw = rv.String()
	default:
		return "", ErrInvalidField
	}

	return rv.Type().String() + "=" + strconv.Quote(raw), nil
}
