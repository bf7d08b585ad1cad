package canon

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
)

// Reduce converts v into a tree made only of nil, bool, int64, uint64,
// float64, string, []any, and map[string]any.
//
// Nil pointers, nil slices, nil maps, and nil interfaces all reduce to nil.
func Reduce(v any) (any, error) {
	return reduce(reflect.ValueOf(v), 0)
}

// unexported constants.
const (
	maxDepth = 64
)

// unexported variables.
var (
	//nolint:gochecknoglobals // reflect type lookups are fixed at init
	canonicalerType = reflect.TypeFor[Canonicaler]()
	//nolint:gochecknoglobals // reflect type lookups are fixed at init
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

func reduce(value reflect.Value, depth int) (any, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d (cyclic value?)", ErrEncoding, maxDepth)
	}

	if !value.IsValid() {
		return nil, nil
	}

	if isNilable(value.Kind()) && value.IsNil() {
		return nil, nil
	}

	if receiver, ok := adapter(value, canonicalerType); ok {
		//nolint:forcetypeassert // checked by adapter above
		canonical, err := receiver.Interface().(Canonicaler).Canonical()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEncoding, value.Type(), err)
		}

		return reduce(reflect.ValueOf(canonical), depth+1)
	}

	if receiver, ok := adapter(value, textMarshalerType); ok {
		//nolint:forcetypeassert // checked by adapter above
		text, err := receiver.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEncoding, value.Type(), err)
		}

		return string(text), nil
	}

	switch value.Kind() {
	case reflect.Bool:
		return value.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := value.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: value contains NaN or Infinity", ErrEncoding)
		}

		return f, nil
	case reflect.String:
		return value.String(), nil
	case reflect.Slice, reflect.Array:
		return reduceSequence(value, depth)
	case reflect.Map:
		return reduceMapping(value, depth)
	case reflect.Pointer, reflect.Interface:
		return reduce(value.Elem(), depth+1)
	default:
		return nil, fmt.Errorf(
			"%w: unsupported type %s (implement canon.Canonicaler to describe it)",
			ErrEncoding,
			value.Type(),
		)
	}
}

func reduceMapping(value reflect.Value, depth int) (any, error) {
	if value.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: map key type %s is not a string", ErrEncoding, value.Type().Key())
	}

	mapping := make(map[string]any, value.Len())

	iter := value.MapRange()
	for iter.Next() {
		element, err := reduce(iter.Value(), depth+1)
		if err != nil {
			return nil, err
		}

		mapping[iter.Key().String()] = element
	}

	return mapping, nil
}

func reduceSequence(value reflect.Value, depth int) (any, error) {
	sequence := make([]any, value.Len())

	for i := range value.Len() {
		element, err := reduce(value.Index(i), depth+1)
		if err != nil {
			return nil, err
		}

		sequence[i] = element
	}

	return sequence, nil
}

// adapter returns value, or a pointer to a copy of it, as a receiver that
// implements iface. Pointer-receiver methods are found for values passed by
// value, matching what Restore accepts.
func adapter(value reflect.Value, iface reflect.Type) (reflect.Value, bool) {
	if value.Type().Implements(iface) {
		return value, true
	}

	if value.Kind() == reflect.Pointer || !reflect.PointerTo(value.Type()).Implements(iface) {
		return reflect.Value{}, false
	}

	if value.CanAddr() {
		return value.Addr(), true
	}

	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)

	return ptr, true
}

func isNilable(kind reflect.Kind) bool {
	switch kind { //nolint:exhaustive // only the nilable kinds matter
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
