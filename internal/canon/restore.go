package canon

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Restore assigns a decoded tree to target, which must be a non-nil pointer.
//
// Shapes must line up: a string is never restored into a number, and a
// fractional number is never restored into an integer. The absent value
// restores into pointers, interfaces, slices, and maps as nil, and is an
// error for every other kind.
func Restore(tree any, target any) error {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer, got %T", ErrDecoding, target)
	}

	return restore(tree, ptr.Elem())
}

// unexported variables.
var (
	//nolint:gochecknoglobals // reflect type lookups are fixed at init
	restorerType = reflect.TypeFor[Restorer]()
	//nolint:gochecknoglobals // reflect type lookups are fixed at init
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func restore(tree any, target reflect.Value) error {
	if reflect.PointerTo(target.Type()).Implements(restorerType) {
		//nolint:forcetypeassert // checked by Implements above
		err := target.Addr().Interface().(Restorer).FromCanonical(plain(tree))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDecoding, target.Type(), err)
		}

		return nil
	}

	if tree == nil {
		if !isNilable(target.Kind()) {
			return fmt.Errorf("%w: absent value cannot be stored in %s", ErrDecoding, target.Type())
		}

		target.SetZero()

		return nil
	}

	if text, ok := tree.(string); ok && reflect.PointerTo(target.Type()).Implements(textUnmarshalerType) {
		//nolint:forcetypeassert // checked by Implements above
		err := target.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDecoding, target.Type(), err)
		}

		return nil
	}

	switch target.Kind() {
	case reflect.Bool:
		b, ok := tree.(bool)
		if !ok {
			return mismatch(tree, target)
		}

		target.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := asInt(tree)
		if !ok || target.OverflowInt(n) {
			return mismatch(tree, target)
		}

		target.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := asUint(tree)
		if !ok || target.OverflowUint(n) {
			return mismatch(tree, target)
		}

		target.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, ok := asFloat(tree)
		if !ok {
			return mismatch(tree, target)
		}

		target.SetFloat(f)
	case reflect.String:
		s, ok := tree.(string)
		if !ok {
			return mismatch(tree, target)
		}

		target.SetString(s)
	case reflect.Slice:
		return restoreSlice(tree, target)
	case reflect.Array:
		return restoreArray(tree, target)
	case reflect.Map:
		return restoreMap(tree, target)
	case reflect.Pointer:
		elem := reflect.New(target.Type().Elem())

		err := restore(tree, elem.Elem())
		if err != nil {
			return err
		}

		target.Set(elem)
	case reflect.Interface:
		if target.NumMethod() != 0 {
			return fmt.Errorf("%w: cannot restore into non-empty interface %s", ErrDecoding, target.Type())
		}

		target.Set(reflect.ValueOf(plain(tree)))
	default:
		return fmt.Errorf(
			"%w: unsupported type %s (implement canon.Restorer to decode it)",
			ErrDecoding,
			target.Type(),
		)
	}

	return nil
}

func restoreArray(tree any, target reflect.Value) error {
	sequence, ok := tree.([]any)
	if !ok || len(sequence) != target.Len() {
		return mismatch(tree, target)
	}

	for i, element := range sequence {
		err := restore(element, target.Index(i))
		if err != nil {
			return err
		}
	}

	return nil
}

func restoreMap(tree any, target reflect.Value) error {
	if target.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map key type %s is not a string", ErrDecoding, target.Type().Key())
	}

	mapping, ok := asMapping(tree)
	if !ok {
		return mismatch(tree, target)
	}

	result := reflect.MakeMapWithSize(target.Type(), len(mapping))

	for key, element := range mapping {
		value := reflect.New(target.Type().Elem()).Elem()

		err := restore(element, value)
		if err != nil {
			return err
		}

		result.SetMapIndex(reflect.ValueOf(key).Convert(target.Type().Key()), value)
	}

	target.Set(result)

	return nil
}

func restoreSlice(tree any, target reflect.Value) error {
	sequence, ok := tree.([]any)
	if !ok {
		return mismatch(tree, target)
	}

	result := reflect.MakeSlice(target.Type(), len(sequence), len(sequence))

	for i, element := range sequence {
		err := restore(element, result.Index(i))
		if err != nil {
			return err
		}
	}

	target.Set(result)

	return nil
}

// asFloat accepts any numeric tree node.
func asFloat(tree any) (float64, bool) {
	switch n := tree.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}

	if i, ok := asInt(tree); ok {
		return float64(i), true
	}

	if u, ok := asUint(tree); ok {
		return float64(u), true
	}

	return 0, false
}

// asInt accepts integral numeric tree nodes that fit in an int64.
func asInt(tree any) (int64, bool) {
	switch n := tree.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return i, true
		}

		f, err := n.Float64()
		if err != nil {
			return 0, false
		}

		return floatToInt(f)
	case int64:
		return n, true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}

		return int64(n), true
	case float64:
		return floatToInt(n)
	case float32:
		return floatToInt(float64(n))
	default:
		return 0, false
	}
}

func asMapping(tree any) (map[string]any, bool) {
	switch m := tree.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		mapping := make(map[string]any, len(m))

		for key, value := range m {
			s, ok := key.(string)
			if !ok {
				return nil, false
			}

			mapping[s] = value
		}

		return mapping, true
	default:
		return nil, false
	}
}

// asUint accepts integral, non-negative numeric tree nodes.
func asUint(tree any) (uint64, bool) {
	if n, ok := tree.(json.Number); ok {
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return u, true
		}
	}

	if n, ok := tree.(uint64); ok {
		return n, true
	}

	if n, ok := tree.(uint); ok {
		return uint64(n), true
	}

	i, ok := asInt(tree)
	if !ok || i < 0 {
		return 0, false
	}

	return uint64(i), true
}

func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

func mismatch(tree any, target reflect.Value) error {
	return fmt.Errorf("%w: cannot store %s in %s", ErrDecoding, shapeName(tree), target.Type())
}

// plain converts codec-specific tree nodes into the shapes Reduce produces,
// with integral numbers as int64 and the rest as float64.
func plain(tree any) any {
	switch node := tree.(type) {
	case []any:
		out := make([]any, len(node))
		for i, element := range node {
			out[i] = plain(element)
		}

		return out
	case map[string]any, map[any]any:
		mapping, _ := asMapping(node)
		out := make(map[string]any, len(mapping))

		for key, element := range mapping {
			out[key] = plain(element)
		}

		return out
	case nil, bool, string:
		return node
	}

	if i, ok := asInt(tree); ok {
		return i
	}

	if u, ok := asUint(tree); ok {
		return u
	}

	if f, ok := asFloat(tree); ok {
		return f
	}

	return tree
}

func shapeName(tree any) string {
	switch tree.(type) {
	case nil:
		return "absent value"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "sequence"
	case map[string]any, map[any]any:
		return "mapping"
	}

	if _, ok := asFloat(tree); ok {
		return "number"
	}

	return fmt.Sprintf("%T", tree)
}
