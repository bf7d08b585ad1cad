package core

import (
	"fmt"
	"reflect"
)

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses valuesEqual for comparison.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	if valuesEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %s, got %s", describe(expected), describe(actual))
}

// describe renders a value for diagnostics: Stringers use String, nil is
// "nil", and pointers show what they point at.
func describe(value any) string {
	if value == nil {
		return "nil"
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "nil"
	}

	if stringer, ok := value.(fmt.Stringer); ok {
		return stringer.String()
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "nil"
		}

		rv = rv.Elem()
	}

	return fmt.Sprintf("%v", rv.Interface())
}

// valuesEqual compares a and b with a's Equal method when it accepts b's
// type, and with reflect.DeepEqual otherwise.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return reflect.DeepEqual(a, b)
	}

	method := reflect.ValueOf(a).MethodByName("Equal")
	if method.IsValid() {
		methodType := method.Type()
		if methodType.NumIn() == 1 && methodType.NumOut() == 1 &&
			methodType.Out(0).Kind() == reflect.Bool &&
			reflect.TypeOf(b).AssignableTo(methodType.In(0)) {
			return method.Call([]reflect.Value{reflect.ValueOf(b)})[0].Bool()
		}
	}

	return reflect.DeepEqual(a, b)
}
