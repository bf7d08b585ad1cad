// Package match provides matchers for mockable call histories and arguments.
// The call-history matchers are gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    "github.com/toejough/mockable/match"
//	)
//
//	g.Expect(fm.Exists).To(match.HaveBeenCalledWith("/etc/hosts"))
//	g.Expect(fm.Exists.Usage()).To(match.HaveBeenCalledWith(match.Satisfy(func(p string) error { ... })))
package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

// Inspected is the read-only view of a call history these matchers need.
// Mocks and their Usage ledgers implement it.
type Inspected interface {
	CallCount() int
	Describe() []string
	HasContext(expected any) bool
}

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// BeAny is a matcher that matches any value.
// Useful when you don't care about a particular context.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// HaveBeenCalled succeeds when the mock was invoked at least once.
func HaveBeenCalled() types.GomegaMatcher {
	return &calledMatcher{}
}

// HaveBeenCalledTimes succeeds when the mock was invoked exactly n times.
func HaveBeenCalledTimes(n int) types.GomegaMatcher {
	return &calledTimesMatcher{expected: n}
}

// HaveBeenCalledWith succeeds when some invocation's context matches
// expected, which may be a context value or a matcher.
func HaveBeenCalledWith(expected any) types.GomegaMatcher {
	return &calledWithMatcher{expected: expected}
}

// Satisfy returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	g.Expect(mock).To(match.HaveBeenCalledWith(match.Satisfy(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	})))
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// unexported variables.
var (
	errNotInspected = errors.New("expected a mock or usage ledger")
	errTypeMismatch = errors.New("type mismatch")
)

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

type calledMatcher struct{}

func (m *calledMatcher) FailureMessage(any) string {
	return "Expected mock to have been called, but it never was"
}

func (m *calledMatcher) Match(actual any) (bool, error) {
	inspected, err := inspect(actual)
	if err != nil {
		return false, err
	}

	return inspected.CallCount() > 0, nil
}

func (m *calledMatcher) NegatedFailureMessage(actual any) string {
	return "Expected mock not to have been called\n" + history(actual)
}

type calledTimesMatcher struct {
	expected int
}

func (m *calledTimesMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected mock to have been called %d time(s)\n%s", m.expected, history(actual))
}

func (m *calledTimesMatcher) Match(actual any) (bool, error) {
	inspected, err := inspect(actual)
	if err != nil {
		return false, err
	}

	return inspected.CallCount() == m.expected, nil
}

func (m *calledTimesMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected mock not to have been called %d time(s)\n%s", m.expected, history(actual))
}

type calledWithMatcher struct {
	expected any
}

func (m *calledWithMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected mock to have been called with\n%s\n%s",
		format.Object(m.expected, 1), history(actual))
}

func (m *calledWithMatcher) Match(actual any) (bool, error) {
	inspected, err := inspect(actual)
	if err != nil {
		return false, err
	}

	return inspected.HasContext(m.expected), nil
}

func (m *calledWithMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected mock not to have been called with\n%s\n%s",
		format.Object(m.expected, 1), history(actual))
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)

	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

func history(actual any) string {
	inspected, err := inspect(actual)
	if err != nil {
		return err.Error()
	}

	descriptions := inspected.Describe()
	if len(descriptions) == 0 {
		return "history: (no calls)"
	}

	return fmt.Sprintf("history (%d calls):\n\t%s", len(descriptions), strings.Join(descriptions, "\n\t"))
}

func inspect(actual any) (Inspected, error) {
	inspected, ok := actual.(Inspected)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", errNotInspected, actual)
	}

	return inspected, nil
}
