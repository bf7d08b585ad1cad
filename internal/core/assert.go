package core

import (
	"fmt"
	"strings"
)

// Inspector is the read-only view of a call history that assertions and
// matchers need. Usage, Mock, and ThrowingMock all implement it.
type Inspector interface {
	CallCount() int
	Describe() []string
	HasContext(expected any) bool
}

// TestReporter is the minimal interface mockable needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// AssertCallCount fails t unless src was called exactly n times.
func AssertCallCount(t TestReporter, src Inspector, n int) {
	t.Helper()

	if got := src.CallCount(); got != n {
		t.Fatalf("expected %s to be called %d time(s), got %d\n%s", nameOf(src), n, got, formatHistory(src))
	}
}

// AssertCalled fails t unless src was called at least once.
func AssertCalled(t TestReporter, src Inspector) {
	t.Helper()

	if src.CallCount() == 0 {
		t.Fatalf("expected %s to be called, but it never was", nameOf(src))
	}
}

// AssertCalledWith fails t unless some call's context matches expected
// (a context value or a Matcher). The failure lists the full history.
func AssertCalledWith(t TestReporter, src Inspector, expected any) {
	t.Helper()

	if !src.HasContext(expected) {
		t.Fatalf("search criteria was not found in %s: %s\n%s", nameOf(src), describe(expected), formatHistory(src))
	}
}

// AssertNotCalled fails t if src was called.
func AssertNotCalled(t TestReporter, src Inspector) {
	t.Helper()

	if src.CallCount() != 0 {
		t.Fatalf("expected %s not to be called\n%s", nameOf(src), formatHistory(src))
	}
}

func formatHistory(src Inspector) string {
	descriptions := src.Describe()
	if len(descriptions) == 0 {
		return "history: (no calls)"
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "history (%d calls):", len(descriptions))

	for i, description := range descriptions {
		fmt.Fprintf(&builder, "\n\t#%d %s", i, description)
	}

	return builder.String()
}

func nameOf(src Inspector) string {
	if named, ok := src.(interface{ Name() string }); ok {
		return named.Name()
	}

	return "mock"
}
