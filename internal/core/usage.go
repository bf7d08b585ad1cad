package core

import (
	"fmt"
	"iter"
	"slices"
)

// Entry is one recorded invocation.
type Entry[C, V any] struct {
	// Note is a free-form annotation for test diagnostics. It plays no part in searches.
	Note string

	context C
	outcome Outcome[V]
	index   int
}

// Context returns the input the call was made with.
func (e *Entry[C, V]) Context() C {
	return e.context
}

// Index returns the entry's position in its ledger (0 for the first call).
func (e *Entry[C, V]) Index() int {
	return e.index
}

// Outcome returns what the loader produced.
func (e *Entry[C, V]) Outcome() Outcome[V] {
	return e.outcome
}

// String renders the entry for failure messages.
func (e *Entry[C, V]) String() string {
	return fmt.Sprintf("#%d %s -> %s", e.index, describe(e.context), e.outcome)
}

// Outcome is either the value a loader returned or the error it failed with.
type Outcome[V any] struct {
	value  V
	err    error
	failed bool
}

// Err returns the failure, or nil for a success.
func (o Outcome[V]) Err() error {
	return o.err
}

// IsSuccess reports whether the loader returned a value.
func (o Outcome[V]) IsSuccess() bool {
	return !o.failed
}

// String renders the outcome for failure messages.
func (o Outcome[V]) String() string {
	if o.failed {
		return fmt.Sprintf("error(%v)", o.err)
	}

	return describe(o.value)
}

// Value returns the loader's value, or the zero value for a failure.
func (o Outcome[V]) Value() V {
	return o.value
}

// Usage is the ordered call history of one mock.
//
// It only ever grows: entries are appended in call order, never removed,
// reordered, or deduplicated. Usage is not safe for concurrent use.
type Usage[C, V any] struct {
	history []*Entry[C, V]
}

// NewUsage creates an empty ledger.
func NewUsage[C, V any]() *Usage[C, V] {
	return &Usage[C, V]{}
}

// CallCount returns the number of recorded calls.
func (u *Usage[C, V]) CallCount() int {
	return len(u.history)
}

// CallCountWith returns the number of recorded calls whose context equals ctx.
func (u *Usage[C, V]) CallCountWith(ctx C) int {
	count := 0

	for _, entry := range u.history {
		if valuesEqual(entry.context, ctx) {
			count++
		}
	}

	return count
}

// Contexts yields the context of every entry, in call order.
func (u *Usage[C, V]) Contexts() iter.Seq[C] {
	return func(yield func(C) bool) {
		for _, entry := range u.history {
			if !yield(entry.context) {
				return
			}
		}
	}
}

// Describe returns a human-readable description of each recorded context.
func (u *Usage[C, V]) Describe() []string {
	descriptions := make([]string, len(u.history))
	for i, entry := range u.history {
		descriptions[i] = describe(entry.context)
	}

	return descriptions
}

// Errors returns the errors of failed calls, in call order.
func (u *Usage[C, V]) Errors() []error {
	var errs []error

	for _, entry := range u.history {
		if entry.outcome.failed {
			errs = append(errs, entry.outcome.err)
		}
	}

	return errs
}

// HasContext reports whether any recorded context matches expected, which may
// be a context value or a Matcher.
func (u *Usage[C, V]) HasContext(expected any) bool {
	for _, entry := range u.history {
		if ok, _ := MatchValue(entry.context, expected); ok {
			return true
		}
	}

	return false
}

// History returns the recorded entries in call order.
// The slice is a copy; the entries are shared and must not be modified.
func (u *Usage[C, V]) History() []*Entry[C, V] {
	return slices.Clone(u.history)
}

// Last returns the most recent entry.
func (u *Usage[C, V]) Last() (*Entry[C, V], bool) {
	if len(u.history) == 0 {
		return nil, false
	}

	return u.history[len(u.history)-1], true
}

// Len returns the number of recorded calls.
func (u *Usage[C, V]) Len() int {
	return len(u.history)
}

// Record appends a successful call.
func (u *Usage[C, V]) Record(ctx C, value V) {
	u.append(ctx, Outcome[V]{value: value})
}

// RecordError appends a failed call.
func (u *Usage[C, V]) RecordError(ctx C, err error) {
	u.append(ctx, Outcome[V]{err: err, failed: true})
}

// Values returns the values of successful calls, in call order.
func (u *Usage[C, V]) Values() []V {
	var values []V

	for _, entry := range u.history {
		if !entry.outcome.failed {
			values = append(values, entry.outcome.value)
		}
	}

	return values
}

// WasCalled reports whether anything has been recorded.
func (u *Usage[C, V]) WasCalled() bool {
	return len(u.history) > 0
}

// WasCalledWith reports whether some call's context equals ctx.
//
// Contexts are compared with their Equal method when they have one, and
// structurally otherwise.
func (u *Usage[C, V]) WasCalledWith(ctx C) bool {
	for _, entry := range u.history {
		if valuesEqual(entry.context, ctx) {
			return true
		}
	}

	return false
}

func (u *Usage[C, V]) append(ctx C, outcome Outcome[V]) {
	u.history = append(u.history, &Entry[C, V]{
		context: ctx,
		outcome: outcome,
		index:   len(u.history),
	})
}
