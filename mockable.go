// Package mockable provides call interception and verification for unit tests.
// A holder wraps a function from Context to Value, records every invocation in
// a usage ledger, and lets a test swap the function for a stub and later ask
// what was called, with what, and how often.
//
// This is the public API entry point. Implementation lives in internal/core.
package mockable

import (
	"github.com/rs/zerolog"
	"github.com/toejough/mockable/internal/canon"
	"github.com/toejough/mockable/internal/core"
)

// Exported variables.
var (
	// ErrDecoding reports encoded bytes that do not fit the requested type.
	ErrDecoding = canon.ErrDecoding
	// ErrEncoding reports a value with no canonical encoding.
	ErrEncoding = canon.ErrEncoding
)

// Canonicaler lets a domain type express itself in primitive shapes.
type Canonicaler = canon.Canonicaler

// CodableInput is one argument captured in canonical encoded form.
type CodableInput = core.CodableInput

// Codec is a canonical value-to-bytes serialization.
type Codec = canon.Codec

// Entry is one recorded invocation.
type Entry[C, V any] = core.Entry[C, V]

// Inspector is the read-only view of a call history used by the assertions.
type Inspector = core.Inspector

// Matcher defines the interface for flexible value matching.
type Matcher = core.Matcher

// Mock is a non-throwing value-loader holder.
type Mock[C, V any] = core.Mock[C, V]

// Option configures a holder at construction.
type Option = core.Option

// Outcome is the success value or error of one invocation.
type Outcome[V any] = core.Outcome[V]

// Resetter is anything that can be restored to its default loader.
type Resetter = core.Resetter

// Restorer lets a domain type rebuild itself from primitive shapes.
type Restorer = canon.Restorer

// TestReporter is the minimal interface mockable needs from test frameworks.
type TestReporter = core.TestReporter

// ThrowingMock is a value-loader holder whose loader may fail.
type ThrowingMock[C, V any] = core.ThrowingMock[C, V]

// Tuple is an ordered, immutable argument list used as a call context.
type Tuple[E any] = core.Tuple[E]

// Usage is the ordered ledger of invocations for one holder.
type Usage[C, V any] = core.Usage[C, V]

// AssertCallCount fails t unless src was invoked exactly n times.
func AssertCallCount(t TestReporter, src Inspector, n int) {
	t.Helper()
	core.AssertCallCount(t, src, n)
}

// AssertCalled fails t unless src was invoked at least once.
func AssertCalled(t TestReporter, src Inspector) {
	t.Helper()
	core.AssertCalled(t, src)
}

// AssertCalledWith fails t unless some invocation of src matches expected.
func AssertCalledWith(t TestReporter, src Inspector, expected any) {
	t.Helper()
	core.AssertCalledWith(t, src, expected)
}

// AssertNotCalled fails t if src was ever invoked.
func AssertNotCalled(t TestReporter, src Inspector) {
	t.Helper()
	core.AssertNotCalled(t, src)
}

// Decode decodes a captured argument as T.
func Decode[T any](in CodableInput) (T, error) {
	return core.Decode[T](in)
}

// DefaultCodec returns the codec selected by MOCKABLE_CODEC, JSON by default.
func DefaultCodec() Codec {
	return core.DefaultCodec()
}

// InputDescriptions returns the per-argument descriptions of every call.
func InputDescriptions[V any](usage *Usage[Tuple[CodableInput], V]) [][]string {
	return core.InputDescriptions(usage)
}

// JSONCodec returns the canonical JSON codec (RFC 8785).
func JSONCodec() Codec {
	return canon.JSON
}

// MatchValue checks if actual matches expected.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// MsgpackCodec returns the sorted-key msgpack codec.
func MsgpackCodec() Codec {
	return canon.Msgpack
}

// NewCodableInput encodes value with the default codec.
func NewCodableInput(value any) (CodableInput, error) {
	return core.NewCodableInput(value)
}

// NewCodableInputWith encodes value with codec.
func NewCodableInputWith(codec Codec, value any) (CodableInput, error) {
	return core.NewCodableInputWith(codec, value)
}

// NewCodableTuple encodes heterogeneous values into a tuple of CodableInputs.
func NewCodableTuple(values ...any) (Tuple[CodableInput], error) {
	return core.NewCodableTuple(values...)
}

// NewMock creates a holder whose default loader is def.
func NewMock[C, V any](def func(C) V, opts ...Option) *Mock[C, V] {
	return core.NewMock(def, opts...)
}

// NewThrowingMock creates a throwing holder whose default loader is def.
func NewThrowingMock[C, V any](def func(C) (V, error), opts ...Option) *ThrowingMock[C, V] {
	return core.NewThrowingMock(def, opts...)
}

// NewTuple creates a tuple of uniformly typed elements.
func NewTuple[E any](inputs ...E) Tuple[E] {
	return core.NewTuple(inputs...)
}

// NewUsage creates an empty ledger.
func NewUsage[C, V any]() *Usage[C, V] {
	return core.NewUsage[C, V]()
}

// ResetAll resets every mock registered for t.
func ResetAll(t TestReporter) {
	core.ResetAll(t)
}

// ResetOnCleanup resets mocks when t finishes.
func ResetOnCleanup(t TestReporter, mocks ...Resetter) {
	core.ResetOnCleanup(t, mocks...)
}

// WasCalledMatching reports whether any recorded context matches expected,
// which may be a value or a matcher.
func WasCalledMatching[C, V any](usage *Usage[C, V], expected any) bool {
	return core.WasCalledMatching(usage, expected)
}

// WasCalledWithInput reports whether input was any one of the arguments of any call.
func WasCalledWithInput[E, V any](usage *Usage[Tuple[E], V], input E) bool {
	return core.WasCalledWithInput(usage, input)
}

// WasCalledWithValue encodes value and reports whether it was any one of the
// encoded arguments of any call.
func WasCalledWithValue[V any](usage *Usage[Tuple[CodableInput], V], value any) (bool, error) {
	return core.WasCalledWithValue(usage, value)
}

// WithLogger sets the holder's logger.
func WithLogger(logger zerolog.Logger) Option {
	return core.WithLogger(logger)
}

// WithName sets the name used in logs and assertion messages.
func WithName(name string) Option {
	return core.WithName(name)
}
