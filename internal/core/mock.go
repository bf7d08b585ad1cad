package core

import (
	"github.com/rs/zerolog"
)

// Mock intercepts a function of one context C returning V.
//
// It holds the default loader given at construction (usually the live
// implementation) and the current loader, which a test may override. Every
// Invoke runs the current loader and records the call.
//
// A Mock belongs to the test that created it. It does no locking, so it must
// not be invoked from concurrent goroutines without outside synchronization.
type Mock[C, V any] struct {
	*recorder[C, V]

	defaultLoader func(C) V
	currentLoader func(C) V
}

// NewMock creates a mock whose default loader is def. It panics if def is nil.
func NewMock[C, V any](def func(C) V, opts ...Option) *Mock[C, V] {
	if def == nil {
		panic("mockable: NewMock requires a default loader")
	}

	return &Mock[C, V]{
		recorder:      newRecorder[C, V](opts),
		defaultLoader: def,
		currentLoader: def,
	}
}

// Default returns the loader the mock was created with.
func (m *Mock[C, V]) Default() func(C) V {
	return m.defaultLoader
}

// Invoke runs the current loader with ctx, records the call, and returns the
// loader's value.
func (m *Mock[C, V]) Invoke(ctx C) V {
	value := m.currentLoader(ctx)
	m.usage.Record(ctx, value)
	m.logCall(ctx, nil)

	return value
}

// Override replaces the current loader. Overriding with nil restores the default.
func (m *Mock[C, V]) Override(loader func(C) V) {
	if loader == nil {
		m.Reset()
		return
	}

	m.currentLoader = loader
	m.overridden = true
	m.logger.Debug().Str("mock", m.name).Msg("loader overridden")
}

// Reset restores the default loader. The call history is kept.
func (m *Mock[C, V]) Reset() {
	m.currentLoader = m.defaultLoader
	m.overridden = false
	m.logger.Debug().Str("mock", m.name).Msg("loader reset")
}

// Returns overrides the loader with one that always returns value.
func (m *Mock[C, V]) Returns(value V) {
	m.Override(func(C) V { return value })
}

// recorder is the state both mock kinds share: identity, logging, and the ledger.
type recorder[C, V any] struct {
	name       string
	logger     zerolog.Logger
	usage      *Usage[C, V]
	overridden bool
}

func newRecorder[C, V any](opts []Option) *recorder[C, V] {
	resolved := newOptions(opts)

	return &recorder[C, V]{
		name:   resolved.name,
		logger: *resolved.logger,
		usage:  NewUsage[C, V](),
	}
}

// CallCount returns the number of recorded calls.
func (r *recorder[C, V]) CallCount() int {
	return r.usage.CallCount()
}

// CallCountWith returns the number of recorded calls whose context equals ctx.
func (r *recorder[C, V]) CallCountWith(ctx C) int {
	return r.usage.CallCountWith(ctx)
}

// Describe returns a human-readable description of each recorded context.
func (r *recorder[C, V]) Describe() []string {
	return r.usage.Describe()
}

// HasContext reports whether any recorded context matches expected.
func (r *recorder[C, V]) HasContext(expected any) bool {
	return r.usage.HasContext(expected)
}

// History returns the recorded entries in call order.
func (r *recorder[C, V]) History() []*Entry[C, V] {
	return r.usage.History()
}

// IsOverridden reports whether a test loader is active.
func (r *recorder[C, V]) IsOverridden() bool {
	return r.overridden
}

// Name returns the mock's name.
func (r *recorder[C, V]) Name() string {
	return r.name
}

// Usage returns the mock's call ledger.
func (r *recorder[C, V]) Usage() *Usage[C, V] {
	return r.usage
}

// WasCalled reports whether the mock has been invoked.
func (r *recorder[C, V]) WasCalled() bool {
	return r.usage.WasCalled()
}

// WasCalledWith reports whether the mock has been invoked with ctx.
func (r *recorder[C, V]) WasCalledWith(ctx C) bool {
	return r.usage.WasCalledWith(ctx)
}

func (r *recorder[C, V]) logCall(ctx C, err error) {
	event := r.logger.Debug()
	if !event.Enabled() {
		return
	}

	event.
		Err(err).
		Str("mock", r.name).
		Int("call", r.usage.Len()-1).
		Str("context", describe(ctx)).
		Msg("invoked")
}
