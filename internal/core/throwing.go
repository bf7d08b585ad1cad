package core

// ThrowingMock intercepts a function of one context C that returns a V or fails.
//
// It behaves like Mock, except that a failing loader's error is recorded and
// then returned to the caller unchanged. Panics from the loader are not
// recovered and leave no entry.
type ThrowingMock[C, V any] struct {
	*recorder[C, V]

	defaultLoader func(C) (V, error)
	currentLoader func(C) (V, error)
}

// NewThrowingMock creates a mock whose default loader is def. It panics if def is nil.
func NewThrowingMock[C, V any](def func(C) (V, error), opts ...Option) *ThrowingMock[C, V] {
	if def == nil {
		panic("mockable: NewThrowingMock requires a default loader")
	}

	return &ThrowingMock[C, V]{
		recorder:      newRecorder[C, V](opts),
		defaultLoader: def,
		currentLoader: def,
	}
}

// Default returns the loader the mock was created with.
func (m *ThrowingMock[C, V]) Default() func(C) (V, error) {
	return m.defaultLoader
}

// Errors returns the errors of failed calls, in call order.
func (m *ThrowingMock[C, V]) Errors() []error {
	return m.usage.Errors()
}

// Fails overrides the loader with one that always fails with err.
func (m *ThrowingMock[C, V]) Fails(err error) {
	m.Override(func(C) (V, error) {
		var zero V
		return zero, err
	})
}

// Invoke runs the current loader with ctx and records the call. If the
// loader fails, the failure is recorded and the same error is returned with
// the zero V.
func (m *ThrowingMock[C, V]) Invoke(ctx C) (V, error) {
	value, err := m.currentLoader(ctx)
	if err != nil {
		m.usage.RecordError(ctx, err)
		m.logCall(ctx, err)

		var zero V

		return zero, err
	}

	m.usage.Record(ctx, value)
	m.logCall(ctx, nil)

	return value, nil
}

// Override replaces the current loader. Overriding with nil restores the default.
func (m *ThrowingMock[C, V]) Override(loader func(C) (V, error)) {
	if loader == nil {
		m.Reset()
		return
	}

	m.currentLoader = loader
	m.overridden = true
	m.logger.Debug().Str("mock", m.name).Msg("loader overridden")
}

// Reset restores the default loader. The call history is kept.
func (m *ThrowingMock[C, V]) Reset() {
	m.currentLoader = m.defaultLoader
	m.overridden = false
	m.logger.Debug().Str("mock", m.name).Msg("loader reset")
}

// Returns overrides the loader with one that always succeeds with value.
func (m *ThrowingMock[C, V]) Returns(value V) {
	m.Override(func(C) (V, error) { return value, nil })
}
