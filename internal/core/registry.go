package core

import (
	"sync"
)

// Resetter is anything that can restore its default behavior.
type Resetter interface {
	Reset()
}

// ResetAll resets every mock tracked for t, in the order they were tracked.
func ResetAll(t TestReporter) {
	registryMu.Lock()
	mocks := append([]Resetter(nil), registry[t]...)
	registryMu.Unlock()

	for _, mock := range mocks {
		mock.Reset()
	}
}

// ResetOnCleanup tracks mocks for t and resets them when t finishes.
// Multiple calls with the same TestReporter accumulate.
//
// If the TestReporter supports Cleanup (like *testing.T), the mocks are reset
// and forgotten automatically when the test completes. Otherwise call
// ResetAll yourself.
func ResetOnCleanup(t TestReporter, mocks ...Resetter) {
	registryMu.Lock()
	_, tracked := registry[t]
	registry[t] = append(registry[t], mocks...)
	registryMu.Unlock()

	if tracked {
		return
	}

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			ResetAll(t)

			registryMu.Lock()
			delete(registry, t)
			registryMu.Unlock()
		})
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for per-test cleanup
	registry = make(map[TestReporter][]Resetter)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
