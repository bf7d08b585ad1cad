package core

import "github.com/rs/zerolog"

// Option configures a mock at construction.
type Option func(*options)

// WithLogger sends the mock's activity log to logger instead of the default.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithName names the mock in logs and assertion failures.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

type options struct {
	name   string
	logger *zerolog.Logger
}

func newOptions(opts []Option) options {
	resolved := options{name: "mock"}
	for _, opt := range opts {
		opt(&resolved)
	}

	if resolved.logger == nil {
		logger := DefaultLogger()
		resolved.logger = &logger
	}

	return resolved
}
