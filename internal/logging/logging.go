// Package logging builds the zerolog logger mocks report their activity to.
package logging

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/toejough/mockable/internal/config"
)

// New returns a console logger writing to w at the configured level, or a
// no-op logger when logging is disabled.
func New(settings config.Settings, w io.Writer) zerolog.Logger {
	if settings.LogLevel == zerolog.Disabled || w == nil {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(settings.LogLevel).
		With().
		Timestamp().
		Str("component", "mockable").
		Logger()
}
