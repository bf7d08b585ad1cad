package core

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/toejough/mockable/internal/canon"
	"github.com/toejough/mockable/internal/config"
	"github.com/toejough/mockable/internal/logging"
)

// DefaultCodec returns the codec selected by MOCKABLE_CODEC (json unless set).
func DefaultCodec() canon.Codec {
	return loadDefaults().codec
}

// DefaultLogger returns the logger selected by MOCKABLE_LOG_LEVEL (disabled unless set).
func DefaultLogger() zerolog.Logger {
	return loadDefaults().logger
}

type processDefaults struct {
	codec  canon.Codec
	logger zerolog.Logger
}

// unexported variables.
var (
	//nolint:gochecknoglobals // settings are read from the environment once per process
	loadDefaults = sync.OnceValue(func() processDefaults {
		return resolveDefaults(config.Load, os.Stderr)
	})
)

// resolveDefaults falls back to config.Default when load fails, reporting
// the failure to warnings.
func resolveDefaults(load func() (config.Settings, error), warnings io.Writer) processDefaults {
	settings, err := load()
	if err != nil {
		warn := zerolog.New(zerolog.ConsoleWriter{Out: warnings, NoColor: true})
		warn.Warn().Err(err).Msg("mockable: ignoring invalid settings, using defaults")

		settings = config.Default()
	}

	codec, err := settings.CodecValue()
	if err != nil {
		codec = canon.JSON
	}

	return processDefaults{
		codec:  codec,
		logger: logging.New(settings, os.Stderr),
	}
}
