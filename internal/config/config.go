// Package config loads process-wide mockable settings from the environment.
//
// Recognized variables:
//
//	MOCKABLE_CODEC      canonical encoding for codable inputs: json (default) or msgpack
//	MOCKABLE_LOG_LEVEL  zerolog level for mock activity logs (default: disabled)
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/toejough/mockable/internal/canon"
)

// EnvPrefix is prepended to every setting name to form its environment variable.
const EnvPrefix = "MOCKABLE"

// Settings holds the process-wide defaults used by new mocks.
type Settings struct {
	Codec    string        `mapstructure:"codec"`
	LogLevel zerolog.Level `mapstructure:"log_level"`
}

// CodecValue resolves the configured codec.
func (s Settings) CodecValue() (canon.Codec, error) {
	return canon.Lookup(s.Codec)
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Codec:    canon.JSON.Name(),
		LogLevel: zerolog.Disabled,
	}
}

// Load reads settings from MOCKABLE_* environment variables.
func Load() (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return LoadFrom(v)
}

// LoadFrom reads settings from an already-configured viper instance, filling
// in defaults for anything unset.
func LoadFrom(v *viper.Viper) (Settings, error) {
	defaults := Default()
	v.SetDefault("codec", defaults.Codec)
	v.SetDefault("log_level", defaults.LogLevel.String())

	var settings Settings

	err := v.Unmarshal(&settings, viper.DecodeHook(levelHookFunc()))
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse mockable settings: %w", err)
	}

	if _, err := settings.CodecValue(); err != nil {
		return Settings{}, fmt.Errorf("invalid %s_CODEC: %w", EnvPrefix, err)
	}

	return settings, nil
}

// levelHookFunc decodes level names ("debug", "info", "disabled", ...) into zerolog.Level.
func levelHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeFor[zerolog.Level]() {
			return data, nil
		}

		//nolint:forcetypeassert // kind checked above
		name := strings.ToLower(strings.TrimSpace(data.(string)))
		if name == "" {
			return zerolog.Disabled, nil
		}

		level, err := zerolog.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("invalid %s_LOG_LEVEL: %w", EnvPrefix, err)
		}

		return level, nil
	}
}
