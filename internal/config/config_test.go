package config_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/toejough/mockable/internal/canon"
	"github.com/toejough/mockable/internal/config"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	settings, err := config.LoadFrom(viper.New())

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(settings).To(Equal(config.Default()))

	codec, err := settings.CodecValue()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(codec).To(Equal(canon.JSON))
}

func TestLoadFrom_Overrides(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	v := viper.New()
	v.Set("codec", "msgpack")
	v.Set("log_level", "Debug")

	settings, err := config.LoadFrom(v)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(settings.Codec).To(Equal("msgpack"))
	g.Expect(settings.LogLevel).To(Equal(zerolog.DebugLevel))
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Parallel()

	t.Run("codec", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		v := viper.New()
		v.Set("codec", "xml")

		_, err := config.LoadFrom(v)
		g.Expect(err).To(MatchError(canon.ErrUnknownCodec))
	})

	t.Run("log level", func(t *testing.T) {
		t.Parallel()
		g := NewWithT(t)

		v := viper.New()
		v.Set("log_level", "loud")

		_, err := config.LoadFrom(v)
		g.Expect(err).To(HaveOccurred())
		g.Expect(err.Error()).To(ContainSubstring("MOCKABLE_LOG_LEVEL"))
	})
}

// Not parallel: uses t.Setenv.
func TestLoad_Environment(t *testing.T) {
	g := NewWithT(t)

	t.Setenv("MOCKABLE_CODEC", "msgpack")
	t.Setenv("MOCKABLE_LOG_LEVEL", "warn")

	settings, err := config.Load()

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(settings.Codec).To(Equal("msgpack"))
	g.Expect(settings.LogLevel).To(Equal(zerolog.WarnLevel))
}
