package logging_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/toejough/mockable/internal/config"
	"github.com/toejough/mockable/internal/logging"
)

func TestNew_DisabledIsSilent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer

	logger := logging.New(config.Default(), &buf)
	logger.Error().Msg("dropped")

	g.Expect(buf.String()).To(BeEmpty())
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var buf bytes.Buffer

	settings := config.Default()
	settings.LogLevel = zerolog.InfoLevel

	logger := logging.New(settings, &buf)
	logger.Debug().Msg("too quiet")
	logger.Info().Str("mock", "exists").Msg("invoked")

	g.Expect(buf.String()).NotTo(ContainSubstring("too quiet"))
	g.Expect(buf.String()).To(ContainSubstring("invoked"))
	g.Expect(buf.String()).To(ContainSubstring("mock=exists"))
	g.Expect(buf.String()).To(ContainSubstring("component=mockable"))
}
