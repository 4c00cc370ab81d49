package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/logbook/pkg/logging"
)

func TestSetDefault(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logging.Default().Info().Msg("from default")
	log.Info().Msg("from global")
	logging.Default().Debug().Msg("below level")

	assert.Contains(t, buf.String(), "from default")
	assert.Contains(t, buf.String(), "from global")
	assert.NotContains(t, buf.String(), "below level")
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Warn().Str("root", "./missing").Msg("Log directory not found")
	tl.Debug().Int("line", 3).Msg("Skipping malformed line")

	assert.Len(t, tl.Lines(), 2)
	assert.True(t, tl.ContainsAll("./missing", "Skipping malformed line"))
	assert.Equal(t, 1, tl.CountContaining(`"level":"warn"`))

	tl.Clear()
	assert.Empty(t, tl.Lines())
}
