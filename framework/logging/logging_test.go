package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/logging"
)

func TestNew_LevelFromConfig(t *testing.T) {
	logger, err := logging.New(config.LogConfig{Level: "warn", Format: "console"}, "local")
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"", "console", "json", "ecs"} {
		t.Run(format, func(t *testing.T) {
			logger, err := logging.New(config.LogConfig{Level: "info", Format: format}, "production")
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(config.LogConfig{Level: "loud"}, "local")
	assert.ErrorContains(t, err, `log level "loud"`)
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := logging.New(config.LogConfig{Level: "info", Format: "xml"}, "local")
	assert.ErrorContains(t, err, `log format "xml"`)
}
