package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/staffing-service/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" warn "))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("chatty"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestLoggerConfig_StampsServiceFields(t *testing.T) {
	app := config.AppConfig{Name: "staffing-service", Version: "1.2.0", Env: "production"}

	cfg, err := loggerConfig(config.LoggerConfig{Level: "error", Format: "console"}, app)
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Encoding)
	assert.False(t, cfg.Development)
	assert.Equal(t, zapcore.ErrorLevel, cfg.Level.Level())
	assert.Equal(t, "staffing-service", cfg.InitialFields["service"])
	assert.Equal(t, "1.2.0", cfg.InitialFields["version"])
}

func TestLoggerConfig_Formats(t *testing.T) {
	cfg, err := loggerConfig(config.LoggerConfig{}, config.AppConfig{Env: "development"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Encoding)
	assert.True(t, cfg.Development)

	_, err = loggerConfig(config.LoggerConfig{Format: "xml"}, config.AppConfig{})
	assert.ErrorContains(t, err, "unsupported LOG_FORMAT")
}

func TestNewLogger_Builds(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "debug"}, config.AppConfig{Name: "staffing-service"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
