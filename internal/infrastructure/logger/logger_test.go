package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.LogConfig
		enabled       zapcore.Level
		disabledBelow bool
	}{
		{name: "json info", cfg: config.LogConfig{Level: "info", Format: "json"}, enabled: zapcore.InfoLevel, disabledBelow: true},
		{name: "console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}, enabled: zapcore.DebugLevel, disabledBelow: false},
		{name: "invalid level defaults to info", cfg: config.LogConfig{Level: "invalid", Format: "json"}, enabled: zapcore.InfoLevel, disabledBelow: true},
		{name: "error level", cfg: config.LogConfig{Level: "error", Format: "json"}, enabled: zapcore.ErrorLevel, disabledBelow: true},
		{name: "warn console", cfg: config.LogConfig{Level: "warn", Format: "console"}, enabled: zapcore.WarnLevel, disabledBelow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(&tt.cfg)

			assert.NoError(t, err)
			assert.NotNil(t, logger)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.disabledBelow {
				assert.False(t, logger.Core().Enabled(tt.enabled-1))
			}
		})
	}
}
