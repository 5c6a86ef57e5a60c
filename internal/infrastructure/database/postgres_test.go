package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected logger.LogLevel
	}{
		{level: "debug", expected: logger.Info},
		{level: "info", expected: logger.Warn},
		{level: "warn", expected: logger.Warn},
		{level: "error", expected: logger.Error},
		{level: "", expected: logger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, gormLogLevel(tt.level))
		})
	}
}
