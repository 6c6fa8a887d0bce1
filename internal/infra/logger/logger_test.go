package logger

import (
	"testing"

	"visa_bulletin_chart/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Run("Should use JSON in production", func(t *testing.T) {
		Init(&config.AppConfig{LogLevel: "warn", Environment: "production"})
		assert.Equal(t, logrus.WarnLevel, Log.GetLevel())
		assert.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)
	})

	t.Run("Should fall back to info on a bad level", func(t *testing.T) {
		Init(&config.AppConfig{LogLevel: "loud", Environment: "development"})
		assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
		assert.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
	})

	t.Run("Should tag component entries", func(t *testing.T) {
		entry := Component("scheduler")
		assert.Equal(t, "scheduler", entry.Data["component"])
		assert.Equal(t, AppName, entry.Data["app"])
	})
}
