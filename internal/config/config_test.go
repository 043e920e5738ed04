package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("TRASH_SWEEP_INTERVAL", "6h")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "not-a-duration")
	t.Setenv("SMTP_PORT", "oops")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 6*time.Hour, cfg.Trash.SweepInterval)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "production"}}
	assert.True(t, cfg.IsProduction())

	cfg.App.Environment = "development"
	assert.False(t, cfg.IsProduction())
}
