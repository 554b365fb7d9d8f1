package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trivora/trivora/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		SessionSecret: "s",
		SessionDays:   30,
		Media:         config.Media{Backend: "host"},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	missingSecret := validConfig()
	missingSecret.SessionSecret = ""
	assert.Error(t, missingSecret.Validate())

	zeroDays := validConfig()
	zeroDays.SessionDays = 0
	assert.Error(t, zeroDays.Validate())

	tooLong := validConfig()
	tooLong.SessionDays = 3651
	assert.Error(t, tooLong.Validate())

	maxDays := validConfig()
	maxDays.SessionDays = 3650
	assert.NoError(t, maxDays.Validate())

	badBackend := validConfig()
	badBackend.Media.Backend = "ftp"
	assert.Error(t, badBackend.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://db-url"
	assert.Equal(t, "postgres://db-url", cfg.PostgresDSN())

	// POSTGRES_URL wins over DATABASE_URL.
	cfg.PostgresURL = "postgres://pg-url"
	assert.Equal(t, "postgres://pg-url", cfg.PostgresDSN())
}
