package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	cfg := &Config{}
	cfg.Database.Postgres.Database = "vocational"
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validTestConfig()

	assert.Equal(t, "vocational-workers", cfg.App.Name)
	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "localhost", cfg.Database.Postgres.Host)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Database.Redis.Address)
	assert.Equal(t, "groq", cfg.APIs.Provider)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.APIs.Groq.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.APIs.Groq.Model)
	assert.Equal(t, "gemini-2.5-flash", cfg.APIs.Gemini.Model)
	assert.Equal(t, 5, cfg.Engine.TopN)
	assert.True(t, cfg.Engine.UseAI)
	assert.Equal(t, 600, cfg.Engine.OptionCacheTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestApplyDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.APIs.Provider = "gemini"
	cfg.Engine.TopN = 3
	applyDefaults(cfg)

	assert.Equal(t, "gemini", cfg.APIs.Provider)
	assert.Equal(t, 3, cfg.Engine.TopN)
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfig_MissingDatabase(t *testing.T) {
	cfg := validTestConfig()
	cfg.Database.Postgres.Database = ""
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfig_InvalidProvider(t *testing.T) {
	cfg := validTestConfig()
	cfg.APIs.Provider = "openai"
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfig_InvalidTopN(t *testing.T) {
	cfg := validTestConfig()
	cfg.Engine.TopN = 0
	assert.Error(t, validateConfig(cfg))
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		Database: "vocational",
		User:     "app",
		Password: "secret",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=app password=secret dbname=vocational sslmode=require",
		cfg.GetDSN(),
	)
}
