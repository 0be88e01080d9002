package di

import (
	"testing"
	"time"

	"robocon-bot/internal/infrastructure/env"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := ConfigFromEnv(env.NewEnvService())

	require.NoError(t, err)
	assert.Equal(t, "llama3-70b-8192", cfg.GroqModel)
	assert.Equal(t, BackendGroq, cfg.LLMBackend)
	assert.Equal(t, TransportPolling, cfg.Transport)
	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "system_prompt.txt", cfg.SystemPromptFile)
	assert.Equal(t, 30, cfg.PollTimeout)
}

func TestConfigFromEnv_MissingAPIKey(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("GROQ_API_KEY", "")

	_, err := ConfigFromEnv(env.NewEnvService())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		TelegramToken: "123:abc",
		GroqAPIKey:    "gsk_test",
		GroqModel:     "llama3-70b-8192",
		LLMBackend:    BackendGroq,
		Transport:     TransportPolling,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown transport", func(c *Config) { c.Transport = "carrier-pigeon" }},
		{"unknown backend", func(c *Config) { c.LLMBackend = "local" }},
		{"missing token for webhook", func(c *Config) { c.Transport = TransportWebhook; c.TelegramToken = "" }},
		{"missing api key", func(c *Config) { c.GroqAPIKey = "" }},
		{"empty model", func(c *Config) { c.GroqModel = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_ConsoleNeedsNoToken(t *testing.T) {
	cfg := Config{GroqAPIKey: "k", GroqModel: "m", LLMBackend: BackendGroq, Transport: TransportConsole}
	assert.NoError(t, cfg.Validate())
}
