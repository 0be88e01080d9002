package di

import (
	"errors"
	"fmt"
	"time"

	"robocon-bot/internal/infrastructure/env"
)

const (
	TransportPolling = "polling"
	TransportWebhook = "webhook"
	TransportConsole = "console"

	BackendGroq      = "groq"
	BackendLangchain = "langchain"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	TelegramToken string
	GroqAPIKey    string
	GroqModel     string
	GroqBaseURL   string

	LLMBackend   string
	MaxTokens    int
	LLMTimeout   time.Duration
	LLMDebugHTTP bool

	SystemPromptFile string
	PromptReload     bool
	Timezone         string
	ToolConcurrency  int

	Transport         string
	UpdateConcurrency int
	TurnTimeout       time.Duration
	PollTimeout       int
	WebhookAddr       string
	WebhookURL        string
	WebhookSecret     string

	LookupBaseURL string

	LogLevel  string
	LogFormat string
	QALogFile string
}

// ConfigFromEnv reads the bot configuration from the environment.
func ConfigFromEnv(e *env.EnvService) (Config, error) {
	cfg := Config{
		TelegramToken: e.Get("TELEGRAM_BOT_TOKEN"),
		GroqModel:     e.GetWithDefault("GROQ_MODEL", "llama3-70b-8192"),
		GroqBaseURL:   e.Get("GROQ_BASE_URL"),

		LLMBackend:   e.GetWithDefault("LLM_BACKEND", BackendGroq),
		MaxTokens:    e.GetInt("LLM_MAX_TOKENS", 4096),
		LLMTimeout:   e.GetDuration("LLM_TIMEOUT", 60*time.Second),
		LLMDebugHTTP: e.GetBool("LLM_DEBUG_HTTP", false),

		SystemPromptFile: e.GetWithDefault("SYSTEM_PROMPT_FILE", "system_prompt.txt"),
		PromptReload:     e.GetBool("PROMPT_RELOAD", false),
		Timezone:         e.GetWithDefault("BOT_TIMEZONE", "Local"),
		ToolConcurrency:  e.GetInt("TOOL_CONCURRENCY", 4),

		Transport:         e.GetWithDefault("TRANSPORT", TransportPolling),
		UpdateConcurrency: e.GetInt("UPDATE_CONCURRENCY", 8),
		TurnTimeout:       e.GetDuration("TURN_TIMEOUT", 2*time.Minute),
		PollTimeout:       e.GetInt("POLL_TIMEOUT", 30),
		WebhookAddr:       e.GetWithDefault("WEBHOOK_ADDR", ":8080"),
		WebhookURL:        e.Get("WEBHOOK_URL"),
		WebhookSecret:     e.Get("WEBHOOK_SECRET"),

		LookupBaseURL: e.Get("LOOKUP_BASE_URL"),

		LogLevel:  e.GetWithDefault("LOG_LEVEL", "info"),
		LogFormat: e.GetWithDefault("LOG_FORMAT", "json"),
		QALogFile: e.Get("QA_LOG_FILE"),
	}

	apiKey, err := e.Require("GROQ_API_KEY")
	if err != nil {
		return Config{}, err
	}
	cfg.GroqAPIKey = apiKey

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Transport {
	case TransportPolling, TransportWebhook:
		if c.TelegramToken == "" {
			return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN is required for %s transport", ErrInvalidConfig, c.Transport)
		}
	case TransportConsole:
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, c.Transport)
	}

	switch c.LLMBackend {
	case BackendGroq, BackendLangchain:
	default:
		return fmt.Errorf("%w: unknown LLM backend %q", ErrInvalidConfig, c.LLMBackend)
	}

	if c.GroqAPIKey == "" {
		return fmt.Errorf("%w: GROQ_API_KEY is required", ErrInvalidConfig)
	}
	if c.GroqModel == "" {
		return fmt.Errorf("%w: GROQ_MODEL is empty", ErrInvalidConfig)
	}
	return nil
}
