package di

import (
	"context"
	"fmt"
	"time"

	"robocon-bot/internal/adapter/tool"
	"robocon-bot/internal/application/port/input"
	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/application/service"
	"robocon-bot/internal/infrastructure/llm/groq"
	"robocon-bot/internal/infrastructure/llm/langchain"
	"robocon-bot/internal/infrastructure/logger"
	"robocon-bot/internal/infrastructure/lookup/wikipedia"
	"robocon-bot/internal/infrastructure/prompts"
	"robocon-bot/internal/infrastructure/telegram"
	"robocon-bot/internal/infrastructure/userinteraction"
	"robocon-bot/internal/usecase/conversation"
	"robocon-bot/internal/usecase/relay"
)

type Container struct {
	Config   Config
	Logger   output.LoggerPort
	LLM      output.LLMPort
	Tools    output.ToolRegistry
	Prompts  output.PromptSource
	Turns    input.TurnHandler
	Messages input.MessageHandler

	qaLog    output.LoggerPort
	console  *userinteraction.ConsoleUserInteraction
	telegram *telegram.Client
}

func NewContainer(cfg Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.NewLoggerAdapter(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, OutputPaths: []string{"stderr"}})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}

	llm, err := newLLM(cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}

	lookupCfg := wikipedia.DefaultConfig()
	if cfg.LookupBaseURL != "" {
		lookupCfg.BaseURL = cfg.LookupBaseURL
	}
	lookup := wikipedia.NewClient(lookupCfg)

	tools, err := service.NewToolRegistry(tool.All(lookup, log)...)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	promptSource := prompts.NewFileSource(prompts.FileSourceConfig{
		Path:   cfg.SystemPromptFile,
		Reload: cfg.PromptReload,
	}, tools, log)

	if _, err := promptSource.SystemPrompt(); err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to load system prompt: %w", err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  log,
		LLM:     llm,
		Tools:   tools,
		Prompts: promptSource,
	}

	turnCfg := conversation.DefaultConfig()
	turnCfg.MaxTokens = cfg.MaxTokens
	turnCfg.ToolConcurrency = cfg.ToolConcurrency
	turnCfg.Location = location
	if cfg.Transport == TransportConsole {
		c.console = userinteraction.NewConsoleUserInteraction()
		turnCfg.Observer = c.console
	} else {
		c.telegram = telegram.NewClient(telegram.APIBase(cfg.TelegramToken), time.Duration(cfg.PollTimeout+10)*time.Second)
	}

	c.Turns = conversation.New(llm, tools, log, turnCfg)
	messages := relay.New(c.Turns, promptSource, log)
	if cfg.QALogFile != "" {
		qa, err := logger.NewLoggerAdapter(logger.Config{Level: "info", Format: "json", OutputPaths: []string{cfg.QALogFile}})
		if err != nil {
			log.Close()
			return nil, fmt.Errorf("failed to open QA log: %w", err)
		}
		c.qaLog = qa
		messages.WithQALog(qa)
	}
	c.Messages = messages

	return c, nil
}

func newLLM(cfg Config, log output.LoggerPort) (output.LLMPort, error) {
	switch cfg.LLMBackend {
	case BackendLangchain:
		llm, err := langchain.NewLangchainAdapter(langchain.Config{
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
			BaseURL: cfg.GroqBaseURL,
			Timeout: cfg.LLMTimeout,
			Logger:  log,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create langchain backend: %w", err)
		}
		return llm, nil
	default:
		llmCfg := groq.DefaultConfig(cfg.GroqAPIKey, cfg.GroqModel)
		if cfg.GroqBaseURL != "" {
			llmCfg.BaseURL = cfg.GroqBaseURL
		}
		if cfg.LLMTimeout > 0 {
			llmCfg.Timeout = cfg.LLMTimeout
		}
		llmCfg.DebugHTTP = cfg.LLMDebugHTTP
		llmCfg.Logger = log
		return groq.NewGroqAdapter(llmCfg), nil
	}
}

// Run serves the configured transport until ctx is cancelled.
func (c *Container) Run(ctx context.Context) error {
	c.Logger.Info("Bot started",
		"transport", c.Config.Transport,
		"backend", c.Config.LLMBackend,
		"model", c.Config.GroqModel,
		"tools", len(c.Tools.All()),
	)

	switch c.Config.Transport {
	case TransportConsole:
		return c.console.Run(ctx, c.Messages)
	case TransportWebhook:
		dispatcher := telegram.NewDispatcher(c.Messages, c.telegram, c.Logger).WithTurnTimeout(c.Config.TurnTimeout)
		return telegram.NewWebhookServer(c.telegram, dispatcher, c.Logger, telegram.WebhookConfig{
			Addr:        c.Config.WebhookAddr,
			PublicURL:   c.Config.WebhookURL,
			Secret:      c.Config.WebhookSecret,
			Concurrency: c.Config.UpdateConcurrency,
			LogJSON:     c.Config.LogFormat != "console",
		}).Run(ctx)
	default:
		dispatcher := telegram.NewDispatcher(c.Messages, c.telegram, c.Logger).WithTurnTimeout(c.Config.TurnTimeout)
		return telegram.NewPoller(c.telegram, dispatcher, c.Logger, telegram.PollerConfig{
			Timeout:     c.Config.PollTimeout,
			Concurrency: c.Config.UpdateConcurrency,
		}).Run(ctx)
	}
}

func (c *Container) Close() {
	if c.qaLog != nil {
		c.qaLog.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
