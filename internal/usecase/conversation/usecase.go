package conversation

import (
	"context"
	"fmt"
	"time"

	"robocon-bot/internal/application/port/input"
	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.TurnHandler = (*UseCase)(nil)

type Config struct {
	MaxTokens       int
	ToolConcurrency int
	Location        *time.Location
	Now             func() time.Time
	Observer        output.TurnObserver
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:       4096,
		ToolConcurrency: 4,
		Location:        time.Local,
		Now:             time.Now,
	}
}

type UseCase struct {
	llm      output.LLMPort
	tools    output.ToolRegistry
	logger   output.LoggerPort
	observer output.TurnObserver
	cfg      Config
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	cfg Config,
) *UseCase {
	def := DefaultConfig()
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.ToolConcurrency <= 0 {
		cfg.ToolConcurrency = def.ToolConcurrency
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}

	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &UseCase{
		llm:      llm,
		tools:    tools,
		logger:   logger,
		observer: observer,
		cfg:      cfg,
	}
}

func (uc *UseCase) HandleTurn(ctx context.Context, userText, systemPrompt string) (*entity.TurnResult, error) {
	turn := entity.UserTurn{
		Text:    userText,
		AskedAt: uc.cfg.Now().In(uc.cfg.Location),
	}
	log := uc.logger.WithField("turn", uuid.NewString())

	messages := Compose(systemPrompt, turn)
	log.Debug("Prompt composed", "user", messages[1].Content)

	first, err := uc.llm.Chat(ctx, output.ChatRequest{
		Messages:  messages,
		Tools:     uc.tools.Definitions(),
		MaxTokens: uc.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}

	if first.Kind == output.ResponseAnswer {
		log.Info("Turn answered directly")
		return &entity.TurnResult{
			FinalAnswer: first.Answer(),
			RoundTrips:  1,
		}, nil
	}

	log.Info("Model requested tools", "calls", len(first.Calls()))
	result, err := uc.resolve(ctx, log, first, messages)
	if err != nil {
		log.Error("Tool resolution failed", "error", err)
		return nil, err
	}

	log.Info("Turn answered with tools", "toolCalls", result.ToolCalls)
	return result, nil
}

type nopObserver struct{}

func (nopObserver) ShowToolStart(context.Context, string, string)        {}
func (nopObserver) ShowToolResult(context.Context, string, string, bool) {}
