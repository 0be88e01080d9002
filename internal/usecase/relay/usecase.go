package relay

import (
	"context"
	"errors"
	"strings"
	"time"

	"robocon-bot/internal/application/port/input"
	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"
)

var _ input.MessageHandler = (*UseCase)(nil)

const (
	GreetingText = "Hello! I am your Telegram chatbot. How can I assist you today?"

	failureGeneric     = "Sorry, something went wrong while answering. Please try again."
	failureUnavailable = "Sorry, I can't reach my language model right now. Please try again in a moment."
	failureToolRound   = "Sorry, I couldn't look that up. Please try rephrasing your question."
)

// UseCase relays one inbound transport message through the conversation
// orchestrator and renders the reply.
type UseCase struct {
	turns   input.TurnHandler
	prompts output.PromptSource
	logger  output.LoggerPort
	qa      output.LoggerPort
}

func New(turns input.TurnHandler, prompts output.PromptSource, logger output.LoggerPort) *UseCase {
	return &UseCase{
		turns:   turns,
		prompts: prompts,
		logger:  logger,
	}
}

// WithQALog sends one record per answered question to qa, apart from the
// main log stream.
func (uc *UseCase) WithQALog(qa output.LoggerPort) *UseCase {
	uc.qa = qa
	return uc
}

func (uc *UseCase) Handle(ctx context.Context, msg entity.InboundMessage) string {
	log := uc.logger.WithFields(map[string]any{
		"userId":   msg.User.ID,
		"username": msg.User.Username,
		"name":     msg.User.FullName(),
		"chatId":   msg.ChatID,
	})

	if command, ok := parseCommand(msg.Text); ok {
		if command == "start" {
			log.Info("Received start")
			return GreetingText
		}
		log.Debug("Ignoring command", "command", command)
		return ""
	}

	start := time.Now()
	log.Info("Question received", "question", msg.Text)

	systemPrompt, err := uc.prompts.SystemPrompt()
	if err != nil {
		log.Error("System prompt unavailable", "error", err)
		return failureGeneric
	}

	result, err := uc.turns.HandleTurn(ctx, msg.Text, systemPrompt)
	if err != nil {
		log.Error("Turn failed", "question", msg.Text, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return FailureText(err)
	}

	log.Info("Question answered",
		"question", msg.Text,
		"answer", result.FinalAnswer,
		"toolCalls", result.ToolCalls,
		"roundTrips", result.RoundTrips,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if uc.qa != nil {
		uc.qa.Info("qa",
			"userId", msg.User.ID,
			"username", msg.User.Username,
			"chatId", msg.ChatID,
			"question", msg.Text,
			"answer", result.FinalAnswer,
		)
	}
	return result.FinalAnswer
}

// FailureText is the user-facing message for a failed turn.
func FailureText(err error) string {
	switch {
	case errors.Is(err, entity.ErrUpstreamUnavailable):
		return failureUnavailable
	case errors.Is(err, entity.ErrUnknownTool), errors.Is(err, entity.ErrUnexpectedSecondToolCall):
		return failureToolRound
	default:
		return failureGeneric
	}
}

// parseCommand recognises bot commands such as "/start" or "/start@robocon_bot".
func parseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	fields := strings.Fields(text[1:])
	if len(fields) == 0 {
		return "", false
	}
	command, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(command), true
}
