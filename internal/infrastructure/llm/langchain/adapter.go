package langchain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

var _ output.LLMPort = (*LangchainAdapter)(nil)

// LangchainAdapter talks to the same OpenAI-compatible endpoint through
// langchaingo's model abstraction.
type LangchainAdapter struct {
	model  llms.Model
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Logger  output.LoggerPort
}

func NewLangchainAdapter(cfg Config) (*LangchainAdapter, error) {
	opts := []lcopenai.Option{
		lcopenai.WithToken(cfg.APIKey),
		lcopenai.WithModel(cfg.Model),
		lcopenai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, lcopenai.WithBaseURL(cfg.BaseURL))
	}

	model, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create langchain model: %w", err)
	}

	return NewWithModel(model, cfg.Logger), nil
}

func NewWithModel(model llms.Model, logger output.LoggerPort) *LangchainAdapter {
	return &LangchainAdapter{model: model, logger: logger}
}

func (a *LangchainAdapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	var opts []llms.CallOption
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	if len(req.Tools) > 0 {
		opts = append(opts, llms.WithTools(convertTools(req.Tools)), llms.WithToolChoice("auto"))
	}

	resp, err := a.model.GenerateContent(ctx, convertMessages(req.Messages), opts...)
	if err != nil {
		if errors.Is(err, lcopenai.ErrEmptyResponse) {
			return nil, fmt.Errorf("%w: %w", entity.ErrMalformedUpstreamResponse, err)
		}
		return nil, fmt.Errorf("%w: %w", entity.ErrUpstreamUnavailable, err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, fmt.Errorf("%w: no choices in response", entity.ErrMalformedUpstreamResponse)
	}

	msg, err := convertChoice(resp.Choices[0])
	if err != nil {
		return nil, err
	}

	if a.logger != nil {
		a.logger.Debug("Langchain completion received",
			"stopReason", resp.Choices[0].StopReason,
			"toolCalls", len(msg.ToolCalls),
		)
	}

	return output.NewChatResponse(msg), nil
}

func convertMessages(messages []entity.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case entity.RoleSystem:
			result = append(result, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case entity.RoleUser:
			result = append(result, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case entity.RoleAssistant:
			mc := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if msg.Content != "" {
				mc.Parts = append(mc.Parts, llms.TextContent{Text: msg.Content})
			}
			for _, tc := range msg.ToolCalls {
				mc.Parts = append(mc.Parts, llms.ToolCall{
					ID:   tc.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			result = append(result, mc)
		case entity.RoleTool:
			result = append(result, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: msg.ToolCallID,
					Name:       msg.Name,
					Content:    msg.Content,
				}},
			})
		}
	}
	return result
}

func convertTools(tools []entity.ToolDefinition) []llms.Tool {
	result := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		result = append(result, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return result
}

func convertChoice(choice *llms.ContentChoice) (entity.Message, error) {
	result := entity.Message{
		Role:    entity.RoleAssistant,
		Content: choice.Content,
	}
	for _, tc := range choice.ToolCalls {
		if tc.ID == "" || tc.FunctionCall == nil || tc.FunctionCall.Name == "" {
			return entity.Message{}, fmt.Errorf("%w: tool call without id or name", entity.ErrMalformedUpstreamResponse)
		}
		result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}
	return result, nil
}
