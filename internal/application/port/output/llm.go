package output

import (
	"context"

	"robocon-bot/internal/domain/entity"
)

// LLMPort is the call boundary to the hosted inference endpoint.
// Implementations wrap transport failures in entity.ErrUpstreamUnavailable and
// undecodable replies in entity.ErrMalformedUpstreamResponse.
type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest with an empty Tools list permits no tool use for the call.
type ChatRequest struct {
	Messages  []entity.Message
	Tools     []entity.ToolDefinition
	MaxTokens int
}

type ResponseKind int

const (
	ResponseAnswer ResponseKind = iota
	ResponseToolCalls
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseAnswer:
		return "answer"
	case ResponseToolCalls:
		return "tool_calls"
	default:
		return "unknown"
	}
}

type ChatResponse struct {
	Kind    ResponseKind
	Message entity.Message
}

// NewChatResponse derives the response kind from the assistant message.
func NewChatResponse(msg entity.Message) *ChatResponse {
	kind := ResponseAnswer
	if len(msg.ToolCalls) > 0 {
		kind = ResponseToolCalls
	}
	return &ChatResponse{Kind: kind, Message: msg}
}

// Answer returns the answer text of a ResponseAnswer.
func (r *ChatResponse) Answer() string {
	return r.Message.Content
}

// Calls returns the tool calls of a ResponseToolCalls in upstream order.
func (r *ChatResponse) Calls() []entity.ToolCall {
	return r.Message.ToolCalls
}
