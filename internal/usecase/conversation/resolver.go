package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

const (
	// maxObservationLen caps a tool result in bytes before it goes upstream.
	maxObservationLen = 20000
	truncatedMarker   = "\n... (truncated)"
)

type pendingCall struct {
	call entity.ToolCall
	tool output.ToolPort
	args map[string]string
}

// resolve runs the single tool resolution round of a turn. messages must
// already hold the system and user messages.
func (uc *UseCase) resolve(ctx context.Context, log output.LoggerPort, first *output.ChatResponse, messages []entity.Message) (*entity.TurnResult, error) {
	messages = append(messages, first.Message)

	pending, err := uc.prepareCalls(first.Calls())
	if err != nil {
		return nil, err
	}

	results := uc.runTools(ctx, log, pending)
	for _, res := range results {
		messages = append(messages, res.Message())
	}

	log.Debug("Requesting final answer", "messages", len(messages))

	second, err := uc.llm.Chat(ctx, output.ChatRequest{
		Messages:  messages,
		MaxTokens: uc.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("final answer request failed: %w", err)
	}

	if second.Kind == output.ResponseToolCalls {
		log.Warn("Model requested tools again", "calls", len(second.Calls()))
		return nil, fmt.Errorf("%w: %d calls", entity.ErrUnexpectedSecondToolCall, len(second.Calls()))
	}

	return &entity.TurnResult{
		FinalAnswer: second.Answer(),
		ToolCalls:   len(pending),
		RoundTrips:  2,
	}, nil
}

// prepareCalls resolves and decodes every call before any tool runs, so an
// unknown tool aborts the turn without side effects.
func (uc *UseCase) prepareCalls(calls []entity.ToolCall) ([]pendingCall, error) {
	pending := make([]pendingCall, 0, len(calls))
	for _, tc := range calls {
		tool, err := uc.tools.Resolve(tc.Name)
		if err != nil {
			return nil, err
		}
		args, err := DecodeArguments(tc.Arguments)
		if err != nil {
			return nil, fmt.Errorf("%w: arguments of call %s (%s): %w", entity.ErrMalformedUpstreamResponse, tc.ID, tc.Name, err)
		}
		pending = append(pending, pendingCall{call: tc, tool: tool, args: args})
	}
	return pending, nil
}

// runTools executes the calls concurrently and returns results in call order.
func (uc *UseCase) runTools(ctx context.Context, log output.LoggerPort, pending []pendingCall) []entity.ToolResult {
	results := make([]entity.ToolResult, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.ToolConcurrency)
	for i, p := range pending {
		g.Go(func() error {
			results[i] = uc.executeTool(gctx, log, p)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (uc *UseCase) executeTool(ctx context.Context, log output.LoggerPort, p pendingCall) entity.ToolResult {
	name := p.tool.Name()
	uc.observer.ShowToolStart(ctx, name.String(), p.call.Arguments)
	log.Info("Executing tool", "name", name, "id", p.call.ID, "args", p.call.Arguments)

	result, err := p.tool.Execute(ctx, p.args)
	if err != nil {
		log.Error("Tool execution failed", "name", name, "error", err)
		result = "Error: " + err.Error()
		uc.observer.ShowToolResult(ctx, name.String(), result, true)
		return entity.ToolResult{CallID: p.call.ID, Name: name, Content: result}
	}

	result = truncateObservation(result)

	log.Debug("Tool completed", "name", name, "resultLen", len(result))
	uc.observer.ShowToolResult(ctx, name.String(), result, false)
	return entity.ToolResult{CallID: p.call.ID, Name: name, Content: result}
}

// DecodeArguments parses the upstream argument encoding into string values.
// Non-string values are kept as their JSON text. Empty input means no arguments.
func DecodeArguments(raw string) (map[string]string, error) {
	if raw == "" {
		return map[string]string{}, nil
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	args := make(map[string]string, len(decoded))
	for key, value := range decoded {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			args[key] = s
			continue
		}
		args[key] = string(value)
	}
	return args, nil
}

// truncateObservation cuts s to maxObservationLen bytes without splitting a rune.
func truncateObservation(s string) string {
	if len(s) <= maxObservationLen {
		return s
	}
	cut := maxObservationLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncatedMarker
}
