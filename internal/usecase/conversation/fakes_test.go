package conversation

import (
	"context"
	"errors"
	"sync"

	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                          {}
func (nopLogger) Info(string, ...any)                           {}
func (nopLogger) Warn(string, ...any)                           {}
func (nopLogger) Error(string, ...any)                          {}
func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                  { return nil }

// scriptedLLM replays responses in order and records every request.
type scriptedLLM struct {
	mu        sync.Mutex
	responses []*output.ChatResponse
	errs      []error
	requests  []output.ChatRequest
}

func (s *scriptedLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := req
	copied.Messages = append([]entity.Message(nil), req.Messages...)
	s.requests = append(s.requests, copied)

	i := len(s.requests) - 1
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i >= len(s.responses) {
		return nil, errors.New("scriptedLLM: no response scripted")
	}
	return s.responses[i], nil
}

type fakeTool struct {
	name   entity.ToolName
	result string
	err    error

	mu    sync.Mutex
	calls []map[string]string
}

func (f *fakeTool) Name() entity.ToolName { return f.name }
func (f *fakeTool) Description() string   { return "fake " + f.name.String() }
func (f *fakeTool) Parameters() any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

func (f *fakeTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, args)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

type fakeRegistry struct {
	tools map[string]output.ToolPort
}

func newFakeRegistry(tools ...output.ToolPort) *fakeRegistry {
	r := &fakeRegistry{tools: map[string]output.ToolPort{}}
	for _, t := range tools {
		r.tools[t.Name().String()] = t
	}
	return r
}

func (r *fakeRegistry) Resolve(name string) (output.ToolPort, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, entity.ErrUnknownTool
	}
	return t, nil
}

func (r *fakeRegistry) All() []output.ToolPort {
	out := make([]output.ToolPort, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	return out
}

func (r *fakeRegistry) Definitions() []entity.ToolDefinition {
	out := make([]entity.ToolDefinition, 0, len(r.tools))
	for _, t := range r.All() {
		out = append(out, entity.ToolDefinition{Name: t.Name().String(), Description: t.Description(), Parameters: t.Parameters()})
	}
	return out
}

type recordingObserver struct {
	mu      sync.Mutex
	started []string
	errored []string
}

func (o *recordingObserver) ShowToolStart(ctx context.Context, toolName, arguments string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, toolName)
}

func (o *recordingObserver) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if isError {
		o.errored = append(o.errored, toolName)
	}
}

func answer(text string) *output.ChatResponse {
	return output.NewChatResponse(entity.Message{Role: entity.RoleAssistant, Content: text})
}

func toolCalls(calls ...entity.ToolCall) *output.ChatResponse {
	return output.NewChatResponse(entity.Message{Role: entity.RoleAssistant, ToolCalls: calls})
}
