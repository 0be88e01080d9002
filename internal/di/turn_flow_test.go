package di

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"robocon-bot/internal/domain/entity"
	"robocon-bot/internal/usecase/relay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolCallCompletion = `{"id":"c1","object":"chat.completion","model":"llama3-70b-8192","choices":[{"index":0,"finish_reason":"tool_calls","message":{"role":"assistant","content":"","tool_calls":[{"id":"call_1","type":"function","function":{"name":"get_place_info","arguments":"{\"place\":\"Springfield\"}"}}]}}]}`

const answerCompletion = `{"id":"c2","object":"chat.completion","model":"llama3-70b-8192","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Springfield is a town in Illinois."}}]}`

// chatRecorder plays a two-step completion script and keeps the request bodies.
type chatRecorder struct {
	mu       sync.Mutex
	requests []map[string]any
}

func (c *chatRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	c.mu.Lock()
	c.requests = append(c.requests, body)
	n := len(c.requests)
	c.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if n == 1 {
		_, _ = w.Write([]byte(toolCallCompletion))
		return
	}
	_, _ = w.Write([]byte(answerCompletion))
}

func TestTurnFlow_PlaceLookup(t *testing.T) {
	chat := &chatRecorder{}
	llmSrv := httptest.NewServer(chat)
	defer llmSrv.Close()

	wikiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/page/summary/Springfield") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"type":"standard","title":"Springfield","description":"Town in Illinois","extract":"Springfield is the capital of Illinois.","content_urls":{"desktop":{"page":"https://en.wikipedia.org/wiki/Springfield"}}}`))
	}))
	defer wikiSrv.Close()

	cfg := consoleConfig(t)
	cfg.GroqBaseURL = llmSrv.URL
	cfg.LookupBaseURL = wikiSrv.URL
	cfg.QALogFile = filepath.Join(t.TempDir(), "qa.log")

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	defer c.Close()

	reply := c.Messages.Handle(context.Background(), entity.InboundMessage{
		Text: "What's there to see in Springfield?",
		User: entity.UserIdentity{ID: 1, Username: "ada", FirstName: "Ada"},
	})

	assert.Equal(t, "Springfield is a town in Illinois.", reply)

	chat.mu.Lock()
	defer chat.mu.Unlock()
	require.Len(t, chat.requests, 2)

	first := chat.requests[0]
	assert.NotEmpty(t, first["tools"])
	assert.Equal(t, "auto", first["tool_choice"])

	second := chat.requests[1]
	assert.Empty(t, second["tools"])
	assert.Nil(t, second["tool_choice"])

	messages, ok := second["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 4)
	toolMsg := messages[3].(map[string]any)
	assert.Equal(t, "tool", toolMsg["role"])
	assert.Equal(t, "call_1", toolMsg["tool_call_id"])
	assert.Contains(t, toolMsg["content"], "Springfield is the capital of Illinois.")

	userMsg := messages[1].(map[string]any)
	assert.Contains(t, userMsg["content"], "Time at which Question is asked: ")
	assert.Contains(t, userMsg["content"], "User Prompt: What's there to see in Springfield?")

	c.Close()
	qa, err := os.ReadFile(cfg.QALogFile)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(qa), "\n"))
	assert.Contains(t, string(qa), "Springfield is a town in Illinois.")
	assert.NotContains(t, string(qa), "Executing tool")
}

func TestTurnFlow_UpstreamDown(t *testing.T) {
	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"over capacity","type":"server_error"}}`))
	}))
	defer llmSrv.Close()

	cfg := consoleConfig(t)
	cfg.GroqBaseURL = llmSrv.URL

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	defer c.Close()

	reply := c.Messages.Handle(context.Background(), entity.InboundMessage{Text: "Who is Ada Lovelace?"})

	assert.Equal(t, relay.FailureText(entity.ErrUpstreamUnavailable), reply)
}
