package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"robocon-bot/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consoleConfig(t *testing.T) Config {
	return Config{
		GroqAPIKey:       "gsk_test",
		GroqModel:        "llama3-70b-8192",
		LLMBackend:       BackendGroq,
		Transport:        TransportConsole,
		Timezone:         "UTC",
		SystemPromptFile: filepath.Join(t.TempDir(), "missing.txt"),
		LogLevel:         "error",
	}
}

func TestNewContainer_WiresAllTools(t *testing.T) {
	c, err := NewContainer(consoleConfig(t))
	require.NoError(t, err)
	defer c.Close()

	for _, name := range entity.ToolNames {
		_, err := c.Tools.Resolve(name.String())
		assert.NoError(t, err, name)
	}

	prompt, err := c.Prompts.SystemPrompt()
	require.NoError(t, err)
	assert.Contains(t, prompt, "get_place_info")
}

func TestNewContainer_LangchainBackend(t *testing.T) {
	cfg := consoleConfig(t)
	cfg.LLMBackend = BackendLangchain

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.LLM)
}

func TestNewContainer_BadTimezone(t *testing.T) {
	cfg := consoleConfig(t)
	cfg.Timezone = "Mars/Olympus_Mons"

	_, err := NewContainer(cfg)

	assert.Error(t, err)
}

func TestNewContainer_UnreadablePromptFails(t *testing.T) {
	cfg := consoleConfig(t)
	cfg.SystemPromptFile = t.TempDir()

	_, err := NewContainer(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "system prompt")
}

func TestNewContainer_QALogReceivesAnswersOnly(t *testing.T) {
	cfg := consoleConfig(t)
	cfg.QALogFile = filepath.Join(t.TempDir(), "qa.log")

	c, err := NewContainer(cfg)
	require.NoError(t, err)

	c.Messages.Handle(context.Background(), entity.InboundMessage{Text: "/start"})
	c.Close()

	data, err := os.ReadFile(cfg.QALogFile)
	require.NoError(t, err)
	assert.Empty(t, data)
}
