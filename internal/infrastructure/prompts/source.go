package prompts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"robocon-bot/internal/application/port/output"
)

var _ output.PromptSource = (*FileSource)(nil)

type FileSourceConfig struct {
	Path string
	// Reload reads the file on every call instead of once.
	Reload bool
}

// FileSource serves the system prompt from a UTF-8 text file. File content
// is used verbatim. When the file does not exist the embedded
// DefaultSystemPrompt is rendered with the registered tools instead.
type FileSource struct {
	cfg      FileSourceConfig
	registry output.ToolRegistry
	logger   output.LoggerPort

	mu     sync.Mutex
	cached string
	loaded bool
}

func NewFileSource(cfg FileSourceConfig, registry output.ToolRegistry, logger output.LoggerPort) *FileSource {
	return &FileSource{cfg: cfg, registry: registry, logger: logger}
}

// SystemPrompt returns the prompt. Only successful loads are cached.
func (s *FileSource) SystemPrompt() (string, error) {
	if s.cfg.Reload {
		return s.load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cached, nil
	}

	prompt, err := s.load()
	if err != nil {
		return "", err
	}
	s.cached, s.loaded = prompt, true
	return prompt, nil
}

func (s *FileSource) load() (string, error) {
	if s.cfg.Path != "" {
		data, err := os.ReadFile(s.cfg.Path)
		switch {
		case err == nil:
			return string(data), nil
		case errors.Is(err, fs.ErrNotExist):
			s.logger.Warn("System prompt file not found, using built-in prompt", "path", s.cfg.Path)
		default:
			return "", fmt.Errorf("read system prompt: %w", err)
		}
	}

	prompt, err := GenerateSystemPrompt(DefaultSystemPrompt, s.registry)
	if err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}
	return prompt, nil
}
