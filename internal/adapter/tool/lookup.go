package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"
)

// lookupTool answers a tool call with an encyclopedia summary of one subject
// argument. The three registered tools differ only in naming.
type lookupTool struct {
	name        entity.ToolName
	description string
	noun        string
	params      any
	subject     func(args map[string]string) (string, error)

	lookup output.LookupPort
	logger output.LoggerPort
}

func (t *lookupTool) Name() entity.ToolName { return t.name }
func (t *lookupTool) Description() string   { return t.description }
func (t *lookupTool) Parameters() any       { return t.params }

func (t *lookupTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	subject, err := t.subject(args)
	if err != nil {
		return "", err
	}

	summary, err := t.lookup.Summary(ctx, subject)
	if errors.Is(err, entity.ErrLookupNotFound) {
		t.logger.Debug("Lookup found nothing", "tool", t.name, "subject", subject)
		return fmt.Sprintf("No information found about the %s %q.", t.noun, subject), nil
	}
	if err != nil {
		return "", fmt.Errorf("%s lookup failed: %w", t.noun, err)
	}

	return formatSummary(t.noun, summary), nil
}

func formatSummary(noun string, s *entity.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", strings.ToUpper(noun[:1])+noun[1:], s.Title)
	if s.Description != "" {
		fmt.Fprintf(&b, " (%s)", s.Description)
	}
	b.WriteString("\n")
	if s.Ambiguous {
		b.WriteString("Note: the name is ambiguous, this may not be the intended subject.\n")
	}
	b.WriteString(s.Extract)
	if s.URL != "" {
		fmt.Fprintf(&b, "\nSource: %s", s.URL)
	}
	return b.String()
}
