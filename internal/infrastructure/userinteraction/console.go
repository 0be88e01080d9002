package userinteraction

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"robocon-bot/internal/application/port/input"
	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.TurnObserver = (*ConsoleUserInteraction)(nil)

// ConsoleUserInteraction is a line-oriented chat on a terminal. It doubles
// as the turn observer so tool activity shows up inline.
type ConsoleUserInteraction struct {
	in  io.Reader
	out io.Writer
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return NewConsoleUserInteractionWith(os.Stdin, os.Stdout)
}

func NewConsoleUserInteractionWith(in io.Reader, out io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{in: in, out: out}
}

// Run reads one message per line and prints the replies until EOF or ctx
// is cancelled.
func (u *ConsoleUserInteraction) Run(ctx context.Context, handler input.MessageHandler) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(u.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	user := consoleUser()
	color.New(color.FgCyan, color.Bold).Fprintln(u.out, "Type a message, Ctrl+D to quit.")

	for {
		fmt.Fprint(u.out, "\n> ")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("failed to read user input: %w", err)
			}
			return nil
		case line := <-lines:
			reply := handler.Handle(ctx, entity.InboundMessage{
				Text: strings.TrimSpace(line),
				User: user,
			})
			if reply == "" {
				continue
			}
			color.New(color.FgGreen).Fprintf(u.out, "\n%s\n", reply)
		}
	}
}

func (u *ConsoleUserInteraction) ShowToolStart(ctx context.Context, toolName, arguments string) {
	icon, name := getToolDisplay(toolName)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(u.out, "\n%s %s\n", icon, name)

	summary := formatToolArguments(arguments)
	if summary != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(u.out, "   %s\n", summary)
	}
}

func (u *ConsoleUserInteraction) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(u.out, "❌ Error: ")

		dim := color.New(color.Faint)
		dim.Fprintln(u.out, truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(u.out, "✓ %s\n", formatToolResult(result))
}

func consoleUser() entity.UserIdentity {
	name := os.Getenv("USER")
	if name == "" {
		name = "console"
	}
	return entity.UserIdentity{Username: name, FirstName: name}
}

func getToolDisplay(toolName string) (string, string) {
	displays := map[entity.ToolName][2]string{
		entity.ToolPersonDetails: {"👤", "Person lookup"},
		entity.ToolPlaceInfo:     {"📍", "Place lookup"},
		entity.ToolTeamInfo:      {"🏟️", "Team lookup"},
	}

	if display, ok := displays[entity.ToolName(toolName)]; ok {
		return display[0], display[1]
	}
	return "🔧", toolName
}

// formatToolArguments renders {"a":"x","b":"y"} as a=x, b=y.
func formatToolArguments(arguments string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(arguments), &args); err != nil || len(args) == 0 {
		return ""
	}

	parts := make([]string, 0, len(args))
	for k, v := range args {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	slices.Sort(parts)
	return truncate(strings.Join(parts, ", "), 80)
}

// formatToolResult keeps the first line of a lookup result.
func formatToolResult(result string) string {
	first, _, _ := strings.Cut(result, "\n")
	return truncate(first, 100)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
