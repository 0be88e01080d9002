package output

import "context"

// TurnObserver receives progress of tool resolution within one turn.
type TurnObserver interface {
	ShowToolStart(ctx context.Context, toolName, arguments string)
	ShowToolResult(ctx context.Context, toolName, result string, isError bool)
}

type MessengerPort interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}
