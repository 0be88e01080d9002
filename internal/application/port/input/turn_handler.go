package input

import (
	"context"

	"robocon-bot/internal/domain/entity"
)

type TurnHandler interface {
	HandleTurn(ctx context.Context, userText, systemPrompt string) (*entity.TurnResult, error)
}

// MessageHandler turns an inbound message into the reply text. An empty
// reply means nothing should be sent.
type MessageHandler interface {
	Handle(ctx context.Context, msg entity.InboundMessage) string
}
