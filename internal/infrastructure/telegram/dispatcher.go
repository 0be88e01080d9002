package telegram

import (
	"context"
	"time"

	"robocon-bot/internal/application/port/input"
	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"
)

// DefaultTurnTimeout bounds one update from receipt to sent reply.
const DefaultTurnTimeout = 2 * time.Minute

// Dispatcher hands text messages to the relay and sends back the replies.
type Dispatcher struct {
	handler     input.MessageHandler
	messenger   output.MessengerPort
	logger      output.LoggerPort
	turnTimeout time.Duration
}

func NewDispatcher(handler input.MessageHandler, messenger output.MessengerPort, logger output.LoggerPort) *Dispatcher {
	return &Dispatcher{
		handler:     handler,
		messenger:   messenger,
		logger:      logger,
		turnTimeout: DefaultTurnTimeout,
	}
}

func (d *Dispatcher) WithTurnTimeout(timeout time.Duration) *Dispatcher {
	if timeout > 0 {
		d.turnTimeout = timeout
	}
	return d
}

// Dispatch runs one update to completion. Cancelling ctx does not abort a
// turn that has started; the turn timeout bounds it instead.
func (d *Dispatcher) Dispatch(ctx context.Context, update Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.turnTimeout)
	defer cancel()

	inbound := entity.InboundMessage{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	}
	if msg.From != nil {
		inbound.User = entity.UserIdentity{
			ID:        msg.From.ID,
			Username:  msg.From.Username,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		}
	}

	reply := d.handler.Handle(ctx, inbound)
	if reply == "" {
		return
	}

	if err := d.messenger.SendMessage(ctx, msg.Chat.ID, reply); err != nil {
		d.logger.Error("Failed to send reply", "chatId", msg.Chat.ID, "updateId", update.UpdateID, "error", err)
	}
}
