package conversation

import (
	"time"

	"robocon-bot/internal/domain/entity"
)

const (
	askedAtLayout  = "2006-01-02 03:04:05 PM"
	askedAtPrefix  = "Time at which Question is asked: "
	userPromptLead = ".\nUser Prompt: "
)

// Compose builds the two-message context of a turn: the system prompt
// verbatim and the user text prefixed with the time it was asked.
func Compose(systemPrompt string, turn entity.UserTurn) []entity.Message {
	return []entity.Message{
		{Role: entity.RoleSystem, Content: systemPrompt},
		{Role: entity.RoleUser, Content: askedAtPrefix + FormatAskedAt(turn.AskedAt) + userPromptLead + turn.Text},
	}
}

func FormatAskedAt(t time.Time) string {
	return t.Format(askedAtLayout)
}
