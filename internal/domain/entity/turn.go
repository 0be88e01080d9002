package entity

import "time"

type UserTurn struct {
	Text    string
	AskedAt time.Time
}

type UserIdentity struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// FullName joins first and last name the way greetings and logs show them.
func (u UserIdentity) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// InboundMessage is a text message received from a transport.
type InboundMessage struct {
	ChatID int64
	Text   string
	User   UserIdentity
}

type TurnResult struct {
	FinalAnswer string
	ToolCalls   int
	RoundTrips  int
}
