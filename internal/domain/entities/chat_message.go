package entities

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessageLength bounds the chat message body, in runes.
const MaxMessageLength = 2000

// ChatMessage is one entry in a team's append-only channel log.
// Messages are never edited or deleted.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"teamId"`
	UserID    uuid.UUID `json:"userId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`

	Author *Profile `json:"author,omitempty"`
}
