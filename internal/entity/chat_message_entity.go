package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry of a session's append-only log. Messages are never
// edited or deleted individually; they only disappear when their session is
// purged.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	SenderType    string
	Content       string
	CreatedAt     time.Time
}
