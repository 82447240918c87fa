package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one guest's conversation. The guest is only ever known by
// the salted hash of their network address, never the address itself.
type ChatSession struct {
	Id               uuid.UUID
	GuestHash        string
	Mode             string
	AssignedOperator *uuid.UUID
	LastMessageAt    time.Time
	CreatedAt        time.Time
	ExpiresAt        time.Time
}

// Expired reports whether the session is past its absolute retention window.
func (s *ChatSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
