package entity

import (
	"time"

	"github.com/google/uuid"
)

// Operator is an authenticated admin user: the only principal allowed to
// list sessions, take over a conversation or manage content.
type Operator struct {
	Id           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
