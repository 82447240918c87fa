package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession rows are hard-deleted by the retention sweep, so there is no
// soft-delete column here. guest_hash is indexed but not unique: expired
// rows for the same guest may linger until the sweep runs.
type ChatSession struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GuestHash        string     `gorm:"type:varchar(64);not null;index"`
	Mode             string     `gorm:"type:varchar(10);not null;default:'auto'"`
	AssignedOperator *uuid.UUID `gorm:"type:uuid"`
	LastMessageAt    time.Time  `gorm:"not null;index"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	ExpiresAt        time.Time  `gorm:"not null;index"`

	Messages []ChatMessage `gorm:"foreignKey:ChatSessionId;constraint:OnDelete:CASCADE"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
