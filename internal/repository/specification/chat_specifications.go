package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

type ByGuestHash struct {
	GuestHash string
}

func (s ByGuestHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("guest_hash = ?", s.GuestHash)
}

// NotExpired keeps only sessions still inside the retention window. Every
// guest-facing lookup must include this; expired rows are invisible until the
// sweep removes them.
type NotExpired struct {
	Now time.Time
}

func (s NotExpired) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at > ?", s.Now)
}

// ExpiredBy matches sessions whose retention window has closed.
type ExpiredBy struct {
	Now time.Time
}

func (s ExpiredBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at <= ?", s.Now)
}

type ByMode struct {
	Mode string
}

func (s ByMode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("mode = ?", s.Mode)
}

type ByAssignedOperator struct {
	OperatorID uuid.UUID
}

func (s ByAssignedOperator) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("assigned_operator = ?", s.OperatorID)
}
