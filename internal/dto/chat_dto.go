package dto

import (
	"time"

	"github.com/google/uuid"
)

// SessionSummary is what both the guest widget and the admin dashboard see.
// The guest hash is internal and never leaves the API for guest callers.
type SessionSummary struct {
	Id               uuid.UUID  `json:"id"`
	Mode             string     `json:"mode"`
	AssignedOperator *uuid.UUID `json:"assigned_operator,omitempty"`
	LastMessageAt    time.Time  `json:"last_message_at"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	PollIntervalMs   int        `json:"poll_interval_ms"`
}

type MessageSummary struct {
	Id         uuid.UUID `json:"id"`
	SenderType string    `json:"sender_type"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type PostGuestMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type PostAdminMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type SwitchModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=auto live"`
}

type ListSessionsQuery struct {
	Mode       string `query:"mode"`
	OperatorId string `query:"operator_id"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

type ListSessionsResponse struct {
	Sessions []*SessionSummary `json:"sessions"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type ListMessagesResponse struct {
	Messages []*MessageSummary `json:"messages"`
	Count    int               `json:"count"`
}
