package entity

import (
	"time"

	"github.com/google/uuid"
)

// SystemLog is an audit trail row written asynchronously off the request
// path (chat takeovers, purges, content changes).
type SystemLog struct {
	Id        uuid.UUID
	Action    string
	Actor     string
	Detail    string
	CreatedAt time.Time
}
