package contract

import (
	"context"
	"time"

	"communityhub-be/internal/entity"
	"communityhub-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DeleteExpired hard-deletes every session whose window closed before now.
	// Messages go with them via the FK cascade. Returns the number of
	// sessions removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
