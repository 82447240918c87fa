package unitofwork

import (
	"context"

	"communityhub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	EventRepository() contract.EventRepository
	ResourceRepository() contract.ResourceRepository
	PodcastRepository() contract.PodcastRepository
	TestimonialRepository() contract.TestimonialRepository
	OperatorRepository() contract.OperatorRepository
	SystemLogRepository() contract.SystemLogRepository
}
