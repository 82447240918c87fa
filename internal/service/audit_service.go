package service

import (
	"context"
	"encoding/json"
	"time"

	"communityhub-be/internal/entity"
	"communityhub-be/internal/pkg/logger"
	"communityhub-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// auditEntry is the wire form published onto the in-process audit topic.
type auditEntry struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// IAuditService decouples audit writes from the request path. Record never
// blocks on the database; a background consumer persists entries to
// system_logs.
type IAuditService interface {
	Record(ctx context.Context, action, actor, detail string)
	Start(ctx context.Context) error
}

type auditService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuditService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IAuditService {
	return &auditService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (as *auditService) Record(ctx context.Context, action, actor, detail string) {
	entry := auditEntry{
		Action:    action,
		Actor:     actor,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		as.logger.Error("audit", "failed to marshal audit entry", map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := as.pubSub.Publish(as.topicName, msg); err != nil {
		as.logger.Error("audit", "failed to publish audit entry", map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		})
	}
}

func (as *auditService) Start(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (as *auditService) processMessage(ctx context.Context, msg *message.Message) {
	var entry auditEntry
	if err := json.Unmarshal(msg.Payload, &entry); err != nil {
		as.logger.Error("audit", "dropping malformed audit message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	uow := as.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		as.logger.Error("audit", "failed to begin transaction", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	row := &entity.SystemLog{
		Id:        uuid.New(),
		Action:    entry.Action,
		Actor:     entry.Actor,
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedAt,
	}
	if err := uow.SystemLogRepository().Create(ctx, row); err != nil {
		as.logger.Error("audit", "failed to persist audit entry", map[string]interface{}{
			"action": entry.Action,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		as.logger.Error("audit", "failed to commit audit entry", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
