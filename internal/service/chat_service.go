package service

import (
	"context"
	"strings"
	"time"

	"communityhub-be/internal/constant"
	"communityhub-be/internal/dto"
	"communityhub-be/internal/entity"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/internal/pkg/logger"
	"communityhub-be/internal/pkg/ratelimit"
	"communityhub-be/internal/repository/specification"
	"communityhub-be/internal/repository/unitofwork"
	"communityhub-be/pkg/chat/fallback"
	"communityhub-be/pkg/chat/grounding"
	"communityhub-be/pkg/chat/identity"
	"communityhub-be/pkg/chat/responder"
	"communityhub-be/pkg/events"
	"communityhub-be/pkg/llm"

	"github.com/google/uuid"
)

// historyWindow bounds how much conversation is replayed to the AI per reply.
const historyWindow = 20

// EventPublisher is the slice of the NATS publisher the chat service needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IChatService interface {
	GetOrCreateGuestSession(ctx context.Context, rawAddress string) (*dto.SessionSummary, error)
	PostGuestMessage(ctx context.Context, sessionId uuid.UUID, content string) error
	PostAdminMessage(ctx context.Context, sessionId uuid.UUID, operatorId uuid.UUID, content string) error
	SwitchMode(ctx context.Context, sessionId uuid.UUID, mode string, operatorId *uuid.UUID) (*dto.SessionSummary, error)
	ListMessages(ctx context.Context, sessionId uuid.UUID) (*dto.ListMessagesResponse, error)
	ListActiveSessions(ctx context.Context, query *dto.ListSessionsQuery) (*dto.ListSessionsResponse, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type chatService struct {
	uowFactory   unitofwork.RepositoryFactory
	hasher       *identity.Hasher
	assembler    *grounding.Assembler
	responder    *responder.Responder
	fallbackPool *fallback.Pool
	limiter      ratelimit.Limiter
	eventPub     EventPublisher
	audit        IAuditService
	logger       logger.ILogger

	sessionTTL   time.Duration
	pollInterval time.Duration
}

type ChatServiceDeps struct {
	UowFactory   unitofwork.RepositoryFactory
	Hasher       *identity.Hasher
	Assembler    *grounding.Assembler
	Responder    *responder.Responder
	FallbackPool *fallback.Pool
	Limiter      ratelimit.Limiter
	EventPub     EventPublisher
	Audit        IAuditService
	Logger       logger.ILogger
	SessionTTL   time.Duration
	PollInterval time.Duration
}

func NewChatService(deps ChatServiceDeps) IChatService {
	return &chatService{
		uowFactory:   deps.UowFactory,
		hasher:       deps.Hasher,
		assembler:    deps.Assembler,
		responder:    deps.Responder,
		fallbackPool: deps.FallbackPool,
		limiter:      deps.Limiter,
		eventPub:     deps.EventPub,
		audit:        deps.Audit,
		logger:       deps.Logger,
		sessionTTL:   deps.SessionTTL,
		pollInterval: deps.PollInterval,
	}
}

// GetOrCreateGuestSession returns the guest's current session, creating one
// in auto mode when none exists. Lookup always filters to non-expired rows,
// so a guest coming back after the retention window starts fresh.
//
// The lookup-then-insert is not atomic; two first contacts in the same
// instant can each create a session. The lookup orders by created_at so both
// callers converge on the newest row on their next poll.
func (cs *chatService) GetOrCreateGuestSession(ctx context.Context, rawAddress string) (*dto.SessionSummary, error) {
	hash := cs.hasher.Hash(rawAddress)
	now := time.Now()

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByGuestHash{GuestHash: hash},
		specification.NotExpired{Now: now},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	if session == nil {
		session = &entity.ChatSession{
			Id:            uuid.New(),
			GuestHash:     hash,
			Mode:          constant.ChatModeAuto,
			LastMessageAt: now,
			CreatedAt:     now,
			ExpiresAt:     now.Add(cs.sessionTTL),
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer uow.Rollback()

		if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}

		cs.publishEvent(ctx, events.TypeChatSessionCreated, map[string]interface{}{
			"session_id": session.Id.String(),
		})
		cs.audit.Record(ctx, "chat.session.created", "guest", session.Id.String())
	}

	return cs.toSummary(session), nil
}

// PostGuestMessage appends the guest's message and, while the session is in
// auto mode, generates a reply: AI on success, a fallback-pool notice on any
// provider failure. In live mode the message is stored and waits for a human.
func (cs *chatService) PostGuestMessage(ctx context.Context, sessionId uuid.UUID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return apperror.NewValidation("message content must not be empty")
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := cs.findCurrentSession(ctx, uow, sessionId)
	if err != nil {
		return err
	}

	allowed, err := cs.limiter.Allow(ctx, session.GuestHash)
	if err != nil {
		return err
	}
	if !allowed {
		return apperror.NewRateLimited("too many messages, slow down a little")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := cs.appendMessage(ctx, uow, session, constant.ChatSenderGuest, content); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if session.Mode != constant.ChatModeAuto {
		cs.publishEvent(ctx, events.TypeChatGuestWaiting, map[string]interface{}{
			"session_id": session.Id.String(),
		})
		return nil
	}

	// The AI round trip can take many seconds, so it runs outside any
	// transaction. The guest's message is already durable at this point.
	reply := cs.generateReply(ctx, uow, session, content)

	replyUow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := replyUow.Begin(ctx); err != nil {
		return err
	}
	defer replyUow.Rollback()

	if err := cs.appendMessage(ctx, replyUow, session, constant.ChatSenderBot, reply); err != nil {
		return err
	}
	return replyUow.Commit()
}

// generateReply runs the auto-mode path: assemble grounding context, replay
// bounded history, call the gateway once. Every failure degrades to a random
// fallback message; the raw provider error stays in the logs.
func (cs *chatService) generateReply(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, latest string) string {
	contextText := cs.assembler.Build(ctx, latest)

	history, err := cs.loadHistory(ctx, uow, session.Id)
	if err != nil {
		cs.logger.Error("chat", "failed to load history for AI reply", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		history = []llm.Message{{Role: "user", Content: latest}}
	}

	reply, err := cs.responder.Respond(ctx, history, contextText)
	if err != nil {
		cs.logger.Error("chat", "AI reply failed, using fallback", map[string]interface{}{
			"session_id": session.Id.String(),
			"provider":   cs.responder.ProviderName(),
			"error":      err.Error(),
		})
		return cs.fallbackPool.Pick()
	}
	return reply
}

// PostAdminMessage stores an operator's reply. If the session is still in
// auto mode this switches it to live first, so an admin can never send a
// message into a session that keeps auto-replying.
func (cs *chatService) PostAdminMessage(ctx context.Context, sessionId uuid.UUID, operatorId uuid.UUID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return apperror.NewValidation("message content must not be empty")
	}
	if operatorId == uuid.Nil {
		return apperror.NewAuthorization("operator identity required")
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := cs.findCurrentSession(ctx, uow, sessionId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Takeover and the first admin message land in one transaction, so a
	// guest can never observe an admin reply on a session still in auto mode.
	tookOver := session.Mode != constant.ChatModeLive
	if tookOver {
		session.Mode = constant.ChatModeLive
		session.AssignedOperator = &operatorId
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return err
		}
	}

	if err := cs.appendMessage(ctx, uow, session, constant.ChatSenderAdmin, content); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if tookOver {
		cs.publishEvent(ctx, events.TypeChatTakeover, map[string]interface{}{
			"session_id":  session.Id.String(),
			"operator_id": operatorId.String(),
		})
		cs.audit.Record(ctx, "chat.takeover", operatorId.String(), session.Id.String())
	}
	return nil
}

// SwitchMode transitions the session's routing state. Switching to live
// requires an operator; switching to auto clears the assignment
// unconditionally.
func (cs *chatService) SwitchMode(ctx context.Context, sessionId uuid.UUID, mode string, operatorId *uuid.UUID) (*dto.SessionSummary, error) {
	if mode != constant.ChatModeAuto && mode != constant.ChatModeLive {
		return nil, apperror.NewValidation("mode must be auto or live")
	}
	if mode == constant.ChatModeLive && (operatorId == nil || *operatorId == uuid.Nil) {
		return nil, apperror.NewValidation("switching to live requires an operator id")
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := cs.findCurrentSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	session.Mode = mode
	if mode == constant.ChatModeLive {
		session.AssignedOperator = operatorId
	} else {
		session.AssignedOperator = nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	actor := "system"
	if operatorId != nil {
		actor = operatorId.String()
	}
	cs.audit.Record(ctx, "chat.mode."+mode, actor, session.Id.String())

	return cs.toSummary(session), nil
}

func (cs *chatService) ListMessages(ctx context.Context, sessionId uuid.UUID) (*dto.ListMessagesResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if _, err := cs.findCurrentSession(ctx, uow, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.MessageSummary, len(messages))
	for i, m := range messages {
		summaries[i] = &dto.MessageSummary{
			Id:         m.Id,
			SenderType: m.SenderType,
			Content:    m.Content,
			CreatedAt:  m.CreatedAt,
		}
	}

	return &dto.ListMessagesResponse{Messages: summaries, Count: len(summaries)}, nil
}

func (cs *chatService) ListActiveSessions(ctx context.Context, query *dto.ListSessionsQuery) (*dto.ListSessionsResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filters := []specification.Specification{
		specification.NotExpired{Now: time.Now()},
	}
	if query.Mode != "" {
		if query.Mode != constant.ChatModeAuto && query.Mode != constant.ChatModeLive {
			return nil, apperror.NewValidation("mode filter must be auto or live")
		}
		filters = append(filters, specification.ByMode{Mode: query.Mode})
	}
	if query.OperatorId != "" {
		opId, err := uuid.Parse(query.OperatorId)
		if err != nil {
			return nil, apperror.NewValidation("operator_id filter must be a UUID")
		}
		filters = append(filters, specification.ByAssignedOperator{OperatorID: opId})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.ChatSessionRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "last_message_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.SessionSummary, len(sessions))
	for i, s := range sessions {
		summaries[i] = cs.toSummary(s)
	}

	return &dto.ListSessionsResponse{
		Sessions: summaries,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// PurgeExpiredSessions removes every session past its retention window,
// with its messages. Runs on a schedule, never on the request path.
func (cs *chatService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	count, err := uow.ChatSessionRepository().DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}

	if count > 0 {
		cs.logger.Info("chat", "retention sweep removed expired sessions", map[string]interface{}{
			"count": count,
		})
		cs.audit.Record(ctx, "chat.purge", "scheduler", uuid.Nil.String())
	}
	return count, nil
}

// --- internals ---

func (cs *chatService) findCurrentSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.NotExpired{Now: time.Now()},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("chat session not found or expired")
	}
	return session, nil
}

// appendMessage inserts the message and bumps the session's last activity to
// the same timestamp.
func (cs *chatService) appendMessage(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, senderType, content string) error {
	now := time.Now()

	message := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		SenderType:    senderType,
		Content:       content,
		CreatedAt:     now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return err
	}

	session.LastMessageAt = now
	return uow.ChatSessionRepository().Update(ctx, session)
}

func (cs *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]llm.Message, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	if len(messages) > historyWindow {
		messages = messages[len(messages)-historyWindow:]
	}

	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		role := "assistant"
		if m.SenderType == constant.ChatSenderGuest {
			role = "user"
		}
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}
	return history, nil
}

func (cs *chatService) toSummary(session *entity.ChatSession) *dto.SessionSummary {
	return &dto.SessionSummary{
		Id:               session.Id,
		Mode:             session.Mode,
		AssignedOperator: session.AssignedOperator,
		LastMessageAt:    session.LastMessageAt,
		CreatedAt:        session.CreatedAt,
		ExpiresAt:        session.ExpiresAt,
		PollIntervalMs:   int(cs.pollInterval.Milliseconds()),
	}
}

// publishEvent is fire-and-forget: chat must keep working when NATS is down.
func (cs *chatService) publishEvent(ctx context.Context, eventType string, payload map[string]interface{}) {
	if cs.eventPub == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
	if err := cs.eventPub.Publish(ctx, event); err != nil {
		cs.logger.Warn("chat", "event publish failed", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
