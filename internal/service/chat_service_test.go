package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"communityhub-be/internal/constant"
	"communityhub-be/internal/dto"
	"communityhub-be/internal/pkg/apperror"
	"communityhub-be/pkg/chat/fallback"
	"communityhub-be/pkg/chat/grounding"
	"communityhub-be/pkg/chat/identity"
	"communityhub-be/pkg/chat/responder"
	"communityhub-be/pkg/events"
	"communityhub-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testFallbacks = []string{
	"fallback one",
	"fallback two",
}

type chatHarness struct {
	svc       IChatService
	store     *memoryStore
	provider  *stubProvider
	limiter   *stubLimiter
	publisher *recordingPublisher
	audit     *recordingAudit
}

func newChatHarness(provider llm.Provider) *chatHarness {
	h := &chatHarness{
		store:     newMemoryStore(),
		limiter:   &stubLimiter{allowed: true},
		publisher: &recordingPublisher{},
		audit:     &recordingAudit{},
	}
	if sp, ok := provider.(*stubProvider); ok {
		h.provider = sp
	}

	assembler := grounding.NewAssembler(&staticStore{overview: "A neighborhood collective."}, nopLogger{})

	h.svc = NewChatService(ChatServiceDeps{
		UowFactory:   &fakeUowFactory{store: h.store},
		Hasher:       identity.NewHasher("test-salt"),
		Assembler:    assembler,
		Responder:    responder.NewResponder(provider, constant.ChatSystemPromptV1),
		FallbackPool: fallback.NewPool(testFallbacks, 99),
		Limiter:      h.limiter,
		EventPub:     h.publisher,
		Audit:        h.audit,
		Logger:       nopLogger{},
		SessionTTL:   30 * 24 * time.Hour,
		PollInterval: 4 * time.Second,
	})
	return h
}

func (h *chatHarness) messagesOf(t *testing.T, sessionId uuid.UUID) []*dto.MessageSummary {
	t.Helper()
	res, err := h.svc.ListMessages(context.Background(), sessionId)
	assert.NoError(t, err)
	return res.Messages
}

func TestGetOrCreateGuestSessionIsSingleton(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	first, err := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	assert.NoError(t, err)
	second, err := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	assert.NoError(t, err)

	assert.Equal(t, first.Id, second.Id, "same address must resolve to one session")
	assert.Equal(t, constant.ChatModeAuto, first.Mode)
	assert.Equal(t, 4000, first.PollIntervalMs)

	other, err := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.8")
	assert.NoError(t, err)
	assert.NotEqual(t, first.Id, other.Id, "different addresses must get different sessions")
}

func TestGetOrCreateGuestSessionIgnoresExpired(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	session, err := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	assert.NoError(t, err)

	// Force the session past its window.
	h.store.mu.Lock()
	h.store.sessions[session.Id].ExpiresAt = time.Now().Add(-time.Hour)
	h.store.mu.Unlock()

	fresh, err := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	assert.NoError(t, err)
	assert.NotEqual(t, session.Id, fresh.Id, "an expired session must never be resumed")
}

func TestPostGuestMessageAutoModeGeneratesReply(t *testing.T) {
	provider := &stubProvider{reply: "We meet every Thursday."}
	h := newChatHarness(provider)
	ctx := context.Background()

	session, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	err := h.svc.PostGuestMessage(ctx, session.Id, "when are your events?")
	assert.NoError(t, err)

	messages := h.messagesOf(t, session.Id)
	assert.Len(t, messages, 2)
	assert.Equal(t, constant.ChatSenderGuest, messages[0].SenderType)
	assert.Equal(t, "when are your events?", messages[0].Content)
	assert.Equal(t, constant.ChatSenderBot, messages[1].SenderType)
	assert.Equal(t, "We meet every Thursday.", messages[1].Content)

	// The provider must have received the persona plus assembled context.
	assert.NotEmpty(t, provider.received)
	sent := provider.received[0]
	assert.Equal(t, "system", sent[0].Role)
	assert.Contains(t, sent[0].Content, "CONTEXT:")
	assert.Contains(t, sent[0].Content, "Garden Day")
}

func TestPostGuestMessageProviderFailureUsesFallback(t *testing.T) {
	h := newChatHarness(&stubProvider{err: errors.New("upstream 500")})
	ctx := context.Background()

	session, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	err := h.svc.PostGuestMessage(ctx, session.Id, "hello?")
	assert.NoError(t, err, "provider failure must not fail the guest's request")

	messages := h.messagesOf(t, session.Id)
	assert.Len(t, messages, 2)
	assert.Equal(t, constant.ChatSenderBot, messages[1].SenderType)
	assert.Contains(t, testFallbacks, messages[1].Content)
}

func TestPostGuestMessageNoProviderConfigured(t *testing.T) {
	h := newChatHarness(nil)
	ctx := context.Background()

	session, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	err := h.svc.PostGuestMessage(ctx, session.Id, "anyone there?")
	assert.NoError(t, err)

	messages := h.messagesOf(t, session.Id)
	assert.Len(t, messages, 2)
	assert.Contains(t, testFallbacks, messages[1].Content)
}

func TestPostGuestMessageLiveModeStoresWithoutReply(t *testing.T) {
	provider := &stubProvider{reply: "should never be used"}
	h := newChatHarness(provider)
	ctx := context.Background()

	session, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	operatorId := uuid.New()
	_, err := h.svc.SwitchMode(ctx, session.Id, constant.ChatModeLive, &operatorId)
	assert.NoError(t, err)

	err = h.svc.PostGuestMessage(ctx, session.Id, "I need a human")
	assert.NoError(t, err)

	messages := h.messagesOf(t, session.Id)
	assert.Len(t, messages, 1, "live mode must not generate a bot reply")
	assert.Empty(t, provider.received)
	assert.Contains(t, h.publisher.typesSeen(), events.TypeChatGuestWaiting)
}

func TestPostGuestMessageValidation(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	session, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")

	err := h.svc.PostGuestMessage(ctx, session.Id, "   ")
	assert.True(t, apperror.IsValidation(err), "blank content must be rejected")

	err = h.svc.PostGuestMessage(ctx, uuid.New(), "hello")
	assert.True(t, apperror.IsNotFound(err), "unknown session must be NotFound")
}

func TestPostGuestMessageRateLimited(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	session, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	h.limiter.allowed = false

	err := h.svc.PostGuestMessage(ctx, session.Id, "spam spam spam")
	assert.True(t, apperror.IsRateLimited(err))
	assert.Empty(t, h.messagesOf(t, session.Id), "limited message must not be stored")
}

func TestPostAdminMessageTakesOverAutoSession(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	session, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	operatorId := uuid.New()

	err := h.svc.PostAdminMessage(ctx, session.Id, operatorId, "Hi, taking over from here.")
	assert.NoError(t, err)

	h.store.mu.Lock()
	stored := h.store.sessions[session.Id]
	h.store.mu.Unlock()
	assert.Equal(t, constant.ChatModeLive, stored.Mode)
	if assert.NotNil(t, stored.AssignedOperator) {
		assert.Equal(t, operatorId, *stored.AssignedOperator)
	}

	messages := h.messagesOf(t, session.Id)
	assert.Len(t, messages, 1)
	assert.Equal(t, constant.ChatSenderAdmin, messages[0].SenderType)
	assert.Contains(t, h.publisher.typesSeen(), events.TypeChatTakeover)
}

func TestPostAdminMessageAlreadyLiveSkipsTakeover(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	session, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	operatorId := uuid.New()
	_, err := h.svc.SwitchMode(ctx, session.Id, constant.ChatModeLive, &operatorId)
	assert.NoError(t, err)

	err = h.svc.PostAdminMessage(ctx, session.Id, operatorId, "Still here.")
	assert.NoError(t, err)

	var takeovers int
	for _, typ := range h.publisher.typesSeen() {
		if typ == events.TypeChatTakeover {
			takeovers++
		}
	}
	assert.Zero(t, takeovers, "no takeover event when the session is already live")
}

func TestSwitchModeRules(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	session, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	operatorId := uuid.New()

	_, err := h.svc.SwitchMode(ctx, session.Id, "paused", &operatorId)
	assert.True(t, apperror.IsValidation(err), "unknown mode must be rejected")

	_, err = h.svc.SwitchMode(ctx, session.Id, constant.ChatModeLive, nil)
	assert.True(t, apperror.IsValidation(err), "live requires an operator")

	live, err := h.svc.SwitchMode(ctx, session.Id, constant.ChatModeLive, &operatorId)
	assert.NoError(t, err)
	assert.Equal(t, constant.ChatModeLive, live.Mode)
	assert.NotNil(t, live.AssignedOperator)

	auto, err := h.svc.SwitchMode(ctx, session.Id, constant.ChatModeAuto, &operatorId)
	assert.NoError(t, err)
	assert.Equal(t, constant.ChatModeAuto, auto.Mode)
	assert.Nil(t, auto.AssignedOperator, "returning to auto must clear the assignment")
}

func TestListActiveSessionsFiltersAndOrders(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	older, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.1")
	newer, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.2")

	// Make the first session the most recently active.
	assert.NoError(t, h.svc.PostGuestMessage(ctx, newer.Id, "hello"))
	time.Sleep(5 * time.Millisecond)
	assert.NoError(t, h.svc.PostGuestMessage(ctx, older.Id, "hello again"))

	res, err := h.svc.ListActiveSessions(ctx, &dto.ListSessionsQuery{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, older.Id, res.Sessions[0].Id, "most recent activity first")

	operatorId := uuid.New()
	_, err = h.svc.SwitchMode(ctx, newer.Id, constant.ChatModeLive, &operatorId)
	assert.NoError(t, err)

	liveOnly, err := h.svc.ListActiveSessions(ctx, &dto.ListSessionsQuery{Mode: constant.ChatModeLive})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), liveOnly.Total)
	assert.Equal(t, newer.Id, liveOnly.Sessions[0].Id)

	mine, err := h.svc.ListActiveSessions(ctx, &dto.ListSessionsQuery{OperatorId: operatorId.String()})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)

	_, err = h.svc.ListActiveSessions(ctx, &dto.ListSessionsQuery{Mode: "weird"})
	assert.True(t, apperror.IsValidation(err))
}

func TestPurgeExpiredSessions(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	expired, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.1")
	assert.NoError(t, h.svc.PostGuestMessage(ctx, expired.Id, "old chatter"))
	alive, _ := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.2")

	h.store.mu.Lock()
	h.store.sessions[expired.Id].ExpiresAt = time.Now().Add(-time.Minute)
	h.store.mu.Unlock()

	count, err := h.svc.PurgeExpiredSessions(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	h.store.mu.Lock()
	_, expiredGone := h.store.sessions[expired.Id]
	_, aliveKept := h.store.sessions[alive.Id]
	messagesLeft := len(h.store.messages)
	h.store.mu.Unlock()

	assert.False(t, expiredGone, "expired session must be removed")
	assert.True(t, aliveKept, "live session must survive the sweep")
	assert.Zero(t, messagesLeft, "messages must go with their session")
}

func TestSessionCreatedEventAndAudit(t *testing.T) {
	h := newChatHarness(&stubProvider{reply: "hi"})
	ctx := context.Background()

	_, err := h.svc.GetOrCreateGuestSession(ctx, "203.0.113.7")
	assert.NoError(t, err)

	assert.Contains(t, h.publisher.typesSeen(), events.TypeChatSessionCreated)
	assert.Contains(t, h.audit.actions, "chat.session.created")
}
