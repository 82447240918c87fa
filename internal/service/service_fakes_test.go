package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"communityhub-be/internal/entity"
	"communityhub-be/internal/repository/contract"
	"communityhub-be/internal/repository/specification"
	"communityhub-be/internal/repository/unitofwork"
	"communityhub-be/pkg/chat/grounding"
	"communityhub-be/pkg/events"
	"communityhub-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. They interpret the same
// specification values the GORM implementations do, so service tests
// exercise real filter combinations without a database.

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type memoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.ChatSession
	messages []*entity.ChatMessage
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: make(map[uuid.UUID]*entity.ChatSession),
	}
}

type fakeUowFactory struct {
	store *memoryStore
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *memoryStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{store: u.store}
}

func (u *fakeUow) EventRepository() contract.EventRepository             { return nil }
func (u *fakeUow) ResourceRepository() contract.ResourceRepository       { return nil }
func (u *fakeUow) PodcastRepository() contract.PodcastRepository         { return nil }
func (u *fakeUow) TestimonialRepository() contract.TestimonialRepository { return nil }
func (u *fakeUow) OperatorRepository() contract.OperatorRepository       { return nil }
func (u *fakeUow) SystemLogRepository() contract.SystemLogRepository     { return nil }

type fakeSessionRepo struct {
	store *memoryStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *session
	r.store.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sessions[session.Id]; !ok {
		return errors.New("session not found")
	}
	copied := *session
	r.store.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatSession
	for _, s := range r.store.sessions {
		if sessionMatches(s, specs) {
			copied := *s
			out = append(out, &copied)
		}
	}
	sortSessions(out, specs)
	return paginateSessions(out, specs), nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, s := range r.store.sessions {
		if sessionMatches(s, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var removed int64
	for id, s := range r.store.sessions {
		if !s.ExpiresAt.After(now) {
			delete(r.store.sessions, id)
			removed++

			kept := r.store.messages[:0]
			for _, m := range r.store.messages {
				if m.ChatSessionId != id {
					kept = append(kept, m)
				}
			}
			r.store.messages = kept
		}
	}
	return removed, nil
}

func sessionMatches(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.ByGuestHash:
			if s.GuestHash != v.GuestHash {
				return false
			}
		case specification.NotExpired:
			if !s.ExpiresAt.After(v.Now) {
				return false
			}
		case specification.ExpiredBy:
			if s.ExpiresAt.After(v.Now) {
				return false
			}
		case specification.ByMode:
			if s.Mode != v.Mode {
				return false
			}
		case specification.ByAssignedOperator:
			if s.AssignedOperator == nil || *s.AssignedOperator != v.OperatorID {
				return false
			}
		}
	}
	return true
}

func sortSessions(sessions []*entity.ChatSession, specs []specification.Specification) {
	for _, spec := range specs {
		order, ok := spec.(specification.OrderBy)
		if !ok {
			continue
		}
		sort.SliceStable(sessions, func(i, j int) bool {
			var less bool
			switch order.Field {
			case "last_message_at":
				less = sessions[i].LastMessageAt.Before(sessions[j].LastMessageAt)
			default:
				less = sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
			}
			if order.Desc {
				return !less
			}
			return less
		})
	}
}

func paginateSessions(sessions []*entity.ChatSession, specs []specification.Specification) []*entity.ChatSession {
	for _, spec := range specs {
		p, ok := spec.(specification.Pagination)
		if !ok {
			continue
		}
		if p.Offset >= len(sessions) {
			return nil
		}
		sessions = sessions[p.Offset:]
		if p.Limit > 0 && p.Limit < len(sessions) {
			sessions = sessions[:p.Limit]
		}
	}
	return sessions
}

type fakeMessageRepo struct {
	store *memoryStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *message
	r.store.messages = append(r.store.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatMessage
	for _, m := range r.store.messages {
		if messageMatches(m, specs) {
			copied := *m
			out = append(out, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			sort.SliceStable(out, func(i, j int) bool {
				less := out[i].CreatedAt.Before(out[j].CreatedAt)
				if order.Desc {
					return !less
				}
				return less
			})
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func messageMatches(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		if v, ok := spec.(specification.ByChatSessionID); ok && m.ChatSessionId != v.ChatSessionID {
			return false
		}
	}
	return true
}

// Collaborator doubles.

type stubProvider struct {
	mu       sync.Mutex
	reply    string
	err      error
	received [][]llm.Message
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.received = append(p.received, history)
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type stubLimiter struct {
	allowed bool
}

func (l *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return l.allowed, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) typesSeen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAudit) Record(ctx context.Context, action, actor, detail string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
}

func (a *recordingAudit) Start(ctx context.Context) error { return nil }

type staticStore struct {
	overview string
}

func (s *staticStore) UpcomingEvents(ctx context.Context, limit int) ([]grounding.ContentItem, error) {
	return []grounding.ContentItem{{Title: "Garden Day"}}, nil
}
func (s *staticStore) RecentResources(ctx context.Context, limit int) ([]grounding.ContentItem, error) {
	return nil, nil
}
func (s *staticStore) RecentPodcasts(ctx context.Context, limit int) ([]grounding.ContentItem, error) {
	return nil, nil
}
func (s *staticStore) OrganizationOverview(ctx context.Context) (string, error) {
	return s.overview, nil
}
