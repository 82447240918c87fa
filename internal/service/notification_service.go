package service

import (
	"context"
	"fmt"

	"communityhub-be/internal/pkg/logger"
	"communityhub-be/internal/pkg/mailer"
	"communityhub-be/pkg/events"
	pktNats "communityhub-be/pkg/nats"
)

// NotificationService watches the chat event stream and emails the on-call
// operator address when a conversation needs human attention. It is a
// background worker, fully detached from the request path.
type NotificationService struct {
	subscriber   *pktNats.Subscriber
	emailService mailer.IEmailService
	alertEmail   string
	logger       logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, emailService mailer.IEmailService, alertEmail string, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber:   sub,
		emailService: emailService,
		alertEmail:   alertEmail,
		logger:       log,
	}
}

// Start begins listening to the event bus with a durable consumer, so alerts
// survive worker restarts.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "NATS unavailable, chat alerts disabled", nil)
		return
	}

	err := s.subscriber.Subscribe("events.>", "chat-alert-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start alert subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Alert worker started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	if s.alertEmail == "" {
		return nil
	}

	payload := event.Payload()
	sessionId, _ := payload["session_id"].(string)

	var subject, body string
	switch event.EventType() {
	case events.TypeChatGuestWaiting:
		subject = "A guest is waiting for a reply"
		body = fmt.Sprintf("Session %s is in live mode and the guest just sent a new message.", sessionId)
	case events.TypeChatSessionCreated:
		subject = "New support conversation started"
		body = fmt.Sprintf("A visitor opened session %s.", sessionId)
	default:
		// Takeovers and other events are audit-only, no email.
		return nil
	}

	if err := s.emailService.SendChatAlert(s.alertEmail, subject, body); err != nil {
		s.logger.Error("NotificationService", "Failed to send chat alert", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
		return err
	}
	return nil
}
