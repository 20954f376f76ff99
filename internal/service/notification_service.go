package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/enrollment-service/internal/config"
	"github.com/spec-kit/enrollment-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccountRegistered, n.handleAccountRegistered)
	n.dispatcher.Subscribe(events.EventCourseCreated, n.handleCourseChanged)
	n.dispatcher.Subscribe(events.EventCourseDeleted, n.handleCourseChanged)
	n.dispatcher.Subscribe(events.EventStudentEnrolled, n.handleStudentEnrolled)
}

func (n *NotificationService) handleAccountRegistered(ctx context.Context, event events.Event) error {
	n.logEvent(event)
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCourseChanged(ctx context.Context, event events.Event) error {
	n.logEvent(event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStudentEnrolled(ctx context.Context, event events.Event) error {
	n.logEvent(event)
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) logEvent(event events.Event) {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.String("actor_id", event.Actor.ID),
		zap.Any("payload", event.Payload))
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("actor_id", event.Actor.ID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("actor_id", event.Actor.ID),
		zap.String("event_type", string(event.Type)))
}
