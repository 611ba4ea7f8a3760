package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/events"
)

// NotificationService turns case and officer events into notifications.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{logger: logger, cfg: cfg}
}

// EventTypes lists the events the service reacts to.
func (n *NotificationService) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventCaseCreated,
		events.EventCaseReported,
		events.EventCaseStatusChanged,
		events.EventCaseAssigned,
		events.EventOfficerApproved,
	}
}

// Handle emits the notification for one event.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	subject := "case_id"
	if event.Type == events.EventOfficerApproved {
		subject = "officer_id"
	}
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("tenant_id", event.TenantID),
		zap.String(subject, event.SubjectID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
