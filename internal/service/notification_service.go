package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/dealer-service/internal/config"
	"github.com/spec-kit/dealer-service/internal/events"
)

// NotificationService is the pluggable delivery channel for domain
// events. One-time codes are "delivered" by logging them; real email or
// SMS delivery would subscribe here instead.
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
	n.dispatcher.Subscribe(events.EventOTPGenerated, n.handleOTPGenerated)
	n.dispatcher.Subscribe(events.EventPurchaseRequestCreated, n.handlePurchaseRequestCreated)
	n.dispatcher.Subscribe(events.EventSaleCompleted, n.handleSaleCompleted)
}

// handleOTPGenerated simulates out-of-band delivery by logging the code.
func (n *NotificationService) handleOTPGenerated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OTPGeneratedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("OTP delivery",
		zap.Int64("user_id", event.UserID),
		zap.String("purpose", payload.Purpose),
		zap.String("code", payload.Code),
		zap.Time("expires_at", payload.ExpiresAt))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePurchaseRequestCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("PurchaseRequestCreated", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSaleCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("SaleCompleted", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
