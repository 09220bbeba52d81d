// Package mailer posts notification events to the mail webhook.
// Delivery is fire-and-forget. A failed or slow webhook must never
// delay or fail the request that triggered it.
package mailer

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"freightdesk/services/support-api/internal/domain/conversation"
	"freightdesk/services/support-api/internal/domain/shipment"
	"freightdesk/services/support-api/internal/utils/httpclients"
)

const (
	EventConversationCreated       = "conversation.created"
	EventConversationStatusChanged = "conversation.status_changed"
	EventShipmentCreated           = "shipment.created"
	EventShipmentCanceled          = "shipment.canceled"
)

type Config struct {
	WebhookURL string
	Secret     string
	Timeout    time.Duration
}

type Mailer struct {
	cfg    Config
	http   *resty.Client
	logger zerolog.Logger
}

var _ conversation.Notifier = (*Mailer)(nil)
var _ shipment.Notifier = (*Mailer)(nil)

func New(cfg Config, logger zerolog.Logger) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Mailer{
		cfg:    cfg,
		http:   httpclients.NewClient("mailer"),
		logger: logger,
	}
}

type webhookEvent struct {
	Event          string `json:"event"`
	ConversationID string `json:"conversation_id,omitempty"`
	PackageID      string `json:"package_id,omitempty"`
	CustomerID     string `json:"customer_id,omitempty"`
	CustomerEmail  string `json:"customer_email,omitempty"`
	Status         string `json:"status,omitempty"`
	Concern        string `json:"concern,omitempty"`
	OccurredAt     string `json:"occurred_at"`
}

func (m *Mailer) ConversationCreated(ctx context.Context, conv *conversation.Conversation) {
	m.deliver(eventFromConversation(EventConversationCreated, conv))
}

func (m *Mailer) ConversationStatusChanged(ctx context.Context, conv *conversation.Conversation) {
	m.deliver(eventFromConversation(EventConversationStatusChanged, conv))
}

func (m *Mailer) ShipmentCreated(ctx context.Context, pkg *shipment.ShipmentPackage) {
	m.deliver(webhookEvent{
		Event:      EventShipmentCreated,
		PackageID:  pkg.PublicID,
		CustomerID: pkg.CustomerID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (m *Mailer) ShipmentCanceled(ctx context.Context, pkg *shipment.ShipmentPackage) {
	m.deliver(webhookEvent{
		Event:      EventShipmentCanceled,
		PackageID:  pkg.PublicID,
		CustomerID: pkg.CustomerID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// deliver posts the event on its own goroutine with its own deadline.
// The caller's context is deliberately not used so that request
// cancellation does not cancel notification delivery.
func (m *Mailer) deliver(event webhookEvent) {
	if m.cfg.WebhookURL == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Timeout)
		defer cancel()

		req := m.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(event)
		if m.cfg.Secret != "" {
			req.SetHeader("X-Webhook-Secret", m.cfg.Secret)
		}

		resp, err := req.Post(m.cfg.WebhookURL)
		if err != nil {
			m.logger.Warn().
				Err(err).
				Str("event", event.Event).
				Msg("mail webhook delivery failed")
			return
		}
		if resp.IsError() {
			m.logger.Warn().
				Int("status", resp.StatusCode()).
				Str("event", event.Event).
				Msg("mail webhook rejected event")
		}
	}()
}

func eventFromConversation(name string, conv *conversation.Conversation) webhookEvent {
	event := webhookEvent{
		Event:          name,
		ConversationID: conv.PublicID,
		CustomerID:     conv.CustomerID,
		CustomerEmail:  conv.CustomerEmail,
		Status:         string(conv.Status),
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if conv.Concern != nil {
		event.Concern = *conv.Concern
	}
	return event
}

// Noop is used when no webhook is configured.
type Noop struct{}

var _ conversation.Notifier = (*Noop)(nil)
var _ shipment.Notifier = (*Noop)(nil)

func (Noop) ConversationCreated(context.Context, *conversation.Conversation)       {}
func (Noop) ConversationStatusChanged(context.Context, *conversation.Conversation) {}
func (Noop) ShipmentCreated(context.Context, *shipment.ShipmentPackage)            {}
func (Noop) ShipmentCanceled(context.Context, *shipment.ShipmentPackage)           {}
