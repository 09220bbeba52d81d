package conversationhandler

import (
	"context"
	"strings"

	"freightdesk/services/support-api/internal/domain"
	"freightdesk/services/support-api/internal/domain/conversation"
	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/infrastructure/hub"
	"freightdesk/services/support-api/internal/infrastructure/metrics"
	conversationrequests "freightdesk/services/support-api/internal/interfaces/httpserver/requests/conversation"
	conversationresponses "freightdesk/services/support-api/internal/interfaces/httpserver/responses/conversation"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

// ConversationHandler handles conversation-related HTTP requests
type ConversationHandler struct {
	conversationService *conversation.Service
	events              *hub.Hub
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversationService *conversation.Service, events *hub.Hub) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService, events: events}
}

// ActorFromPrincipal maps the authenticated principal onto a domain actor.
func ActorFromPrincipal(p domain.Principal) conversation.Actor {
	first := p.Name
	last := ""
	if parts := strings.Fields(p.Name); len(parts) > 1 {
		first = parts[0]
		last = strings.Join(parts[1:], " ")
	}
	return conversation.Actor{
		ID:        p.ID,
		FirstName: first,
		LastName:  last,
		Email:     p.Email,
		Admin:     p.IsAdmin(),
	}
}

// senderLabel maps the acting party onto the metric sender dimension.
func senderLabel(actor conversation.Actor) string {
	if actor.Admin {
		return "admin"
	}
	return "customer"
}

// SendMessage posts a message, starting or reusing a conversation as needed.
func (h *ConversationHandler) SendMessage(
	ctx context.Context,
	actor conversation.Actor,
	req conversationrequests.SendMessageRequest,
) (*conversationresponses.SendMessageResponse, error) {
	result, err := h.conversationService.SendMessage(ctx, actor, req.ConversationID, req.Body)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeCooldown) {
			metrics.RecordCooldownRejection(cooldownStatus(err))
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to send message")
	}
	if result == nil {
		// Blank bodies are silently ignored.
		return nil, nil
	}
	if result.Created {
		metrics.ConversationsCreatedTotal.Inc()
	}
	metrics.MessagesCreatedTotal.WithLabelValues(senderLabel(actor)).Inc()
	return conversationresponses.NewSendMessageResponse(result), nil
}

// Review applies an admin approve/reject decision to a pending conversation.
func (h *ConversationHandler) Review(
	ctx context.Context,
	actor conversation.Actor,
	conversationID string,
	req conversationrequests.ReviewRequest,
) (*conversationresponses.ConversationResponse, error) {
	conv, err := h.conversationService.Review(ctx, actor, conversationID, conversation.ReviewDecision(req.Decision))
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to review conversation")
	}
	metrics.RecordTransition(string(conversation.StatusPending), string(conv.Status))
	return conversationresponses.NewConversationResponse(conv), nil
}

// End closes an approved or pending conversation.
func (h *ConversationHandler) End(
	ctx context.Context,
	actor conversation.Actor,
	conversationID string,
) (*conversationresponses.ConversationResponse, error) {
	conv, err := h.conversationService.End(ctx, actor, conversationID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to end conversation")
	}
	metrics.RecordTransition("", string(conv.Status))
	return conversationresponses.NewConversationResponse(conv), nil
}

// Get retrieves a conversation visible to the actor.
func (h *ConversationHandler) Get(
	ctx context.Context,
	actor conversation.Actor,
	conversationID string,
) (*conversationresponses.ConversationResponse, error) {
	conv, err := h.conversationService.Get(ctx, actor, conversationID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get conversation")
	}
	return conversationresponses.NewConversationResponse(conv), nil
}

// List returns conversations scoped to the actor.
func (h *ConversationHandler) List(
	ctx context.Context,
	actor conversation.Actor,
	status *string,
	pagination *query.Pagination,
) (*conversationresponses.ConversationListResponse, error) {
	filter := conversation.Filter{}
	if status != nil && *status != "" {
		s := conversation.Status(*status)
		filter.Status = &s
	}

	conversations, total, err := h.conversationService.List(ctx, actor, filter, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list conversations")
	}

	hasMore := int64(pagination.EffectiveOffset()+len(conversations)) < total
	return conversationresponses.NewConversationListResponse(conversations, hasMore, total), nil
}

// ListMessages returns a conversation's message page.
func (h *ConversationHandler) ListMessages(
	ctx context.Context,
	actor conversation.Actor,
	conversationID string,
	pagination *query.Pagination,
) (*conversationresponses.MessageListResponse, error) {
	messages, err := h.conversationService.ListMessages(ctx, actor, conversationID, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list messages")
	}
	hasMore := len(messages) == pagination.EffectiveLimit(100, 500)
	return conversationresponses.NewMessageListResponse(conversationID, messages, hasMore), nil
}

// Active reports the actor's current support state, including any
// cool-down in force.
func (h *ConversationHandler) Active(
	ctx context.Context,
	actor conversation.Actor,
) (*conversationresponses.ActiveStateResponse, error) {
	state, err := h.conversationService.ActiveForCustomer(ctx, actor)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve active state")
	}
	return conversationresponses.NewActiveStateResponse(state), nil
}

func cooldownStatus(err error) string {
	if platformErr := platformerrors.GetPlatformError(err); platformErr != nil {
		for _, key := range []string{"status", "previous_status"} {
			if status, ok := platformErr.Context[key].(string); ok {
				return status
			}
		}
	}
	return "unknown"
}
