package conversation

import (
	"context"
	"math"
	"time"

	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/utils/idgen"
	"freightdesk/services/support-api/internal/utils/platformerrors"
	"freightdesk/services/support-api/internal/utils/stringutils"
)

// lastMessagePreviewLength bounds the denormalized preview on the
// conversation row.
const lastMessagePreviewLength = 160

// intakePrompt is appended by the service as the second message of
// every new conversation.
const intakePrompt = "Thanks for reaching out. Please describe your issue in as much detail as you can. A support agent will review your request shortly."

// EventPublisher receives conversation change events for live subscribers.
type EventPublisher interface {
	PublishConversationUpdated(conv *Conversation)
	PublishMessageCreated(conv *Conversation, message *Message)
}

// Notifier sends email notifications about conversation activity.
// Implementations must not block the caller on delivery.
type Notifier interface {
	ConversationCreated(ctx context.Context, conv *Conversation)
	ConversationStatusChanged(ctx context.Context, conv *Conversation)
}

// Service handles business logic for conversations
type Service struct {
	repo      Repository
	validator *Validator
	publisher EventPublisher
	notifier  Notifier
	now       func() time.Time
}

// NewService creates a new conversation service
func NewService(repo Repository, publisher EventPublisher, notifier Notifier) *Service {
	return &Service{
		repo:      repo,
		validator: NewValidator(nil), // Use default config
		publisher: publisher,
		notifier:  notifier,
		now:       time.Now,
	}
}

// SendMessageResult reports what a SendMessage call did.
type SendMessageResult struct {
	Conversation *Conversation
	Messages     []*Message
	Created      bool
}

// SendMessage appends a customer message to an open conversation, or
// opens a new one when no conversation reference is supplied. A blank
// body is a no-op and returns a nil result without error.
func (s *Service) SendMessage(ctx context.Context, customer Actor, conversationPublicID *string, body string) (*SendMessageResult, error) {
	if IsBlank(body) {
		return nil, nil
	}

	if err := s.validator.ValidateMessageBody(body); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid message body", err, "7f3c2a91-48d6-4e0b-9a52-c1d8e4f6a203")
	}

	if conversationPublicID == nil || *conversationPublicID == "" {
		return s.startConversation(ctx, customer, body)
	}

	if err := s.validator.ValidateConversationID(*conversationPublicID); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid conversation ID", err, "b94d1c37-62f5-4a8e-b0d9-3e7a5c218f46")
	}

	conv, err := s.repo.FindByPublicID(ctx, *conversationPublicID)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			// The referenced conversation is gone, most likely removed
			// by the janitor. The client clears its local reference and
			// the retry takes the creation path.
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
				"conversation no longer exists", err, "e2a84f09-1b63-4c7d-8e5f-6a9d0b3c712e",
				map[string]any{"stale_reference": true})
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}

	if !customer.Admin && conv.CustomerID != customer.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "5c1e9d72-3f48-4b6a-a0c3-8d2e7f415b90")
	}

	if conv.Status.IsTerminal() {
		return nil, s.closedConversationError(ctx, conv)
	}

	return s.appendMessage(ctx, customer, conv, body)
}

// startConversation opens a new pending conversation after checking the
// cool-down imposed by the customer's most recent terminal conversation.
func (s *Service) startConversation(ctx context.Context, customer Actor, body string) (*SendMessageResult, error) {
	latest, err := s.repo.LatestByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up latest conversation")
	}

	if latest != nil {
		if !latest.Status.IsTerminal() {
			// The customer already has an open conversation; route the
			// message there instead of opening a duplicate.
			return s.appendMessage(ctx, customer, latest, body)
		}
		if policy, ok := CooldownFor(latest.Status, latest.StatusChangedAt); ok && policy.Active(s.now()) {
			return nil, s.cooldownError(ctx, latest, policy)
		}
	}

	publicID, err := idgen.GenerateSecureID("conv", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate conversation ID")
	}

	conv := NewConversation(publicID, customer, body)
	preview := stringutils.GeneratePreview(body, lastMessagePreviewLength)
	conv.LastMessage = &preview

	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}

	customerMsg, err := s.newMessage(conv.ID, customer.ID, body)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to build message")
	}
	systemMsg, err := s.newMessage(conv.ID, SystemSenderID, intakePrompt)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to build message")
	}

	for _, msg := range []*Message{customerMsg, systemMsg} {
		if err := s.repo.AddMessage(ctx, conv.ID, msg); err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to append message")
		}
	}
	conv.Messages = []Message{*customerMsg, *systemMsg}

	if s.publisher != nil {
		s.publisher.PublishConversationUpdated(conv)
		s.publisher.PublishMessageCreated(conv, customerMsg)
		s.publisher.PublishMessageCreated(conv, systemMsg)
	}
	if s.notifier != nil {
		s.notifier.ConversationCreated(ctx, conv)
	}

	return &SendMessageResult{
		Conversation: conv,
		Messages:     []*Message{customerMsg, systemMsg},
		Created:      true,
	}, nil
}

// appendMessage appends to an open conversation and refreshes the
// denormalized fields on the conversation row.
func (s *Service) appendMessage(ctx context.Context, sender Actor, conv *Conversation, body string) (*SendMessageResult, error) {
	msg, err := s.newMessage(conv.ID, sender.ID, body)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to build message")
	}

	if err := s.repo.AddMessage(ctx, conv.ID, msg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to append message")
	}

	preview := stringutils.GeneratePreview(body, lastMessagePreviewLength)
	conv.LastMessage = &preview
	if conv.Concern == nil && sender.ID == conv.CustomerID {
		concern := body
		conv.Concern = &concern
	}
	conv.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation")
	}

	if s.publisher != nil {
		s.publisher.PublishConversationUpdated(conv)
		s.publisher.PublishMessageCreated(conv, msg)
	}

	return &SendMessageResult{
		Conversation: conv,
		Messages:     []*Message{msg},
	}, nil
}

// ReviewDecision is an admin's verdict on a pending conversation.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// Review applies an admin decision to a pending conversation. Approval
// records the admin's identity on the record; rejection does not.
func (s *Service) Review(ctx context.Context, admin Actor, publicID string, decision ReviewDecision) (*Conversation, error) {
	if !admin.Admin {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "admin role required", nil, "0d6b4a28-9e13-4f57-b8c0-2a5d7e9f3816")
	}

	conv, err := s.getByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if conv.Status != StatusPending {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "conversation is not pending review", nil, "48f0c3e7-5a29-4d1b-96e8-d7b2a4c5f013")
	}

	now := s.now()
	switch decision {
	case DecisionApprove:
		if err := conv.TransitionTo(StatusApproved, now); err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "invalid status transition", err, "9a7e1d50-3c84-4b2f-a6d9-0e5c8f274b31")
		}
		conv.AssignAdmin(admin)
	case DecisionReject:
		if err := conv.TransitionTo(StatusRejected, now); err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "invalid status transition", err, "c5b28e94-7d06-4a3f-81b5-f4e9a2d6c708")
		}
	default:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "decision must be approve or reject", nil, "31d9f6a2-8b47-4e0c-95a1-6c3e0d8b2f54")
	}

	if err := s.repo.Update(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation")
	}

	s.afterTransition(ctx, conv)
	return conv, nil
}

// End closes a pending or approved conversation.
func (s *Service) End(ctx context.Context, admin Actor, publicID string) (*Conversation, error) {
	if !admin.Admin {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "admin role required", nil, "6e2a9c04-1f5b-4d78-8a36-b9d4e7f0c125")
	}

	conv, err := s.getByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if err := conv.TransitionTo(StatusEnded, s.now()); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "conversation cannot be ended", err, "f81b5d36-4a92-4c0e-b7d1-28e6a9c3f570")
	}

	if err := s.repo.Update(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation")
	}

	s.afterTransition(ctx, conv)
	return conv, nil
}

// Get retrieves a conversation with its messages, scoped to the caller.
func (s *Service) Get(ctx context.Context, actor Actor, publicID string) (*Conversation, error) {
	conv, err := s.getByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if !actor.Admin && conv.CustomerID != actor.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "2b7f4e19-8d53-4a06-9c2e-571a0d8b64f3")
	}

	messages, err := s.repo.ListMessages(ctx, conv.ID, &query.Pagination{Order: query.OrderAsc})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list messages")
	}
	conv.Messages = make([]Message, 0, len(messages))
	for _, m := range messages {
		conv.Messages = append(conv.Messages, *m)
	}

	return conv, nil
}

// List retrieves conversations for the caller. Admins see every
// conversation and may filter; customers only ever see their own.
func (s *Service) List(ctx context.Context, actor Actor, filter Filter, pagination *query.Pagination) ([]*Conversation, int64, error) {
	if !actor.Admin {
		id := actor.ID
		filter = Filter{CustomerID: &id, Status: filter.Status}
	}

	conversations, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count conversations")
	}

	return conversations, total, nil
}

// ListMessages returns a page of messages for a conversation the caller
// can see, ordered oldest first.
func (s *Service) ListMessages(ctx context.Context, actor Actor, publicID string, pagination *query.Pagination) ([]*Message, error) {
	conv, err := s.getByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if !actor.Admin && conv.CustomerID != actor.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "a49c6e83-0b27-4f5d-8e1a-39d5c7b0f246")
	}

	if pagination == nil {
		pagination = &query.Pagination{}
	}
	if pagination.Order == "" {
		pagination.Order = query.OrderAsc
	}

	messages, err := s.repo.ListMessages(ctx, conv.ID, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list messages")
	}
	return messages, nil
}

// ActiveState is what a returning client needs to rehydrate: its latest
// conversation, if any, and the cool-down currently in force.
type ActiveState struct {
	Conversation *Conversation  `json:"conversation,omitempty"`
	Cooldown     *CooldownState `json:"cooldown,omitempty"`
}

// CooldownState is the wire-friendly view of an active cool-down.
type CooldownState struct {
	Status           Status    `json:"status"`
	RemainingSeconds int64     `json:"remaining_seconds"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// ActiveForCustomer returns the customer's most recent conversation and
// the computed cool-down state. Both fields may be nil.
func (s *Service) ActiveForCustomer(ctx context.Context, customer Actor) (*ActiveState, error) {
	latest, err := s.repo.LatestByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up latest conversation")
	}

	state := &ActiveState{}
	if latest == nil {
		return state, nil
	}

	now := s.now()
	if policy, ok := CooldownFor(latest.Status, latest.StatusChangedAt); ok && policy.Active(now) {
		state.Cooldown = &CooldownState{
			Status:           latest.Status,
			RemainingSeconds: ceilSeconds(policy.Remaining(now)),
			ExpiresAt:        policy.ExpiresAt(),
		}
	}

	if !latest.Status.IsTerminal() {
		messages, err := s.repo.ListMessages(ctx, latest.ID, &query.Pagination{Order: query.OrderAsc})
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list messages")
		}
		latest.Messages = make([]Message, 0, len(messages))
		for _, m := range messages {
			latest.Messages = append(latest.Messages, *m)
		}
		state.Conversation = latest
	}

	return state, nil
}

// ===============================================
// Internal helpers
// ===============================================

func (s *Service) getByPublicID(ctx context.Context, publicID string) (*Conversation, error) {
	if err := s.validator.ValidateConversationID(publicID); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid conversation ID", err, "d03f7b58-2e91-4c6a-b4f8-17a9e5d2c086")
	}

	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "conversation not found")
	}
	return conv, nil
}

func (s *Service) newMessage(conversationID uint, senderID, body string) (*Message, error) {
	publicID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return nil, err
	}
	return &Message{
		PublicID:       publicID,
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      s.now(),
	}, nil
}

func (s *Service) afterTransition(ctx context.Context, conv *Conversation) {
	if s.publisher != nil {
		s.publisher.PublishConversationUpdated(conv)
	}
	if s.notifier != nil {
		s.notifier.ConversationStatusChanged(ctx, conv)
	}
}

func (s *Service) cooldownError(ctx context.Context, conv *Conversation, policy CooldownPolicy) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeCooldown,
		"a new conversation cannot be started yet", nil, "84c1f9d6-5b30-4e2a-87d4-c6f2a0b9e153",
		map[string]any{
			"retry_after_seconds": ceilSeconds(policy.Remaining(s.now())),
			"previous_status":     string(conv.Status),
		})
}

func (s *Service) closedConversationError(ctx context.Context, conv *Conversation) error {
	fields := map[string]any{"status": string(conv.Status)}
	if policy, ok := CooldownFor(conv.Status, conv.StatusChangedAt); ok {
		fields["retry_after_seconds"] = ceilSeconds(policy.Remaining(s.now()))
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeCooldown,
		"conversation is closed", nil, "1f6d3a87-9c42-4b0e-a5d8-e2b7c4f90a61", fields)
}

func ceilSeconds(d time.Duration) int64 {
	return int64(math.Ceil(d.Seconds()))
}
