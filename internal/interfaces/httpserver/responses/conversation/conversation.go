package conversationresponses

import (
	"freightdesk/services/support-api/internal/domain/conversation"
)

// ConversationResponse is the wire shape of a conversation.
type ConversationResponse struct {
	ID              string  `json:"id"`
	Object          string  `json:"object"`
	Status          string  `json:"status"`
	CustomerID      string  `json:"customer_id"`
	CustomerName    string  `json:"customer_name,omitempty"`
	AdminID         *string `json:"admin_id,omitempty"`
	AdminName       *string `json:"admin_name,omitempty"`
	Concern         *string `json:"concern,omitempty"`
	LastMessage     *string `json:"last_message,omitempty"`
	StatusChangedAt int64   `json:"status_changed_at"`
	CreatedAt       int64   `json:"created_at"`
}

// MessageResponse is the wire shape of a conversation message.
type MessageResponse struct {
	ID             string `json:"id"`
	Object         string `json:"object"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	System         bool   `json:"system"`
	Body           string `json:"body"`
	CreatedAt      int64  `json:"created_at"`
}

// SendMessageResponse is returned by the send endpoint.
type SendMessageResponse struct {
	Conversation *ConversationResponse `json:"conversation"`
	Messages     []MessageResponse     `json:"messages"`
	Created      bool                  `json:"created"`
}

// ConversationListResponse represents a paginated list of conversations
type ConversationListResponse struct {
	Object  string                 `json:"object"`
	Data    []ConversationResponse `json:"data"`
	FirstID string                 `json:"first_id"`
	LastID  string                 `json:"last_id"`
	HasMore bool                   `json:"has_more"`
	Total   int64                  `json:"total"`
}

// MessageListResponse represents a conversation's message page.
type MessageListResponse struct {
	Object  string            `json:"object"`
	Data    []MessageResponse `json:"data"`
	HasMore bool              `json:"has_more"`
}

// ActiveStateResponse describes the customer's current support state.
type ActiveStateResponse struct {
	Conversation *ConversationResponse `json:"conversation,omitempty"`
	Messages     []MessageResponse     `json:"messages,omitempty"`
	Cooldown     *CooldownResponse     `json:"cooldown,omitempty"`
}

// CooldownResponse reports an active wait window.
type CooldownResponse struct {
	Status           string `json:"status"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	ExpiresAt        int64  `json:"expires_at"`
}

// NewConversationResponse creates a response from a domain conversation
func NewConversationResponse(conv *conversation.Conversation) *ConversationResponse {
	if conv == nil {
		return nil
	}
	response := &ConversationResponse{
		ID:              conv.PublicID,
		Object:          "conversation",
		Status:          string(conv.Status),
		CustomerID:      conv.CustomerID,
		CustomerName:    conv.CustomerName(),
		AdminID:         conv.AdminID,
		Concern:         conv.Concern,
		LastMessage:     conv.LastMessage,
		StatusChangedAt: conv.StatusChangedAt.Unix(),
		CreatedAt:       conv.CreatedAt.Unix(),
	}
	if conv.AdminFirstName != nil {
		name := *conv.AdminFirstName
		if conv.AdminLastName != nil && *conv.AdminLastName != "" {
			name += " " + *conv.AdminLastName
		}
		response.AdminName = &name
	}
	return response
}

// NewMessageResponse creates a response from a domain message
func NewMessageResponse(conversationID string, msg *conversation.Message) MessageResponse {
	return MessageResponse{
		ID:             msg.PublicID,
		Object:         "conversation.message",
		ConversationID: conversationID,
		SenderID:       msg.SenderID,
		System:         msg.IsSystem(),
		Body:           msg.Body,
		CreatedAt:      msg.CreatedAt.Unix(),
	}
}

// NewSendMessageResponse creates the send endpoint response
func NewSendMessageResponse(result *conversation.SendMessageResult) *SendMessageResponse {
	messages := make([]MessageResponse, 0, len(result.Messages))
	for _, msg := range result.Messages {
		messages = append(messages, NewMessageResponse(result.Conversation.PublicID, msg))
	}
	return &SendMessageResponse{
		Conversation: NewConversationResponse(result.Conversation),
		Messages:     messages,
		Created:      result.Created,
	}
}

// NewConversationListResponse creates a conversation list response
func NewConversationListResponse(conversations []*conversation.Conversation, hasMore bool, total int64) *ConversationListResponse {
	data := make([]ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		if conv == nil {
			continue
		}
		data = append(data, *NewConversationResponse(conv))
	}

	firstID := ""
	lastID := ""
	if len(data) > 0 {
		firstID = data[0].ID
		lastID = data[len(data)-1].ID
	}

	return &ConversationListResponse{
		Object:  "list",
		Data:    data,
		FirstID: firstID,
		LastID:  lastID,
		HasMore: hasMore,
		Total:   total,
	}
}

// NewMessageListResponse creates a message list response
func NewMessageListResponse(conversationID string, messages []*conversation.Message, hasMore bool) *MessageListResponse {
	data := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		data = append(data, NewMessageResponse(conversationID, msg))
	}
	return &MessageListResponse{
		Object:  "list",
		Data:    data,
		HasMore: hasMore,
	}
}

// NewActiveStateResponse creates the active state response
func NewActiveStateResponse(state *conversation.ActiveState) *ActiveStateResponse {
	response := &ActiveStateResponse{}
	if state.Conversation != nil {
		response.Conversation = NewConversationResponse(state.Conversation)
		data := make([]MessageResponse, 0, len(state.Conversation.Messages))
		for i := range state.Conversation.Messages {
			data = append(data, NewMessageResponse(state.Conversation.PublicID, &state.Conversation.Messages[i]))
		}
		response.Messages = data
	}
	if state.Cooldown != nil {
		response.Cooldown = &CooldownResponse{
			Status:           string(state.Cooldown.Status),
			RemainingSeconds: state.Cooldown.RemainingSeconds,
			ExpiresAt:        state.Cooldown.ExpiresAt.Unix(),
		}
	}
	return response
}
