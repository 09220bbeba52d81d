package conversationrequests

// SendMessageRequest posts a message. Without a conversation id the
// customer's open conversation is used, or a new one is started.
type SendMessageRequest struct {
	ConversationID *string `json:"conversation_id,omitempty"`
	Body           string  `json:"body" binding:"required"`
}

// ReviewRequest carries the admin decision for a pending conversation.
type ReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

// ListConversationsQueryParams represents query parameters for listing conversations
type ListConversationsQueryParams struct {
	Status *string `form:"status"`
	Limit  *int    `form:"limit"`
	Order  *string `form:"order"`
}
