package conversation

import (
	"context"
	"fmt"
	"time"

	"freightdesk/services/support-api/internal/domain/query"
)

// ===============================================
// Conversation Types
// ===============================================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusEnded    Status = "ended"
	StatusRejected Status = "rejected"

	// StatusFAQChat is a legacy value that still exists in old rows.
	// New transitions never produce it; the janitor treats it as deletable.
	StatusFAQChat Status = "faqchat"
)

// CurrentSchemaVersion is stamped onto every conversation row this
// service writes. Rows with older versions are readable but are only
// upgraded when rewritten.
const CurrentSchemaVersion = 1

// SystemSenderID is the reserved sender for service-generated messages.
// It can never collide with a user public ID because user IDs always
// carry the "user_" prefix.
const SystemSenderID = "system"

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusEnded || s == StatusRejected
}

// CanTransitionTo enforces the conversation state machine:
// pending -> approved | rejected | ended, approved -> ended.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusEnded
	case StatusApproved:
		return next == StatusEnded
	default:
		return false
	}
}

// JanitorDeletableStatuses lists statuses the expired-conversation sweep
// may remove. Approved conversations are never aged out.
var JanitorDeletableStatuses = []Status{StatusPending, StatusEnded, StatusRejected, StatusFAQChat}

// ===============================================
// Conversation Structure
// ===============================================

type Conversation struct {
	ID       uint   `json:"-"`
	PublicID string `json:"id"`     // String ID like "conv_abc123"
	Object   string `json:"object"` // Always "conversation"

	// Customer identity, denormalized at creation time so the record
	// stays renderable even if the user row changes later.
	CustomerID        string `json:"customer_id"`
	CustomerFirstName string `json:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name"`
	CustomerEmail     string `json:"customer_email"`

	// Assigned admin, recorded on approval. At most one.
	AdminID        *string `json:"admin_id,omitempty"`
	AdminFirstName *string `json:"admin_first_name,omitempty"`
	AdminLastName  *string `json:"admin_last_name,omitempty"`

	Status          Status    `json:"status"`
	StatusChangedAt time.Time `json:"status_changed_at"`

	// Concern holds the customer's first substantive message.
	Concern *string `json:"concern,omitempty"`
	// LastMessage is a denormalized preview of the newest message.
	LastMessage *string `json:"last_message,omitempty"`

	SchemaVersion int       `json:"schema_version"`
	Messages      []Message `json:"messages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single append-only entry in a conversation.
type Message struct {
	ID             uint      `json:"-"`
	PublicID       string    `json:"id"` // String ID like "msg_abc123"
	ConversationID uint      `json:"-"`
	SenderID       string    `json:"sender_id"` // user public ID or SystemSenderID
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsSystem reports whether the message was generated by the service.
func (m *Message) IsSystem() bool {
	return m.SenderID == SystemSenderID
}

// ===============================================
// Conversation Repository
// ===============================================

type Filter struct {
	ID         *uint
	PublicID   *string
	CustomerID *string
	AdminID    *string
	Status     *Status
}

type Repository interface {
	Create(ctx context.Context, conversation *Conversation) error
	FindByFilter(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*Conversation, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	// LatestByCustomer returns the customer's most recently created
	// conversation, or nil when the customer has none.
	LatestByCustomer(ctx context.Context, customerID string) (*Conversation, error)
	Update(ctx context.Context, conversation *Conversation) error
	// DeleteWithMessages removes the conversation and its messages in
	// one transaction. Deleting an already absent row is not an error.
	DeleteWithMessages(ctx context.Context, id uint) error

	AddMessage(ctx context.Context, conversationID uint, message *Message) error
	ListMessages(ctx context.Context, conversationID uint, pagination *query.Pagination) ([]*Message, error)

	// Janitor listings.
	FindExpired(ctx context.Context, olderThan time.Time, statuses []Status) ([]*Conversation, error)
	FindOrphaned(ctx context.Context) ([]*Conversation, error)
}

// ===============================================
// Factory and Behavior
// ===============================================

// NewConversation creates a pending conversation for the given customer.
func NewConversation(publicID string, customer Actor, concern string) *Conversation {
	now := time.Now()

	conv := &Conversation{
		PublicID:          publicID,
		Object:            "conversation",
		CustomerID:        customer.ID,
		CustomerFirstName: customer.FirstName,
		CustomerLastName:  customer.LastName,
		CustomerEmail:     customer.Email,
		Status:            StatusPending,
		StatusChangedAt:   now,
		SchemaVersion:     CurrentSchemaVersion,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if concern != "" {
		conv.Concern = &concern
	}
	return conv
}

// TransitionTo moves the conversation to the next status, recording the
// transition instant. The instant is persisted so cool-downs survive
// process and client restarts.
func (c *Conversation) TransitionTo(next Status, now time.Time) error {
	if !c.Status.CanTransitionTo(next) {
		return fmt.Errorf("invalid status transition: %s -> %s", c.Status, next)
	}
	c.Status = next
	c.StatusChangedAt = now
	c.UpdatedAt = now
	return nil
}

// AssignAdmin records the reviewing admin's identity on the conversation.
func (c *Conversation) AssignAdmin(admin Actor) {
	id := admin.ID
	first := admin.FirstName
	last := admin.LastName
	c.AdminID = &id
	c.AdminFirstName = &first
	c.AdminLastName = &last
}

// IsOrphaned reports whether the record carries no customer identity.
// Interrupted writes in the legacy system left such rows behind.
func (c *Conversation) IsOrphaned() bool {
	return c.CustomerID == ""
}

// CustomerName returns the customer's display name.
func (c *Conversation) CustomerName() string {
	if c.CustomerLastName == "" {
		return c.CustomerFirstName
	}
	return c.CustomerFirstName + " " + c.CustomerLastName
}

// Actor is the normalized identity of a user acting on a conversation.
type Actor struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Admin     bool
}
