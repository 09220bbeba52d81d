package dbschema

import (
	"time"

	"freightdesk/services/support-api/internal/domain/conversation"
	"freightdesk/services/support-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(ConversationMessage{})
}

// Conversation represents the database schema for support conversations.
// Customer identity is denormalized onto the row; an empty customer_id
// marks a legacy orphan row the janitor may remove.
type Conversation struct {
	BaseModel
	PublicID string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Object   string `gorm:"type:varchar(50);not null;default:'conversation'"`

	CustomerID        string `gorm:"type:varchar(64);index:idx_conversation_customer_created;not null;default:''"`
	CustomerFirstName string `gorm:"type:varchar(100);not null;default:''"`
	CustomerLastName  string `gorm:"type:varchar(100);not null;default:''"`
	CustomerEmail     string `gorm:"type:varchar(320);not null;default:''"`

	AdminID        *string `gorm:"type:varchar(64);index"`
	AdminFirstName *string `gorm:"type:varchar(100)"`
	AdminLastName  *string `gorm:"type:varchar(100)"`

	Status          conversation.Status `gorm:"type:varchar(20);index:idx_conversation_status;not null;default:'pending'"`
	StatusChangedAt time.Time           `gorm:"not null"`

	Concern     *string `gorm:"type:text"`
	LastMessage *string `gorm:"type:varchar(255)"`

	SchemaVersion int `gorm:"not null;default:1"`

	Messages []ConversationMessage `gorm:"foreignKey:ConversationID"`
}

// ConversationMessage represents the database schema for messages.
// Rows are append-only and ordered by created_at.
type ConversationMessage struct {
	BaseModel
	ConversationID uint         `gorm:"index:idx_message_conversation_created;not null"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`
	PublicID       string       `gorm:"type:varchar(50);uniqueIndex;not null"`
	SenderID       string       `gorm:"type:varchar(64);not null"`
	Body           string       `gorm:"type:text;not null"`
}

// NewSchemaConversation creates a database schema from a domain conversation
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID:          c.PublicID,
		Object:            c.Object,
		CustomerID:        c.CustomerID,
		CustomerFirstName: c.CustomerFirstName,
		CustomerLastName:  c.CustomerLastName,
		CustomerEmail:     c.CustomerEmail,
		AdminID:           c.AdminID,
		AdminFirstName:    c.AdminFirstName,
		AdminLastName:     c.AdminLastName,
		Status:            c.Status,
		StatusChangedAt:   c.StatusChangedAt,
		Concern:           c.Concern,
		LastMessage:       c.LastMessage,
		SchemaVersion:     c.SchemaVersion,
	}
}

// EtoD converts database schema to a domain conversation (Entity to Domain)
func (c *Conversation) EtoD() *conversation.Conversation {
	conv := &conversation.Conversation{
		ID:                c.ID,
		PublicID:          c.PublicID,
		Object:            c.Object,
		CustomerID:        c.CustomerID,
		CustomerFirstName: c.CustomerFirstName,
		CustomerLastName:  c.CustomerLastName,
		CustomerEmail:     c.CustomerEmail,
		AdminID:           c.AdminID,
		AdminFirstName:    c.AdminFirstName,
		AdminLastName:     c.AdminLastName,
		Status:            c.Status,
		StatusChangedAt:   c.StatusChangedAt,
		Concern:           c.Concern,
		LastMessage:       c.LastMessage,
		SchemaVersion:     c.SchemaVersion,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}

	if len(c.Messages) > 0 {
		conv.Messages = make([]conversation.Message, 0, len(c.Messages))
		for _, m := range c.Messages {
			conv.Messages = append(conv.Messages, *m.EtoD())
		}
	}

	return conv
}

// NewSchemaConversationMessage creates a database schema from a domain message
func NewSchemaConversationMessage(m *conversation.Message) *ConversationMessage {
	return &ConversationMessage{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		ConversationID: m.ConversationID,
		PublicID:       m.PublicID,
		SenderID:       m.SenderID,
		Body:           m.Body,
	}
}

// EtoD converts database schema to a domain message (Entity to Domain)
func (m *ConversationMessage) EtoD() *conversation.Message {
	return &conversation.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}
