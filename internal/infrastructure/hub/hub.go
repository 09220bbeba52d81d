// Package hub fans out conversation events to live subscribers. It is
// an in-process broker. Subscribers that fall behind are dropped
// rather than allowed to block publishers.
package hub

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"freightdesk/services/support-api/internal/domain/conversation"
)

const (
	EventTypeConversationUpdated = "conversation.updated"
	EventTypeMessageCreated      = "message.created"

	subscriberBufferSize = 16
)

// Event is what subscribers receive over their channel.
type Event struct {
	Type           string                     `json:"type"`
	ConversationID string                     `json:"conversation_id"`
	Conversation   *conversation.Conversation `json:"conversation,omitempty"`
	Message        *conversation.Message      `json:"message,omitempty"`
	OccurredAt     time.Time                  `json:"occurred_at"`
}

type subscriber struct {
	id int64
	ch chan Event
}

// Hub routes events to per-conversation subscriber sets.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[int64]*subscriber
	nextID      int64
	logger      zerolog.Logger
}

var _ conversation.EventPublisher = (*Hub)(nil)

func New(logger zerolog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[int64]*subscriber),
		logger:      logger,
	}
}

// Subscribe registers a listener for one conversation. The returned
// cancel func must be called when the listener goes away; it closes
// the event channel.
func (h *Hub) Subscribe(conversationID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &subscriber{
		id: h.nextID,
		ch: make(chan Event, subscriberBufferSize),
	}

	set, ok := h.subscribers[conversationID]
	if !ok {
		set = make(map[int64]*subscriber)
		h.subscribers[conversationID] = set
	}
	set[sub.id] = sub

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		set, ok := h.subscribers[conversationID]
		if !ok {
			return
		}
		if _, ok := set[sub.id]; !ok {
			return
		}
		delete(set, sub.id)
		if len(set) == 0 {
			delete(h.subscribers, conversationID)
		}
		close(sub.ch)
	}

	return sub.ch, cancel
}

// SubscriberCount reports live listeners for a conversation.
func (h *Hub) SubscriberCount(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[conversationID])
}

func (h *Hub) PublishConversationUpdated(conv *conversation.Conversation) {
	h.publish(conv.PublicID, Event{
		Type:           EventTypeConversationUpdated,
		ConversationID: conv.PublicID,
		Conversation:   conv,
		OccurredAt:     time.Now().UTC(),
	})
}

func (h *Hub) PublishMessageCreated(conv *conversation.Conversation, message *conversation.Message) {
	h.publish(conv.PublicID, Event{
		Type:           EventTypeMessageCreated,
		ConversationID: conv.PublicID,
		Message:        message,
		OccurredAt:     time.Now().UTC(),
	})
}

// publish delivers without blocking. Full buffers mean the subscriber
// stopped draining, so the event is dropped and logged.
func (h *Hub) publish(conversationID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers[conversationID] {
		select {
		case sub.ch <- event:
		default:
			h.logger.Warn().
				Str("conversation_id", conversationID).
				Str("event_type", event.Type).
				Msg("dropping event for slow subscriber")
		}
	}
}
