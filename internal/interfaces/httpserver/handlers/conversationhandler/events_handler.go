package conversationhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"freightdesk/services/support-api/internal/domain/conversation"
	"freightdesk/services/support-api/internal/infrastructure/hub"
	"freightdesk/services/support-api/internal/infrastructure/metrics"
	"freightdesk/services/support-api/internal/interfaces/httpserver/middlewares"
	conversationresponses "freightdesk/services/support-api/internal/interfaces/httpserver/responses/conversation"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

const sseHeartbeatInterval = 30 * time.Second

// eventPayload is the wire shape of one SSE data event.
type eventPayload struct {
	Type         string                                      `json:"type"`
	Conversation *conversationresponses.ConversationResponse `json:"conversation,omitempty"`
	Message      *conversationresponses.MessageResponse      `json:"message,omitempty"`
	OccurredAt   int64                                       `json:"occurred_at"`
}

// StreamEvents streams live conversation events over SSE until the
// client disconnects or the subscription is dropped.
func (h *ConversationHandler) StreamEvents(c *gin.Context, actor conversation.Actor, publicID string) error {
	ctx := c.Request.Context()

	// Access check doubles as an existence check.
	if _, err := h.conversationService.Get(ctx, actor, publicID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to open event stream")
	}

	flusher, ok := middlewares.PrepareSSE(c)
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeInternal,
			"streaming is not supported on this connection", nil, "9e2b5c07-4d81-4f36-a0c5-7b3e8d1f6a29")
	}

	events, cancel := h.events.Subscribe(publicID)
	defer cancel()

	metrics.ActiveSubscriptions.Inc()
	defer metrics.ActiveSubscriptions.Dec()

	// Open the stream immediately so proxies flush headers.
	if err := writeSSEComment(c, flusher, "connected"); err != nil {
		return nil
	}

	heartbeat := time.NewTicker(sseHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, open := <-events:
			if !open {
				// Subscriber was dropped for falling behind.
				return nil
			}
			if err := writeSSEEvent(c, flusher, ev); err != nil {
				return nil
			}
		case <-heartbeat.C:
			if err := writeSSEComment(c, flusher, "ping"); err != nil {
				return nil
			}
		}
	}
}

func writeSSEEvent(c *gin.Context, flusher http.Flusher, ev hub.Event) error {
	payload := eventPayload{
		Type:       ev.Type,
		OccurredAt: ev.OccurredAt.Unix(),
	}
	if ev.Conversation != nil {
		payload.Conversation = conversationresponses.NewConversationResponse(ev.Conversation)
	}
	if ev.Message != nil {
		msg := conversationresponses.NewMessageResponse(ev.ConversationID, ev.Message)
		payload.Message = &msg
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := c.Writer.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := c.Writer.Write(data); err != nil {
		return err
	}
	if _, err := c.Writer.Write([]byte("\n\n")); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func writeSSEComment(c *gin.Context, flusher http.Flusher, comment string) error {
	if _, err := c.Writer.Write([]byte(": " + comment + "\n\n")); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
