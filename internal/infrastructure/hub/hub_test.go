package hub

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"freightdesk/services/support-api/internal/domain/conversation"
)

func testConversation(publicID string) *conversation.Conversation {
	return &conversation.Conversation{
		PublicID:   publicID,
		CustomerID: "cust-1",
		Status:     conversation.StatusPending,
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	h := New(zerolog.Nop())
	conv := testConversation("conv_abc123")

	ch, cancel := h.Subscribe(conv.PublicID)
	defer cancel()

	h.PublishConversationUpdated(conv)

	select {
	case event := <-ch:
		if event.Type != EventTypeConversationUpdated {
			t.Fatalf("event type = %q, want %q", event.Type, EventTypeConversationUpdated)
		}
		if event.ConversationID != conv.PublicID {
			t.Fatalf("conversation id = %q, want %q", event.ConversationID, conv.PublicID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestPublishScopedToConversation(t *testing.T) {
	h := New(zerolog.Nop())

	chA, cancelA := h.Subscribe("conv_aaa111")
	defer cancelA()
	chB, cancelB := h.Subscribe("conv_bbb222")
	defer cancelB()

	h.PublishMessageCreated(testConversation("conv_aaa111"), &conversation.Message{
		PublicID: "msg_1",
		Body:     "hello",
	})

	select {
	case event := <-chA:
		if event.Type != EventTypeMessageCreated {
			t.Fatalf("event type = %q, want %q", event.Type, EventTypeMessageCreated)
		}
		if event.Message == nil || event.Message.Body != "hello" {
			t.Fatal("message payload missing")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case event := <-chB:
		t.Fatalf("unexpected event on other conversation: %v", event.Type)
	default:
	}
}

func TestCancelClosesChannel(t *testing.T) {
	h := New(zerolog.Nop())

	ch, cancel := h.Subscribe("conv_abc123")
	cancel()

	if _, open := <-ch; open {
		t.Fatal("channel still open after cancel")
	}
	if got := h.SubscriberCount("conv_abc123"); got != 0 {
		t.Fatalf("subscriber count = %d, want 0", got)
	}

	// Double cancel must be safe.
	cancel()
}

func TestSlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	h := New(zerolog.Nop())
	conv := testConversation("conv_abc123")

	_, cancel := h.Subscribe(conv.PublicID)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBufferSize*2; i++ {
			h.PublishConversationUpdated(conv)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}
