package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	nextID        uint
	conversations map[uint]*Conversation
	messages      map[uint][]*Message

	findLatestErr error
	findErr       error
	createErr     error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		conversations: make(map[uint]*Conversation),
		messages:      make(map[uint][]*Message),
	}
}

func (m *mockRepository) Create(_ context.Context, conv *Conversation) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	conv.ID = m.nextID
	m.conversations[conv.ID] = conv
	return nil
}

func (m *mockRepository) FindByFilter(_ context.Context, filter Filter, _ *query.Pagination) ([]*Conversation, error) {
	var out []*Conversation
	for _, conv := range m.conversations {
		if filter.CustomerID != nil && conv.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && conv.Status != *filter.Status {
			continue
		}
		out = append(out, conv)
	}
	return out, nil
}

func (m *mockRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	list, err := m.FindByFilter(ctx, filter, nil)
	return int64(len(list)), err
}

func (m *mockRepository) FindByPublicID(ctx context.Context, publicID string) (*Conversation, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, conv := range m.conversations {
		if conv.PublicID == publicID {
			return conv, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"conversation not found", nil, "0c4f8a61-9d27-4e53-b8a0-f6d1c3e7a925")
}

func (m *mockRepository) LatestByCustomer(_ context.Context, customerID string) (*Conversation, error) {
	if m.findLatestErr != nil {
		return nil, m.findLatestErr
	}
	var latest *Conversation
	for _, conv := range m.conversations {
		if conv.CustomerID != customerID {
			continue
		}
		if latest == nil || conv.CreatedAt.After(latest.CreatedAt) || (conv.CreatedAt.Equal(latest.CreatedAt) && conv.ID > latest.ID) {
			latest = conv
		}
	}
	return latest, nil
}

func (m *mockRepository) Update(_ context.Context, conv *Conversation) error {
	if _, ok := m.conversations[conv.ID]; !ok {
		return errors.New("record not found")
	}
	m.conversations[conv.ID] = conv
	return nil
}

func (m *mockRepository) DeleteWithMessages(_ context.Context, id uint) error {
	delete(m.conversations, id)
	delete(m.messages, id)
	return nil
}

func (m *mockRepository) AddMessage(_ context.Context, conversationID uint, msg *Message) error {
	if _, ok := m.conversations[conversationID]; !ok {
		return errors.New("record not found")
	}
	msg.ID = uint(len(m.messages[conversationID]) + 1)
	m.messages[conversationID] = append(m.messages[conversationID], msg)
	return nil
}

func (m *mockRepository) ListMessages(_ context.Context, conversationID uint, pagination *query.Pagination) ([]*Message, error) {
	msgs := m.messages[conversationID]
	if after := pagination.EffectiveAfter(); after != "" {
		for i, msg := range msgs {
			if msg.PublicID == after {
				return msgs[i+1:], nil
			}
		}
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerRepository,
			platformerrors.ErrorTypeValidation, "unknown after cursor", nil, "3a9e1d64-7c25-4f80-b6d3-08e5a2c9f417")
	}
	return msgs, nil
}

func (m *mockRepository) FindExpired(_ context.Context, olderThan time.Time, statuses []Status) ([]*Conversation, error) {
	var out []*Conversation
	for _, conv := range m.conversations {
		if !conv.CreatedAt.Before(olderThan) {
			continue
		}
		for _, s := range statuses {
			if conv.Status == s {
				out = append(out, conv)
				break
			}
		}
	}
	return out, nil
}

func (m *mockRepository) FindOrphaned(_ context.Context) ([]*Conversation, error) {
	var out []*Conversation
	for _, conv := range m.conversations {
		if conv.IsOrphaned() {
			out = append(out, conv)
		}
	}
	return out, nil
}

// mockPublisher records published events.
type mockPublisher struct {
	updated  []string
	messages []string
}

func (m *mockPublisher) PublishConversationUpdated(conv *Conversation) {
	m.updated = append(m.updated, conv.PublicID)
}

func (m *mockPublisher) PublishMessageCreated(conv *Conversation, msg *Message) {
	m.messages = append(m.messages, msg.PublicID)
}

// mockNotifier records notification calls.
type mockNotifier struct {
	created     int
	transitions int
}

func (m *mockNotifier) ConversationCreated(context.Context, *Conversation)       { m.created++ }
func (m *mockNotifier) ConversationStatusChanged(context.Context, *Conversation) { m.transitions++ }

func newTestService(repo *mockRepository, at time.Time) (*Service, *mockPublisher, *mockNotifier) {
	pub := &mockPublisher{}
	not := &mockNotifier{}
	svc := NewService(repo, pub, not)
	svc.now = func() time.Time { return at }
	return svc, pub, not
}

var (
	testCustomer = Actor{ID: "user_cust01", FirstName: "Dana", LastName: "Velez", Email: "dana@example.com"}
	testAdmin    = Actor{ID: "user_admin1", FirstName: "Sam", LastName: "Okafor", Email: "sam@example.com", Admin: true}
)

func TestSendMessageBlankBodyIsNoOp(t *testing.T) {
	repo := newMockRepository()
	svc, pub, _ := newTestService(repo, time.Now())

	for _, body := range []string{"", "   ", "\n\t"} {
		result, err := svc.SendMessage(context.Background(), testCustomer, nil, body)
		if err != nil {
			t.Fatalf("SendMessage(%q) error = %v", body, err)
		}
		if result != nil {
			t.Fatalf("SendMessage(%q) result = %v, want nil", body, result)
		}
	}
	if len(repo.conversations) != 0 {
		t.Errorf("conversations created = %d, want 0", len(repo.conversations))
	}
	if len(pub.messages) != 0 {
		t.Errorf("events published = %d, want 0", len(pub.messages))
	}
}

func TestSendMessageCreatesPendingConversation(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, pub, not := newTestService(repo, now)

	result, err := svc.SendMessage(context.Background(), testCustomer, nil, "My pallet never arrived")
	if err != nil {
		t.Fatalf("SendMessage error = %v", err)
	}
	if !result.Created {
		t.Fatal("expected a new conversation")
	}

	conv := result.Conversation
	if conv.Status != StatusPending {
		t.Errorf("status = %s, want pending", conv.Status)
	}
	if conv.Concern == nil || *conv.Concern != "My pallet never arrived" {
		t.Errorf("concern not recorded: %v", conv.Concern)
	}
	if conv.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("schema version = %d, want %d", conv.SchemaVersion, CurrentSchemaVersion)
	}
	if conv.CustomerEmail != testCustomer.Email {
		t.Errorf("customer email = %q", conv.CustomerEmail)
	}

	msgs := repo.messages[conv.ID]
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2 (customer text plus intake prompt)", len(msgs))
	}
	if msgs[0].SenderID != testCustomer.ID {
		t.Errorf("first sender = %s, want customer", msgs[0].SenderID)
	}
	if !msgs[1].IsSystem() {
		t.Errorf("second sender = %s, want system", msgs[1].SenderID)
	}

	if not.created != 1 {
		t.Errorf("creation notifications = %d, want 1", not.created)
	}
	if len(pub.messages) != 2 {
		t.Errorf("message events = %d, want 2", len(pub.messages))
	}
}

func TestSendMessageAppendsToOpenConversation(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(repo, now)

	first, err := svc.SendMessage(context.Background(), testCustomer, nil, "first message")
	if err != nil {
		t.Fatalf("SendMessage error = %v", err)
	}

	id := first.Conversation.PublicID
	second, err := svc.SendMessage(context.Background(), testCustomer, &id, "more details here")
	if err != nil {
		t.Fatalf("append error = %v", err)
	}
	if second.Created {
		t.Error("append must not create a new conversation")
	}
	if second.Conversation.LastMessage == nil || *second.Conversation.LastMessage != "more details here" {
		t.Errorf("last message preview = %v", second.Conversation.LastMessage)
	}
	if len(repo.messages[first.Conversation.ID]) != 3 {
		t.Errorf("messages = %d, want 3", len(repo.messages[first.Conversation.ID]))
	}
}

func TestSendMessageWithoutIDReusesOpenConversation(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(repo, now)

	first, err := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
	if err != nil {
		t.Fatalf("SendMessage error = %v", err)
	}

	// Client lost its local reference but the conversation is still open.
	second, err := svc.SendMessage(context.Background(), testCustomer, nil, "sent after reload")
	if err != nil {
		t.Fatalf("SendMessage error = %v", err)
	}
	if second.Created {
		t.Error("open conversation must be reused, not duplicated")
	}
	if second.Conversation.ID != first.Conversation.ID {
		t.Errorf("routed to conversation %d, want %d", second.Conversation.ID, first.Conversation.ID)
	}
}

func TestSendMessageStaleReference(t *testing.T) {
	repo := newMockRepository()
	svc, _, _ := newTestService(repo, time.Now())

	stale := "conv_0123456789abcdef"
	_, err := svc.SendMessage(context.Background(), testCustomer, &stale, "hello")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
	perr := platformerrors.GetPlatformError(err)
	if perr.Context["stale_reference"] != true {
		t.Errorf("stale_reference detail missing: %v", perr.Context)
	}
}

func TestSendMessageRepositoryFailureIsNotStale(t *testing.T) {
	repo := newMockRepository()
	repo.findErr = platformerrors.NewError(context.Background(), platformerrors.LayerRepository,
		platformerrors.ErrorTypeDatabaseError, "database unavailable", errors.New("dial tcp: refused"),
		"7e1b4d92-5a08-4c36-9f7d-2b8e0c5a6134")
	svc, _, _ := newTestService(repo, time.Now())

	id := "conv_0123456789abcdef"
	_, err := svc.SendMessage(context.Background(), testCustomer, &id, "hello")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeDatabaseError) {
		t.Fatalf("error = %v, want DATABASE_ERROR", err)
	}
	if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Error("outage must not be reported as a missing conversation")
	}
	perr := platformerrors.GetPlatformError(err)
	if _, ok := perr.Context["stale_reference"]; ok {
		t.Errorf("stale_reference detail set on a repository failure: %v", perr.Context)
	}
}

func TestSendMessageToClosedConversation(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status Status
	}{
		{"ended conversation rejects sends", StatusEnded},
		{"rejected conversation rejects sends", StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			svc, _, _ := newTestService(repo, now)

			result, err := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
			if err != nil {
				t.Fatalf("SendMessage error = %v", err)
			}
			conv := result.Conversation
			conv.Status = tt.status
			conv.StatusChangedAt = now

			id := conv.PublicID
			_, err = svc.SendMessage(context.Background(), testCustomer, &id, "are you there?")
			if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeCooldown) {
				t.Fatalf("error = %v, want COOLDOWN", err)
			}
			perr := platformerrors.GetPlatformError(err)
			if _, ok := perr.Context["retry_after_seconds"]; !ok {
				t.Errorf("retry_after_seconds detail missing: %v", perr.Context)
			}
		})
	}
}

func TestSendMessageCooldownGuard(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		status    Status
		elapsed   time.Duration
		wantBlock bool
	}{
		{"rejected inside cooldown", StatusRejected, 4 * time.Minute, true},
		{"rejected after cooldown", StatusRejected, 11 * time.Minute, false},
		{"ended inside cooldown", StatusEnded, 2 * time.Minute, true},
		{"ended after cooldown", StatusEnded, 6 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			svc, _, _ := newTestService(repo, start)

			result, err := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
			if err != nil {
				t.Fatalf("SendMessage error = %v", err)
			}
			result.Conversation.Status = tt.status
			result.Conversation.StatusChangedAt = start

			svc.now = func() time.Time { return start.Add(tt.elapsed) }

			fresh, err := svc.SendMessage(context.Background(), testCustomer, nil, "trying again")
			if tt.wantBlock {
				if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeCooldown) {
					t.Fatalf("error = %v, want COOLDOWN", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SendMessage error = %v", err)
			}
			if !fresh.Created {
				t.Error("expected a fresh conversation after cooldown")
			}
			if fresh.Conversation.ID == result.Conversation.ID {
				t.Error("expected a new conversation record")
			}
		})
	}
}

func TestReview(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("approve records admin identity", func(t *testing.T) {
		repo := newMockRepository()
		svc, _, not := newTestService(repo, now)

		result, _ := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
		conv, err := svc.Review(context.Background(), testAdmin, result.Conversation.PublicID, DecisionApprove)
		if err != nil {
			t.Fatalf("Review error = %v", err)
		}
		if conv.Status != StatusApproved {
			t.Errorf("status = %s, want approved", conv.Status)
		}
		if conv.AdminID == nil || *conv.AdminID != testAdmin.ID {
			t.Errorf("admin not recorded: %v", conv.AdminID)
		}
		if conv.AdminFirstName == nil || *conv.AdminFirstName != "Sam" {
			t.Errorf("admin first name not recorded")
		}
		if !conv.StatusChangedAt.Equal(now) {
			t.Errorf("status changed at = %v, want %v", conv.StatusChangedAt, now)
		}
		if not.transitions != 1 {
			t.Errorf("transition notifications = %d, want 1", not.transitions)
		}
	})

	t.Run("reject leaves admin unset", func(t *testing.T) {
		repo := newMockRepository()
		svc, _, _ := newTestService(repo, now)

		result, _ := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
		conv, err := svc.Review(context.Background(), testAdmin, result.Conversation.PublicID, DecisionReject)
		if err != nil {
			t.Fatalf("Review error = %v", err)
		}
		if conv.Status != StatusRejected {
			t.Errorf("status = %s, want rejected", conv.Status)
		}
		if conv.AdminID != nil {
			t.Errorf("admin recorded on rejection: %v", *conv.AdminID)
		}
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		repo := newMockRepository()
		svc, _, _ := newTestService(repo, now)

		result, _ := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
		_, err := svc.Review(context.Background(), testCustomer, result.Conversation.PublicID, DecisionApprove)
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			t.Fatalf("error = %v, want FORBIDDEN", err)
		}
	})

	t.Run("non-pending conversation conflicts", func(t *testing.T) {
		repo := newMockRepository()
		svc, _, _ := newTestService(repo, now)

		result, _ := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
		if _, err := svc.Review(context.Background(), testAdmin, result.Conversation.PublicID, DecisionApprove); err != nil {
			t.Fatalf("first review error = %v", err)
		}
		_, err := svc.Review(context.Background(), testAdmin, result.Conversation.PublicID, DecisionApprove)
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			t.Fatalf("error = %v, want CONFLICT", err)
		}
	})
}

func TestEnd(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ends approved conversation and blocks further sends", func(t *testing.T) {
		repo := newMockRepository()
		svc, _, _ := newTestService(repo, now)

		result, _ := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
		if _, err := svc.Review(context.Background(), testAdmin, result.Conversation.PublicID, DecisionApprove); err != nil {
			t.Fatalf("Review error = %v", err)
		}
		conv, err := svc.End(context.Background(), testAdmin, result.Conversation.PublicID)
		if err != nil {
			t.Fatalf("End error = %v", err)
		}
		if conv.Status != StatusEnded {
			t.Errorf("status = %s, want ended", conv.Status)
		}

		id := conv.PublicID
		_, err = svc.SendMessage(context.Background(), testCustomer, &id, "one more thing")
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeCooldown) {
			t.Fatalf("send after end error = %v, want COOLDOWN", err)
		}

		// After the cool-down a fresh send opens a new conversation.
		svc.now = func() time.Time { return now.Add(EndedCooldown + time.Second) }
		fresh, err := svc.SendMessage(context.Background(), testCustomer, nil, "new issue")
		if err != nil {
			t.Fatalf("SendMessage after cooldown error = %v", err)
		}
		if !fresh.Created || fresh.Conversation.ID == conv.ID {
			t.Error("expected a fresh conversation after the cooldown")
		}
	})

	t.Run("terminal conversation cannot be ended again", func(t *testing.T) {
		repo := newMockRepository()
		svc, _, _ := newTestService(repo, now)

		result, _ := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
		if _, err := svc.End(context.Background(), testAdmin, result.Conversation.PublicID); err != nil {
			t.Fatalf("End error = %v", err)
		}
		_, err := svc.End(context.Background(), testAdmin, result.Conversation.PublicID)
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			t.Fatalf("error = %v, want CONFLICT", err)
		}
	})
}

func TestActiveForCustomer(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no history", func(t *testing.T) {
		repo := newMockRepository()
		svc, _, _ := newTestService(repo, now)

		state, err := svc.ActiveForCustomer(context.Background(), testCustomer)
		if err != nil {
			t.Fatalf("ActiveForCustomer error = %v", err)
		}
		if state.Conversation != nil || state.Cooldown != nil {
			t.Errorf("state = %+v, want empty", state)
		}
	})

	t.Run("open conversation is returned with messages", func(t *testing.T) {
		repo := newMockRepository()
		svc, _, _ := newTestService(repo, now)

		result, _ := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
		state, err := svc.ActiveForCustomer(context.Background(), testCustomer)
		if err != nil {
			t.Fatalf("ActiveForCustomer error = %v", err)
		}
		if state.Conversation == nil || state.Conversation.ID != result.Conversation.ID {
			t.Fatalf("conversation not rehydrated: %+v", state)
		}
		if len(state.Conversation.Messages) != 2 {
			t.Errorf("messages = %d, want 2", len(state.Conversation.Messages))
		}
		if state.Cooldown != nil {
			t.Errorf("unexpected cooldown: %+v", state.Cooldown)
		}
	})

	t.Run("terminal conversation yields cooldown only", func(t *testing.T) {
		repo := newMockRepository()
		svc, _, _ := newTestService(repo, now)

		result, _ := svc.SendMessage(context.Background(), testCustomer, nil, "opening message")
		result.Conversation.Status = StatusRejected
		result.Conversation.StatusChangedAt = now

		svc.now = func() time.Time { return now.Add(4 * time.Minute) }
		state, err := svc.ActiveForCustomer(context.Background(), testCustomer)
		if err != nil {
			t.Fatalf("ActiveForCustomer error = %v", err)
		}
		if state.Conversation != nil {
			t.Error("terminal conversation must not be rehydrated")
		}
		if state.Cooldown == nil {
			t.Fatal("expected cooldown state")
		}
		if state.Cooldown.RemainingSeconds != 360 {
			t.Errorf("remaining = %d, want 360", state.Cooldown.RemainingSeconds)
		}
	})
}

func TestListMessagesAfterCursor(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(repo, now)

	result, err := svc.SendMessage(context.Background(), testCustomer, nil, "first")
	if err != nil {
		t.Fatalf("SendMessage error = %v", err)
	}
	id := result.Conversation.PublicID
	if _, err := svc.SendMessage(context.Background(), testCustomer, &id, "second"); err != nil {
		t.Fatalf("SendMessage error = %v", err)
	}

	all, err := svc.ListMessages(context.Background(), testCustomer, id, nil)
	if err != nil {
		t.Fatalf("ListMessages error = %v", err)
	}
	if len(all) < 3 {
		t.Fatalf("got %d messages, want the intake exchange plus the followup", len(all))
	}

	cursor := all[1].PublicID
	page, err := svc.ListMessages(context.Background(), testCustomer, id, &query.Pagination{After: &cursor})
	if err != nil {
		t.Fatalf("ListMessages after cursor error = %v", err)
	}
	if len(page) != len(all)-2 {
		t.Fatalf("got %d messages after cursor, want %d", len(page), len(all)-2)
	}
	if page[0].PublicID != all[2].PublicID {
		t.Errorf("page starts at %q, want %q", page[0].PublicID, all[2].PublicID)
	}

	bogus := "msg_doesnotexist0000"
	_, err = svc.ListMessages(context.Background(), testCustomer, id, &query.Pagination{After: &bogus})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("unknown cursor error = %v, want VALIDATION", err)
	}
}

func TestListScopesCustomerToOwnConversations(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(repo, now)

	other := Actor{ID: "user_other1", FirstName: "Ria", Email: "ria@example.com"}
	if _, err := svc.SendMessage(context.Background(), testCustomer, nil, "mine"); err != nil {
		t.Fatalf("SendMessage error = %v", err)
	}
	if _, err := svc.SendMessage(context.Background(), other, nil, "theirs"); err != nil {
		t.Fatalf("SendMessage error = %v", err)
	}

	got, total, err := svc.List(context.Background(), testCustomer, Filter{}, nil)
	if err != nil {
		t.Fatalf("List error = %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].CustomerID != testCustomer.ID {
		t.Errorf("customer list leaked records: total=%d", total)
	}

	_, adminTotal, err := svc.List(context.Background(), testAdmin, Filter{}, nil)
	if err != nil {
		t.Fatalf("admin List error = %v", err)
	}
	if adminTotal != 2 {
		t.Errorf("admin total = %d, want 2", adminTotal)
	}
}
