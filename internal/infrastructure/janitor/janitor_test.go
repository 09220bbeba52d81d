package janitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"freightdesk/services/support-api/internal/domain/conversation"
	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/domain/shipment"
)

type mockConversationRepo struct {
	mu       sync.Mutex
	rows     map[uint]*conversation.Conversation
	listErr  error
	failIDs  map[uint]bool
	deleted  []uint
	maxInUse int
	inUse    int
}

var _ conversation.Repository = (*mockConversationRepo)(nil)

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{
		rows:    make(map[uint]*conversation.Conversation),
		failIDs: make(map[uint]bool),
	}
}

func (m *mockConversationRepo) add(conv *conversation.Conversation) {
	m.rows[conv.ID] = conv
}

func (m *mockConversationRepo) FindExpired(_ context.Context, olderThan time.Time, statuses []conversation.Status) ([]*conversation.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	deletable := make(map[conversation.Status]bool)
	for _, s := range statuses {
		deletable[s] = true
	}
	var out []*conversation.Conversation
	for _, conv := range m.rows {
		if conv.CreatedAt.Before(olderThan) && (deletable[conv.Status] || conv.Status == "") {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (m *mockConversationRepo) FindOrphaned(_ context.Context) ([]*conversation.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*conversation.Conversation
	for _, conv := range m.rows {
		if conv.CustomerID == "" {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (m *mockConversationRepo) DeleteWithMessages(_ context.Context, id uint) error {
	m.mu.Lock()
	m.inUse++
	if m.inUse > m.maxInUse {
		m.maxInUse = m.inUse
	}
	m.mu.Unlock()

	time.Sleep(time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inUse--
	if m.failIDs[id] {
		return errors.New("delete failed")
	}
	delete(m.rows, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockConversationRepo) Create(context.Context, *conversation.Conversation) error {
	return errors.New("not implemented")
}
func (m *mockConversationRepo) FindByFilter(context.Context, conversation.Filter, *query.Pagination) ([]*conversation.Conversation, error) {
	return nil, errors.New("not implemented")
}
func (m *mockConversationRepo) Count(context.Context, conversation.Filter) (int64, error) {
	return 0, errors.New("not implemented")
}
func (m *mockConversationRepo) FindByPublicID(context.Context, string) (*conversation.Conversation, error) {
	return nil, errors.New("not implemented")
}
func (m *mockConversationRepo) LatestByCustomer(context.Context, string) (*conversation.Conversation, error) {
	return nil, errors.New("not implemented")
}
func (m *mockConversationRepo) Update(context.Context, *conversation.Conversation) error {
	return errors.New("not implemented")
}
func (m *mockConversationRepo) AddMessage(context.Context, uint, *conversation.Message) error {
	return errors.New("not implemented")
}
func (m *mockConversationRepo) ListMessages(context.Context, uint, *query.Pagination) ([]*conversation.Message, error) {
	return nil, errors.New("not implemented")
}

type mockShipmentRepo struct {
	mu        sync.Mutex
	rows      map[uint]*shipment.ShipmentPackage
	listErr   error
	deleteErr error
	deleted   []uint
}

var _ shipment.Repository = (*mockShipmentRepo)(nil)

func newMockShipmentRepo() *mockShipmentRepo {
	return &mockShipmentRepo{rows: make(map[uint]*shipment.ShipmentPackage)}
}

func (m *mockShipmentRepo) FindCanceledBefore(_ context.Context, cutoff time.Time) ([]*shipment.ShipmentPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*shipment.ShipmentPackage
	for _, pkg := range m.rows {
		if pkg.Canceled && pkg.CreatedTime.Before(cutoff) {
			out = append(out, pkg)
		}
	}
	return out, nil
}

func (m *mockShipmentRepo) DeleteByIDs(_ context.Context, ids []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for _, id := range ids {
		delete(m.rows, id)
		m.deleted = append(m.deleted, id)
	}
	return nil
}

func (m *mockShipmentRepo) Create(context.Context, *shipment.ShipmentPackage) error {
	return errors.New("not implemented")
}
func (m *mockShipmentRepo) FindByPublicID(context.Context, string) (*shipment.ShipmentPackage, error) {
	return nil, errors.New("not implemented")
}
func (m *mockShipmentRepo) FindByFilter(context.Context, shipment.Filter, *query.Pagination) ([]*shipment.ShipmentPackage, error) {
	return nil, errors.New("not implemented")
}
func (m *mockShipmentRepo) Count(context.Context, shipment.Filter) (int64, error) {
	return 0, errors.New("not implemented")
}
func (m *mockShipmentRepo) Update(context.Context, *shipment.ShipmentPackage) error {
	return errors.New("not implemented")
}

func newTestJanitor(convRepo *mockConversationRepo, shipRepo *mockShipmentRepo) *Janitor {
	return New(Config{
		Enabled:               true,
		ConversationMaxAge:    30 * 24 * time.Hour,
		CanceledPackageMaxAge: 7 * 24 * time.Hour,
		DeleteConcurrency:     4,
	}, convRepo, shipRepo, zerolog.Nop())
}

func conv(id uint, customerID string, status conversation.Status, age time.Duration) *conversation.Conversation {
	return &conversation.Conversation{
		ID:         id,
		PublicID:   "conv_test",
		CustomerID: customerID,
		Status:     status,
		CreatedAt:  time.Now().Add(-age),
	}
}

func TestExpiredSweepDeletesOnlyEligibleStatuses(t *testing.T) {
	convRepo := newMockConversationRepo()
	shipRepo := newMockShipmentRepo()
	old := 31 * 24 * time.Hour
	fresh := time.Hour

	convRepo.add(conv(1, "c1", conversation.StatusPending, old))
	convRepo.add(conv(2, "c2", conversation.StatusEnded, old))
	convRepo.add(conv(3, "c3", conversation.StatusRejected, old))
	convRepo.add(conv(4, "c4", conversation.StatusApproved, old)) // active work, kept
	convRepo.add(conv(5, "c5", conversation.StatusPending, fresh))
	convRepo.add(conv(6, "c6", "", old)) // legacy row with no status

	j := newTestJanitor(convRepo, shipRepo)
	j.sweepExpiredConversations(context.Background())

	if _, ok := convRepo.rows[4]; !ok {
		t.Fatal("approved conversation was deleted")
	}
	if _, ok := convRepo.rows[5]; !ok {
		t.Fatal("fresh conversation was deleted")
	}
	for _, id := range []uint{1, 2, 3, 6} {
		if _, ok := convRepo.rows[id]; ok {
			t.Fatalf("conversation %d should have been deleted", id)
		}
	}
}

func TestOrphanedSweepIgnoresAge(t *testing.T) {
	convRepo := newMockConversationRepo()
	shipRepo := newMockShipmentRepo()

	convRepo.add(conv(1, "", conversation.StatusApproved, time.Minute))
	convRepo.add(conv(2, "c2", conversation.StatusPending, time.Minute))

	j := newTestJanitor(convRepo, shipRepo)
	j.sweepOrphanedConversations(context.Background())

	if _, ok := convRepo.rows[1]; ok {
		t.Fatal("orphaned conversation survived sweep")
	}
	if _, ok := convRepo.rows[2]; !ok {
		t.Fatal("owned conversation was deleted")
	}
}

func TestListFailureSkipsCycle(t *testing.T) {
	convRepo := newMockConversationRepo()
	shipRepo := newMockShipmentRepo()

	convRepo.add(conv(1, "", conversation.StatusPending, time.Hour))
	convRepo.listErr = errors.New("db down")

	j := newTestJanitor(convRepo, shipRepo)
	j.RunAllSweeps(context.Background())

	if len(convRepo.deleted) != 0 {
		t.Fatalf("deleted %d conversations despite list failure", len(convRepo.deleted))
	}
}

func TestPartialDeleteFailuresDoNotAbortSweep(t *testing.T) {
	convRepo := newMockConversationRepo()
	shipRepo := newMockShipmentRepo()
	old := 31 * 24 * time.Hour

	convRepo.add(conv(1, "c1", conversation.StatusPending, old))
	convRepo.add(conv(2, "c2", conversation.StatusPending, old))
	convRepo.add(conv(3, "c3", conversation.StatusPending, old))
	convRepo.failIDs[2] = true

	j := newTestJanitor(convRepo, shipRepo)
	j.sweepExpiredConversations(context.Background())

	if len(convRepo.deleted) != 2 {
		t.Fatalf("deleted = %d, want 2", len(convRepo.deleted))
	}
	if _, ok := convRepo.rows[2]; !ok {
		t.Fatal("failing row should still be present")
	}

	// Second run retries the leftover.
	convRepo.failIDs[2] = false
	j.sweepExpiredConversations(context.Background())
	if _, ok := convRepo.rows[2]; ok {
		t.Fatal("leftover row not cleaned up on next cycle")
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	convRepo := newMockConversationRepo()
	shipRepo := newMockShipmentRepo()

	convRepo.add(conv(1, "c1", conversation.StatusEnded, 31*24*time.Hour))

	j := newTestJanitor(convRepo, shipRepo)
	j.RunAllSweeps(context.Background())
	j.RunAllSweeps(context.Background())

	if len(convRepo.deleted) != 1 {
		t.Fatalf("deleted = %d, want exactly 1", len(convRepo.deleted))
	}
}

func TestDeleteConcurrencyIsBounded(t *testing.T) {
	convRepo := newMockConversationRepo()
	shipRepo := newMockShipmentRepo()
	old := 31 * 24 * time.Hour

	for i := uint(1); i <= 40; i++ {
		convRepo.add(conv(i, "cust", conversation.StatusPending, old))
	}

	j := newTestJanitor(convRepo, shipRepo)
	j.sweepExpiredConversations(context.Background())

	if convRepo.maxInUse > 4 {
		t.Fatalf("max concurrent deletes = %d, want <= 4", convRepo.maxInUse)
	}
	if len(convRepo.deleted) != 40 {
		t.Fatalf("deleted = %d, want 40", len(convRepo.deleted))
	}
}

func TestCanceledPackageSweep(t *testing.T) {
	convRepo := newMockConversationRepo()
	shipRepo := newMockShipmentRepo()
	now := time.Now()

	canceledAt := now.Add(-8 * 24 * time.Hour)
	shipRepo.rows[1] = &shipment.ShipmentPackage{
		ID: 1, PublicID: "pkg_old", Canceled: true, CanceledAt: &canceledAt,
		CreatedTime: now.Add(-9 * 24 * time.Hour),
	}
	shipRepo.rows[2] = &shipment.ShipmentPackage{
		ID: 2, PublicID: "pkg_recent", Canceled: true,
		CreatedTime: now.Add(-time.Hour),
	}
	shipRepo.rows[3] = &shipment.ShipmentPackage{
		ID: 3, PublicID: "pkg_live",
		CreatedTime: now.Add(-9 * 24 * time.Hour),
	}

	j := newTestJanitor(convRepo, shipRepo)
	j.sweepCanceledPackages(context.Background())

	if _, ok := shipRepo.rows[1]; ok {
		t.Fatal("old canceled package survived sweep")
	}
	if _, ok := shipRepo.rows[2]; !ok {
		t.Fatal("recently created canceled package was deleted")
	}
	if _, ok := shipRepo.rows[3]; !ok {
		t.Fatal("live package was deleted")
	}
}

func TestScheduleExpr(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{1, "*/1 * * * *"},
		{15, "*/15 * * * *"},
		{59, "*/59 * * * *"},
		{60, "0 */1 * * *"},
		{180, "0 */3 * * *"},
	}
	for _, tc := range cases {
		if got := scheduleExpr(tc.minutes); got != tc.want {
			t.Errorf("scheduleExpr(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestCadenceDefaults(t *testing.T) {
	j := New(Config{Enabled: true}, newMockConversationRepo(), newMockShipmentRepo(), zerolog.Nop())

	if j.cfg.IntervalMinutes != 1 {
		t.Errorf("conversation sweep interval = %d minutes, want 1", j.cfg.IntervalMinutes)
	}
	if j.cfg.PackageIntervalMinutes != 60 {
		t.Errorf("package sweep interval = %d minutes, want 60", j.cfg.PackageIntervalMinutes)
	}
	if got := scheduleExpr(j.cfg.IntervalMinutes); got != "*/1 * * * *" {
		t.Errorf("conversation schedule = %q, want every minute", got)
	}
	if got := scheduleExpr(j.cfg.PackageIntervalMinutes); got != "0 */1 * * *" {
		t.Errorf("package schedule = %q, want hourly", got)
	}
}
