package shipment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	nextID   uint
	packages map[uint]*ShipmentPackage

	createErr error
	updateErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{packages: make(map[uint]*ShipmentPackage)}
}

func (m *mockRepository) Create(_ context.Context, pkg *ShipmentPackage) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	pkg.ID = m.nextID
	m.packages[pkg.ID] = pkg
	return nil
}

func (m *mockRepository) FindByPublicID(_ context.Context, publicID string) (*ShipmentPackage, error) {
	for _, pkg := range m.packages {
		if pkg.PublicID == publicID {
			return pkg, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockRepository) FindByFilter(_ context.Context, filter Filter, _ *query.Pagination) ([]*ShipmentPackage, error) {
	var out []*ShipmentPackage
	for _, pkg := range m.packages {
		if filter.CustomerID != nil && pkg.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Canceled != nil && pkg.Canceled != *filter.Canceled {
			continue
		}
		out = append(out, pkg)
	}
	return out, nil
}

func (m *mockRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	list, err := m.FindByFilter(ctx, filter, nil)
	return int64(len(list)), err
}

func (m *mockRepository) Update(_ context.Context, pkg *ShipmentPackage) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.packages[pkg.ID]; !ok {
		return errors.New("record not found")
	}
	m.packages[pkg.ID] = pkg
	return nil
}

func (m *mockRepository) FindCanceledBefore(_ context.Context, cutoff time.Time) ([]*ShipmentPackage, error) {
	var out []*ShipmentPackage
	for _, pkg := range m.packages {
		if pkg.Canceled && pkg.CreatedTime.Before(cutoff) {
			out = append(out, pkg)
		}
	}
	return out, nil
}

func (m *mockRepository) DeleteByIDs(_ context.Context, ids []uint) error {
	for _, id := range ids {
		delete(m.packages, id)
	}
	return nil
}

// mockNotifier records notification calls.
type mockNotifier struct {
	created  int
	canceled int
}

func (m *mockNotifier) ShipmentCreated(context.Context, *ShipmentPackage)  { m.created++ }
func (m *mockNotifier) ShipmentCanceled(context.Context, *ShipmentPackage) { m.canceled++ }

func newTestService(repo *mockRepository, at time.Time) (*Service, *mockNotifier) {
	not := &mockNotifier{}
	svc := NewService(repo, not)
	svc.now = func() time.Time { return at }
	return svc, not
}

func TestCreateStoresPackageAndNotifies(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, not := newTestService(repo, now)

	pkg, err := svc.Create(context.Background(), Actor{ID: "user_1"}, CreateInput{
		Description:   "  two pallets of machine parts  ",
		DeclaredValue: decimal.RequireFromString("1250.50"),
		Attributes:    map[string]any{"weight_kg": 480},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if pkg.Description != "two pallets of machine parts" {
		t.Errorf("description not trimmed: %q", pkg.Description)
	}
	if pkg.CustomerID != "user_1" {
		t.Errorf("customer id = %q", pkg.CustomerID)
	}
	if pkg.PublicID == "" {
		t.Error("public id not assigned")
	}
	if !pkg.CreatedTime.Equal(now) {
		t.Errorf("created time = %v, want %v", pkg.CreatedTime, now)
	}
	if not.created != 1 {
		t.Errorf("created notifications = %d, want 1", not.created)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestService(repo, time.Now())

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"empty description", CreateInput{Description: "   ", DeclaredValue: decimal.NewFromInt(10)}},
		{"negative value", CreateInput{Description: "crate", DeclaredValue: decimal.NewFromInt(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), Actor{ID: "user_1"}, tc.input)
			if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGetScopesToOwner(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestService(repo, time.Now())

	pkg, err := svc.Create(context.Background(), Actor{ID: "user_1"}, CreateInput{
		Description:   "crate",
		DeclaredValue: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), Actor{ID: "user_2"}, pkg.PublicID); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("stranger access: expected not found, got %v", err)
	}
	if _, err := svc.Get(context.Background(), Actor{ID: "user_2", Admin: true}, pkg.PublicID); err != nil {
		t.Errorf("admin access: %v", err)
	}
	if _, err := svc.Get(context.Background(), Actor{ID: "user_1"}, pkg.PublicID); err != nil {
		t.Errorf("owner access: %v", err)
	}
}

func TestListForcesCustomerScope(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestService(repo, time.Now())
	ctx := context.Background()

	for _, owner := range []string{"user_1", "user_1", "user_2"} {
		if _, err := svc.Create(ctx, Actor{ID: owner}, CreateInput{
			Description:   "crate",
			DeclaredValue: decimal.NewFromInt(10),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	own, total, err := svc.List(ctx, Actor{ID: "user_1"}, Filter{}, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(own) != 2 || total != 2 {
		t.Errorf("customer list = %d/%d, want 2/2", len(own), total)
	}

	all, total, err := svc.List(ctx, Actor{ID: "admin_1", Admin: true}, Filter{}, nil)
	if err != nil {
		t.Fatalf("List as admin: %v", err)
	}
	if len(all) != 3 || total != 3 {
		t.Errorf("admin list = %d/%d, want 3/3", len(all), total)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	repo := newMockRepository()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, not := newTestService(repo, now)
	ctx := context.Background()

	pkg, err := svc.Create(ctx, Actor{ID: "user_1"}, CreateInput{
		Description:   "crate",
		DeclaredValue: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	canceled, err := svc.Cancel(ctx, Actor{ID: "user_1"}, pkg.PublicID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !canceled.Canceled || canceled.CanceledAt == nil {
		t.Fatal("package not flagged canceled")
	}
	if not.canceled != 1 {
		t.Errorf("canceled notifications = %d, want 1", not.canceled)
	}

	// Second cancel succeeds without another notification.
	if _, err := svc.Cancel(ctx, Actor{ID: "user_1"}, pkg.PublicID); err != nil {
		t.Fatalf("second Cancel: %v", err)
	}
	if not.canceled != 1 {
		t.Errorf("canceled notifications after repeat = %d, want 1", not.canceled)
	}
}

func TestCancelScopesToOwner(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestService(repo, time.Now())
	ctx := context.Background()

	pkg, err := svc.Create(ctx, Actor{ID: "user_1"}, CreateInput{
		Description:   "crate",
		DeclaredValue: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Cancel(ctx, Actor{ID: "user_2"}, pkg.PublicID); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("stranger cancel: expected not found, got %v", err)
	}
	if _, err := svc.Cancel(ctx, Actor{ID: "admin_1", Admin: true}, pkg.PublicID); err != nil {
		t.Errorf("admin cancel: %v", err)
	}
}
