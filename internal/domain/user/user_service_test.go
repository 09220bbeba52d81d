package user

import (
	"context"
	"errors"
	"testing"

	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

// mockRepository is an in-memory Repository keyed by issuer+subject.
type mockRepository struct {
	nextID uint
	users  map[string]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User)}
}

func key(issuer, subject string) string { return issuer + "|" + subject }

func (m *mockRepository) FindByIssuerAndSubject(_ context.Context, issuer, subject string) (*User, error) {
	return m.users[key(issuer, subject)], nil
}

func (m *mockRepository) FindBySubject(_ context.Context, subject string) (*User, error) {
	for _, u := range m.users {
		if u.Subject == subject {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockRepository) FindByPublicID(_ context.Context, publicID string) (*User, error) {
	for _, u := range m.users {
		if u.PublicID == publicID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) FindAll(_ context.Context, _ *query.Pagination) ([]*User, int64, error) {
	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Upsert(_ context.Context, u *User) (*User, error) {
	k := key(u.Issuer, u.Subject)
	if existing, ok := m.users[k]; ok {
		// Stored identity keeps its original public ID.
		existing.FirstName = u.FirstName
		existing.LastName = u.LastName
		existing.Email = u.Email
		existing.Role = u.Role
		return existing, nil
	}
	m.nextID++
	u.ID = m.nextID
	m.users[k] = u
	return u, nil
}

func (m *mockRepository) DeleteBySubject(_ context.Context, subject string) error {
	for k, u := range m.users {
		if u.Subject == subject {
			delete(m.users, k)
		}
	}
	return nil
}

// mockProvider is a scripted identity provider.
type mockProvider struct {
	nextUID    string
	createErr  error
	deleteErr  error
	created    []ProvisionInput
	deletedUID []string
}

func (m *mockProvider) CreateUser(_ context.Context, input ProvisionInput) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = append(m.created, input)
	return m.nextUID, nil
}

func (m *mockProvider) DeleteUser(_ context.Context, uid string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedUID = append(m.deletedUID, uid)
	return nil
}

func TestEnsureUserMaterializesAndUpdates(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, &mockProvider{})
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, Identity{
		Issuer:    "https://id.example.com",
		Subject:   "uid-1",
		FirstName: "Dana",
		Email:     "dana@example.com",
	})
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if first.PublicID == "" {
		t.Fatal("public id not assigned")
	}
	if first.Role != RoleCustomer {
		t.Errorf("role = %q, want customer default", first.Role)
	}

	// A later request with refreshed claims keeps the same local record.
	again, err := svc.EnsureUser(ctx, Identity{
		Issuer:    "https://id.example.com",
		Subject:   "uid-1",
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dana@example.com",
		Role:      RoleAdmin,
	})
	if err != nil {
		t.Fatalf("EnsureUser repeat: %v", err)
	}
	if again.PublicID != first.PublicID {
		t.Errorf("public id changed across requests: %q vs %q", again.PublicID, first.PublicID)
	}
	if again.LastName != "Reyes" || again.Role != RoleAdmin {
		t.Errorf("claims not refreshed: %+v", again)
	}
}

func TestEnsureUserRejectsPartialIdentity(t *testing.T) {
	svc := NewService(newMockRepository(), &mockProvider{})

	if _, err := svc.EnsureUser(context.Background(), Identity{Subject: "uid-1"}); !errors.Is(err, ErrInvalidIdentity) {
		t.Errorf("missing issuer: got %v", err)
	}
	if _, err := svc.EnsureUser(context.Background(), Identity{Issuer: "https://id.example.com"}); !errors.Is(err, ErrInvalidIdentity) {
		t.Errorf("missing subject: got %v", err)
	}
}

func TestProvisionCreatesRemoteThenMirrors(t *testing.T) {
	repo := newMockRepository()
	provider := &mockProvider{nextUID: "uid-42"}
	svc := NewService(repo, provider)
	ctx := context.Background()

	uid, err := svc.Provision(ctx, "https://id.example.com", ProvisionInput{
		FirstName: "Morgan",
		Email:     "morgan@example.com",
		Password:  "long-enough-secret",
		Role:      RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if uid != "uid-42" {
		t.Errorf("uid = %q, want uid-42", uid)
	}
	if len(provider.created) != 1 {
		t.Fatalf("provider create calls = %d, want 1", len(provider.created))
	}

	mirrored, err := repo.FindBySubject(ctx, "uid-42")
	if err != nil || mirrored == nil {
		t.Fatalf("mirror missing: %v", err)
	}
	if mirrored.Role != RoleAdmin {
		t.Errorf("mirrored role = %q", mirrored.Role)
	}
}

func TestProvisionValidation(t *testing.T) {
	svc := NewService(newMockRepository(), &mockProvider{nextUID: "uid-1"})
	ctx := context.Background()

	cases := []struct {
		name  string
		input ProvisionInput
	}{
		{"missing email", ProvisionInput{Password: "secret123", Role: RoleCustomer}},
		{"missing password", ProvisionInput{Email: "a@b.com", Role: RoleCustomer}},
		{"bad role", ProvisionInput{Email: "a@b.com", Password: "secret123", Role: Role("owner")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Provision(ctx, "https://id.example.com", tc.input)
			if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestProvisionSurfacesProviderFailure(t *testing.T) {
	provider := &mockProvider{createErr: errors.New("identity service down")}
	svc := NewService(newMockRepository(), provider)

	_, err := svc.Provision(context.Background(), "https://id.example.com", ProvisionInput{
		Email:    "a@b.com",
		Password: "secret123",
		Role:     RoleCustomer,
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestDeprovisionRemovesRemoteAndMirror(t *testing.T) {
	repo := newMockRepository()
	provider := &mockProvider{nextUID: "uid-7"}
	svc := NewService(repo, provider)
	ctx := context.Background()

	if _, err := svc.Provision(ctx, "https://id.example.com", ProvisionInput{
		Email:    "a@b.com",
		Password: "secret123",
		Role:     RoleCustomer,
	}); err != nil {
		t.Fatalf("Provision: %v", err)
	}

	if err := svc.Deprovision(ctx, "uid-7"); err != nil {
		t.Fatalf("Deprovision: %v", err)
	}
	if len(provider.deletedUID) != 1 || provider.deletedUID[0] != "uid-7" {
		t.Errorf("provider delete calls = %v", provider.deletedUID)
	}
	if _, err := repo.FindBySubject(ctx, "uid-7"); err == nil {
		t.Error("mirror row still present")
	}

	if err := svc.Deprovision(ctx, "  "); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("blank uid: got %v", err)
	}
}
