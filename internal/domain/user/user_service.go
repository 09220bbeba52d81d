package user

import (
	"context"
	"strings"

	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/utils/idgen"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

// IdentityProvider is the admin API of the external identity service.
// Provisioning creates the account there first, then mirrors it locally.
type IdentityProvider interface {
	CreateUser(ctx context.Context, input ProvisionInput) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}

// ProvisionInput carries the attributes for a newly provisioned account.
type ProvisionInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      Role
}

// Service persists and resolves users from external identities.
type Service struct {
	repo     Repository
	provider IdentityProvider
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, provider IdentityProvider) *Service {
	return &Service{repo: repo, provider: provider}
}

// EnsureUser persists the given identity and returns the internal user record.
// Called on every authenticated request so JWT-only users materialize lazily.
func (s *Service) EnsureUser(ctx context.Context, identity Identity) (*User, error) {
	if identity.Issuer == "" || identity.Subject == "" {
		return nil, ErrInvalidIdentity
	}

	role := identity.Role
	if !role.Valid() {
		role = RoleCustomer
	}

	publicID, err := idgen.GenerateSecureID("user", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate user ID")
	}

	u := &User{
		PublicID:  publicID,
		Issuer:    identity.Issuer,
		Subject:   identity.Subject,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Role:      role,
	}

	return s.repo.Upsert(ctx, u)
}

// Provision creates an account in the identity provider and mirrors it
// into the local store. Returns the identity provider UID.
func (s *Service) Provision(ctx context.Context, issuer string, input ProvisionInput) (string, error) {
	if strings.TrimSpace(input.Email) == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "email is required", nil, "c8f21a5d-6e04-4b93-87d2-1f5b0a9e3c76")
	}
	if input.Password == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "password is required", nil, "4b9d7e20-3a65-4f18-b0c9-82e5d1f6a043")
	}
	if !input.Role.Valid() {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "role must be customer or admin", nil, "7a1c3f85-9b42-4d60-8e37-f2d9c0b5e418")
	}

	uid, err := s.provider.CreateUser(ctx, input)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "identity provider rejected user creation")
	}

	if _, err := s.EnsureUser(ctx, Identity{
		Issuer:    issuer,
		Subject:   uid,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      input.Role,
	}); err != nil {
		// The identity account exists; surface the mirror failure so the
		// operator can reconcile instead of silently diverging.
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to mirror provisioned user")
	}

	return uid, nil
}

// Deprovision removes the account from the identity provider and the
// local mirror. Missing local rows are tolerated.
func (s *Service) Deprovision(ctx context.Context, uid string) error {
	if strings.TrimSpace(uid) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "uid is required", nil, "e53b8d17-2c90-4f6a-b1e4-06a7f3d9c285")
	}

	if err := s.provider.DeleteUser(ctx, uid); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "identity provider rejected user deletion")
	}

	if err := s.repo.DeleteBySubject(ctx, uid); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete mirrored user")
	}
	return nil
}

// GetBySubject resolves a user by identity provider UID.
func (s *Service) GetBySubject(ctx context.Context, subject string) (*User, error) {
	u, err := s.repo.FindBySubject(ctx, subject)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "user not found")
	}
	return u, nil
}

// List returns a page of users with a total count.
func (s *Service) List(ctx context.Context, pagination *query.Pagination) ([]*User, int64, error) {
	users, total, err := s.repo.FindAll(ctx, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list users")
	}
	return users, total, nil
}
