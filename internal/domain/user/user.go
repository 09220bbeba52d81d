// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"errors"
	"time"

	"freightdesk/services/support-api/internal/domain/query"
)

// Role is the user's access level within the support service.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one the service accepts.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User models an application user resolved from the external identity provider.
type User struct {
	ID        uint
	PublicID  string // String ID like "user_abc123"
	Issuer    string
	Subject   string // identity provider UID
	FirstName string
	LastName  string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name returns the user's display name.
func (u *User) Name() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Identity encapsulates the externally provided identity attributes.
type Identity struct {
	Issuer    string
	Subject   string
	FirstName string
	LastName  string
	Email     string
	Role      Role
}

// Repository defines storage operations for users.
type Repository interface {
	FindByIssuerAndSubject(ctx context.Context, issuer, subject string) (*User, error)
	FindBySubject(ctx context.Context, subject string) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
	FindAll(ctx context.Context, pagination *query.Pagination) ([]*User, int64, error)
	Upsert(ctx context.Context, user *User) (*User, error)
	DeleteBySubject(ctx context.Context, subject string) error
}

// ErrInvalidIdentity indicates missing issuer or subject on the identity payload.
var ErrInvalidIdentity = errors.New("invalid identity: issuer and subject are required")
