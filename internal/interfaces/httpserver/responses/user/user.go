package userresponses

import (
	"freightdesk/services/support-api/internal/domain/user"
)

// UserResponse is the wire shape of a user record.
type UserResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Object  string         `json:"object"`
	Data    []UserResponse `json:"data"`
	HasMore bool           `json:"has_more"`
	Total   int64          `json:"total"`
}

// CreateUserResponse is the legacy provisioning success payload.
type CreateUserResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid,omitempty"`
}

// LegacyErrorResponse is the legacy provisioning failure payload.
type LegacyErrorResponse struct {
	Error string `json:"error"`
}

// NewUserResponse creates a response from a domain user
func NewUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.PublicID,
		Object:    "user",
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Unix(),
	}
}

// NewUserListResponse creates a user list response
func NewUserListResponse(users []*user.User, hasMore bool, total int64) *UserListResponse {
	data := make([]UserResponse, 0, len(users))
	for _, u := range users {
		if u == nil {
			continue
		}
		data = append(data, *NewUserResponse(u))
	}
	return &UserListResponse{
		Object:  "list",
		Data:    data,
		HasMore: hasMore,
		Total:   total,
	}
}
