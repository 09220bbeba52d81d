package userhandler

import (
	"context"

	"github.com/go-playground/validator/v10"

	"freightdesk/services/support-api/internal/config"
	"freightdesk/services/support-api/internal/domain"
	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/domain/user"
	userrequests "freightdesk/services/support-api/internal/interfaces/httpserver/requests/user"
	userresponses "freightdesk/services/support-api/internal/interfaces/httpserver/responses/user"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

// UserHandler handles user HTTP requests, including the legacy
// provisioning endpoints kept for older admin tooling.
type UserHandler struct {
	userService *user.Service
	config      *config.Config
	validate    *validator.Validate
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.Service, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: userService,
		config:      cfg,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateUser provisions an account in the identity provider and mirrors
// it locally. Returns the identity provider UID.
func (h *UserHandler) CreateUser(ctx context.Context, req userrequests.CreateUserRequest) (*userresponses.CreateUserResponse, error) {
	if err := h.validate.Struct(req); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"invalid user payload: "+err.Error(), err, "b2e6c9d0-4f73-4a18-85c2-d7f0a3e6b954")
	}

	role := user.Role(req.Role)
	if req.Role == "" {
		role = user.RoleCustomer
	}

	uid, err := h.userService.Provision(ctx, h.config.Issuer, user.ProvisionInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to provision user")
	}

	return &userresponses.CreateUserResponse{
		Message: "User created successfully",
		UID:     uid,
	}, nil
}

// DeleteUser removes the account from the identity provider and the
// local mirror.
func (h *UserHandler) DeleteUser(ctx context.Context, uid string) error {
	if err := h.userService.Deprovision(ctx, uid); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to deprovision user")
	}
	return nil
}

// Me returns the caller's own user record.
func (h *UserHandler) Me(ctx context.Context, principal domain.Principal) (*userresponses.UserResponse, error) {
	u, err := h.userService.GetBySubject(ctx, principal.Subject)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve current user")
	}
	return userresponses.NewUserResponse(u), nil
}

// List returns a page of users with a total count.
func (h *UserHandler) List(ctx context.Context, pagination *query.Pagination) (*userresponses.UserListResponse, error) {
	users, total, err := h.userService.List(ctx, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list users")
	}

	offset := 0
	if pagination != nil && pagination.Offset != nil {
		offset = *pagination.Offset
	}
	hasMore := int64(offset+len(users)) < total
	return userresponses.NewUserListResponse(users, hasMore, total), nil
}
