// Package identity talks to the external identity provider that owns
// account credentials. The support service mirrors accounts locally
// but never stores passwords itself.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"freightdesk/services/support-api/internal/domain/user"
	"freightdesk/services/support-api/internal/utils/httpclients"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

type Client struct {
	baseURL      string
	serviceToken string
	http         *resty.Client
	logger       zerolog.Logger
}

var _ user.IdentityProvider = (*Client)(nil)

func NewClient(baseURL, serviceToken string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		serviceToken: serviceToken,
		http:         httpclients.NewClient("identity"),
		logger:       logger,
	}
}

type createUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type createUserResponse struct {
	UID string `json:"uid"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateUser registers an account with the identity provider and
// returns the provider-assigned uid.
func (c *Client) CreateUser(ctx context.Context, input user.ProvisionInput) (string, error) {
	var result createUserResponse
	var errBody errorResponse

	resp, err := c.prepareRequest(ctx).
		SetBody(createUserRequest{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Password:  input.Password,
			Role:      string(input.Role),
		}).
		SetResult(&result).
		SetError(&errBody).
		Post(c.endpoint("/admin/users"))
	if err != nil {
		return "", platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"identity provider unreachable",
			err,
			"4d0e9c72-b185-4f36-a2c8-67e0d3f5b914",
		)
	}
	if resp.IsError() {
		return "", c.errorFromResponse(ctx, resp, errBody, "create user")
	}
	if result.UID == "" {
		return "", platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"identity provider returned empty uid",
			nil,
			"ec52a0d8-7413-4b69-9f2e-05c8b1d6a473",
		)
	}
	return result.UID, nil
}

// DeleteUser removes the account identified by uid from the identity
// provider. A missing account is not an error.
func (c *Client) DeleteUser(ctx context.Context, uid string) error {
	var errBody errorResponse

	resp, err := c.prepareRequest(ctx).
		SetError(&errBody).
		Delete(c.endpoint("/admin/users/" + uid))
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"identity provider unreachable",
			err,
			"1fb03e65-29d8-4a47-b0c6-84e5f2d7a139",
		)
	}
	if resp.StatusCode() == 404 {
		c.logger.Warn().Str("uid", uid).Msg("identity account already absent")
		return nil
	}
	if resp.IsError() {
		return c.errorFromResponse(ctx, resp, errBody, "delete user")
	}
	return nil
}

func (c *Client) prepareRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx).SetHeader("Content-Type", "application/json")
	if c.serviceToken != "" {
		req.SetAuthToken(c.serviceToken)
	}
	return req
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response, errBody errorResponse, action string) error {
	message := errBody.Error
	if message == "" {
		message = errBody.Message
	}
	if message == "" {
		message = resp.Status()
	}

	errorType := platformerrors.ErrorTypeExternal
	if resp.StatusCode() == 409 {
		errorType = platformerrors.ErrorTypeConflict
	}

	return platformerrors.NewError(
		ctx,
		platformerrors.LayerInfrastructure,
		errorType,
		fmt.Sprintf("identity provider failed to %s: %s", action, message),
		errors.New(message),
		"7a94c1e0-58d6-4f32-b8a0-d3c6e2f5b087",
	)
}
