// Package responses renders API errors and shared envelopes. Error
// bodies carry the platform error code so support staff can correlate
// a user report with logs.
package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightdesk/services/support-api/internal/infrastructure/logger"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string         `json:"code"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// ListResponse is the envelope for collection endpoints.
type ListResponse struct {
	Object  string `json:"object"`
	Data    any    `json:"data"`
	Total   int64  `json:"total"`
	HasMore bool   `json:"has_more"`
}

func NewListResponse(data any, total int64, hasMore bool) ListResponse {
	return ListResponse{
		Object:  "list",
		Data:    data,
		Total:   total,
		HasMore: hasMore,
	}
}

// HandleError maps a platform error onto the HTTP response and logs it.
func HandleError(c *gin.Context, err error) {
	platformErr := platformerrors.GetPlatformError(err)
	if platformErr == nil {
		platformErr = platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeInternal,
			"internal server error",
			err,
			"",
		)
	}

	platformerrors.LogError(logger.GetLogger(), platformErr)

	status := platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
	detail := ErrorDetail{
		Code:      platformErr.UUID,
		Type:      string(platformErr.Type),
		Message:   publicMessage(platformErr),
		RequestID: platformErr.RequestID,
	}
	if len(platformErr.Context) > 0 {
		detail.Details = platformErr.Context
	}

	c.AbortWithStatusJSON(status, ErrorBody{Error: detail})
}

// HandleNewError builds a fresh platform error and renders it. Routes
// use it for binding and query validation failures.
func HandleNewError(c *gin.Context, errType platformerrors.ErrorType, message string, uuid string) {
	HandleError(c, platformerrors.NewError(c.Request.Context(), platformerrors.LayerRoute, errType, message, nil, uuid))
}

// HandleErrorWithStatus renders an error with an explicit status,
// bypassing the type-based mapping.
func HandleErrorWithStatus(c *gin.Context, status int, err error, message string) {
	detail := ErrorDetail{
		Type:    http.StatusText(status),
		Message: message,
	}
	if platformErr := platformerrors.GetPlatformError(err); platformErr != nil {
		detail.Code = platformErr.UUID
		detail.Type = string(platformErr.Type)
		detail.RequestID = platformErr.RequestID
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: detail})
}

// publicMessage hides internal failure text behind a generic message.
// Validation and lifecycle errors are safe to show verbatim.
func publicMessage(err *platformerrors.PlatformError) string {
	switch err.Type {
	case platformerrors.ErrorTypeInternal, platformerrors.ErrorTypeDatabaseError, platformerrors.ErrorTypeExternal:
		return "internal server error"
	default:
		return err.Message
	}
}
