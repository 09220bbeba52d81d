package users

import (
	"net/http"

	"freightdesk/services/support-api/internal/interfaces/httpserver/handlers/userhandler"
	"freightdesk/services/support-api/internal/interfaces/httpserver/middlewares"
	"freightdesk/services/support-api/internal/interfaces/httpserver/requests"
	userrequests "freightdesk/services/support-api/internal/interfaces/httpserver/requests/user"
	"freightdesk/services/support-api/internal/interfaces/httpserver/responses"
	userresponses "freightdesk/services/support-api/internal/interfaces/httpserver/responses/user"
	"freightdesk/services/support-api/internal/utils/platformerrors"

	"github.com/gin-gonic/gin"
)

type UsersRoute struct {
	handler *userhandler.UserHandler
}

func NewUsersRoute(handler *userhandler.UserHandler) *UsersRoute {
	return &UsersRoute{handler: handler}
}

func (route *UsersRoute) RegisterRouter(router gin.IRouter) {
	users := router.Group("/users")
	users.GET("", middlewares.RequireAdmin(), route.listUsers)
	users.GET("/me", route.getMe)
}

// RegisterLegacyRouter mounts the provisioning endpoints kept for older
// admin tooling. They live outside /v1 and keep their original request
// and response shapes.
func (route *UsersRoute) RegisterLegacyRouter(router gin.IRouter) {
	router.POST("/createUser", middlewares.RequireAdmin(), route.createUserLegacy)
	router.DELETE("/deleteUser/:uid", middlewares.RequireAdmin(), route.deleteUserLegacy)
}

// listUsers godoc
// @Summary List users
// @Description List user accounts with pagination. Admin only.
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum number of users to return"
// @Param offset query int false "Number of users to skip"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} userresponses.UserListResponse "Successfully retrieved users"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 403 {object} responses.ErrorBody "Admin access required"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/users [get]
func (route *UsersRoute) listUsers(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	response, err := route.handler.List(ctx, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// getMe godoc
// @Summary Get the current user
// @Description Return the caller's own user record.
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} userresponses.UserResponse "Current user"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 404 {object} responses.ErrorBody "User not found"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/users/me [get]
func (route *UsersRoute) getMe(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "36d9f1c4-8b50-4e27-a3f6-91c2e5d8b740")
		return
	}

	response, err := route.handler.Me(ctx, principal)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// createUserLegacy godoc
// @Summary Provision a user (legacy)
// @Description Create an account in the identity provider and mirror it locally. Kept for older admin tooling; the response shape is frozen.
// @Tags Users API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body userrequests.CreateUserRequest true "Account details"
// @Success 200 {object} userresponses.CreateUserResponse "User created"
// @Failure 500 {object} userresponses.LegacyErrorResponse "Provisioning failed"
// @Router /createUser [post]
func (route *UsersRoute) createUserLegacy(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req userrequests.CreateUserRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		// The legacy contract reports every failure as a 500 with a
		// bare error string.
		reqCtx.JSON(http.StatusInternalServerError, userresponses.LegacyErrorResponse{Error: "invalid request body"})
		return
	}

	response, err := route.handler.CreateUser(ctx, req)
	if err != nil {
		reqCtx.JSON(http.StatusInternalServerError, userresponses.LegacyErrorResponse{Error: legacyErrorMessage(err)})
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// deleteUserLegacy godoc
// @Summary Deprovision a user (legacy)
// @Description Delete an account from the identity provider and the local mirror. Kept for older admin tooling.
// @Tags Users API
// @Security BearerAuth
// @Produce json
// @Param uid path string true "Identity provider UID"
// @Success 200 {object} userresponses.CreateUserResponse "User deleted"
// @Failure 500 {object} userresponses.LegacyErrorResponse "Deprovisioning failed"
// @Router /deleteUser/{uid} [delete]
func (route *UsersRoute) deleteUserLegacy(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	if err := route.handler.DeleteUser(ctx, reqCtx.Param("uid")); err != nil {
		reqCtx.JSON(http.StatusInternalServerError, userresponses.LegacyErrorResponse{Error: legacyErrorMessage(err)})
		return
	}

	reqCtx.JSON(http.StatusOK, userresponses.CreateUserResponse{Message: "User deleted successfully"})
}

// legacyErrorMessage keeps validation detail visible while masking
// internal failures, matching the original endpoint behavior.
func legacyErrorMessage(err error) string {
	if platformErr := platformerrors.GetPlatformError(err); platformErr != nil {
		switch platformErr.Type {
		case platformerrors.ErrorTypeValidation, platformerrors.ErrorTypeConflict:
			return platformErr.Message
		}
	}
	return "failed to process user request"
}
