package conversation

import (
	"net/http"
	"strings"

	"freightdesk/services/support-api/internal/interfaces/httpserver/handlers/conversationhandler"
	"freightdesk/services/support-api/internal/interfaces/httpserver/middlewares"
	"freightdesk/services/support-api/internal/interfaces/httpserver/requests"
	conversationrequests "freightdesk/services/support-api/internal/interfaces/httpserver/requests/conversation"
	"freightdesk/services/support-api/internal/interfaces/httpserver/responses"
	"freightdesk/services/support-api/internal/utils/platformerrors"

	"github.com/gin-gonic/gin"
)

type ConversationRoute struct {
	handler *conversationhandler.ConversationHandler
}

func NewConversationRoute(handler *conversationhandler.ConversationHandler) *ConversationRoute {
	return &ConversationRoute{handler: handler}
}

func (route *ConversationRoute) RegisterRouter(router gin.IRouter) {
	conversations := router.Group("/conversations")
	conversations.GET("", route.listConversations)
	conversations.POST("/messages", route.sendMessage)
	conversations.GET("/active", route.getActiveState)
	conversations.GET("/:conv_public_id", route.getConversation)
	conversations.GET("/:conv_public_id/messages", route.listMessages)
	conversations.GET("/:conv_public_id/events", route.streamEvents)
	conversations.POST("/:conv_public_id/review", middlewares.RequireAdmin(), route.reviewConversation)
	conversations.POST("/:conv_public_id/end", middlewares.RequireAdmin(), route.endConversation)
}

// listConversations godoc
// @Summary List conversations
// @Description List conversations visible to the caller. Customers see their own; admins see all and may filter by status.
// @Tags Conversations API
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter (pending, approved, rejected, ended)"
// @Param limit query int false "Maximum number of conversations to return"
// @Param offset query int false "Number of conversations to skip"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} conversationresponses.ConversationListResponse "Successfully retrieved conversations"
// @Failure 400 {object} responses.ErrorBody "Invalid request parameters"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/conversations [get]
func (route *ConversationRoute) listConversations(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "b5e72d40-9c16-4a83-8f5d-e037a2c61b94")
		return
	}

	var params conversationrequests.ListConversationsQueryParams
	if err := reqCtx.ShouldBindQuery(&params); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid query parameters", "0c84f1a7-3e59-4b20-9d6c-71f5a8e2b043")
		return
	}

	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	var status *string
	if params.Status != nil {
		trimmed := strings.TrimSpace(*params.Status)
		if trimmed != "" {
			status = &trimmed
		}
	}

	response, err := route.handler.List(ctx, conversationhandler.ActorFromPrincipal(principal), status, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// sendMessage godoc
// @Summary Send a support message
// @Description Post a message. Without a conversation_id the caller's open conversation is reused, or a new pending conversation is started. Starting a new conversation is rejected with 429 while a cool-down from a rejected or ended conversation is in force.
// @Tags Conversations API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body conversationrequests.SendMessageRequest true "Message payload"
// @Success 200 {object} conversationresponses.SendMessageResponse "Message stored"
// @Success 204 "Blank message ignored"
// @Failure 400 {object} responses.ErrorBody "Invalid request body"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 429 {object} responses.ErrorBody "Cool-down in force"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/conversations/messages [post]
func (route *ConversationRoute) sendMessage(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "7f3a9d25-1b60-4c8e-a4d2-58c0e7b3f916")
		return
	}

	var req conversationrequests.SendMessageRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "e29c6b04-8d71-4f35-b0a8-3d5f1c7e9a62")
		return
	}

	response, err := route.handler.SendMessage(ctx, conversationhandler.ActorFromPrincipal(principal), req)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	if response == nil {
		reqCtx.Status(http.StatusNoContent)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// getActiveState godoc
// @Summary Get the caller's active support state
// @Description Returns the caller's open conversation with its messages, or the cool-down currently blocking a new one.
// @Tags Conversations API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} conversationresponses.ActiveStateResponse "Current support state"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/conversations/active [get]
func (route *ConversationRoute) getActiveState(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "4d81c6f9-0a27-4e53-b9c4-62e8f0a5d731")
		return
	}

	response, err := route.handler.Active(ctx, conversationhandler.ActorFromPrincipal(principal))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// getConversation godoc
// @Summary Get a conversation
// @Description Retrieve a single conversation by public ID. Customers can only access their own conversations.
// @Tags Conversations API
// @Security BearerAuth
// @Produce json
// @Param conv_public_id path string true "Conversation public ID"
// @Success 200 {object} conversationresponses.ConversationResponse "Successfully retrieved conversation"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 404 {object} responses.ErrorBody "Conversation not found"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/conversations/{conv_public_id} [get]
func (route *ConversationRoute) getConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "91b0e4d7-6f28-4a5c-83d1-c5a9f2e7b064")
		return
	}

	response, err := route.handler.Get(ctx, conversationhandler.ActorFromPrincipal(principal), reqCtx.Param("conv_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// listMessages godoc
// @Summary List conversation messages
// @Description List messages of a conversation in chronological order.
// @Tags Conversations API
// @Security BearerAuth
// @Produce json
// @Param conv_public_id path string true "Conversation public ID"
// @Param limit query int false "Maximum number of messages to return"
// @Param offset query int false "Number of messages to skip"
// @Param after query string false "Return only messages created after this message public ID"
// @Success 200 {object} conversationresponses.MessageListResponse "Successfully retrieved messages"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 404 {object} responses.ErrorBody "Conversation not found"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/conversations/{conv_public_id}/messages [get]
func (route *ConversationRoute) listMessages(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "68f2d7a0-4c93-4e15-a8b6-0d7e3f5c2918")
		return
	}

	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	response, err := route.handler.ListMessages(ctx, conversationhandler.ActorFromPrincipal(principal), reqCtx.Param("conv_public_id"), pagination)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// streamEvents godoc
// @Summary Stream conversation events
// @Description Subscribe to live conversation events over Server-Sent Events. Emits conversation.updated and message.created events until the client disconnects.
// @Tags Conversations API
// @Security BearerAuth
// @Produce text/event-stream
// @Param conv_public_id path string true "Conversation public ID"
// @Success 200 {string} string "SSE stream of data: {json} events"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 404 {object} responses.ErrorBody "Conversation not found"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/conversations/{conv_public_id}/events [get]
func (route *ConversationRoute) streamEvents(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "2a6e9c51-7d04-4b38-9f2a-e51b8d0c4763")
		return
	}

	if err := route.handler.StreamEvents(reqCtx, conversationhandler.ActorFromPrincipal(principal), reqCtx.Param("conv_public_id")); err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
}

// reviewConversation godoc
// @Summary Review a pending conversation
// @Description Approve or reject a pending conversation. Rejection starts the customer's cool-down.
// @Tags Conversations API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param conv_public_id path string true "Conversation public ID"
// @Param request body conversationrequests.ReviewRequest true "Review decision"
// @Success 200 {object} conversationresponses.ConversationResponse "Conversation after the decision"
// @Failure 400 {object} responses.ErrorBody "Invalid request body"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 403 {object} responses.ErrorBody "Admin access required"
// @Failure 404 {object} responses.ErrorBody "Conversation not found"
// @Failure 409 {object} responses.ErrorBody "Conversation is not pending"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/conversations/{conv_public_id}/review [post]
func (route *ConversationRoute) reviewConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "d3b7f0a9-5e61-4c24-8a9d-1f6c0e8b5274")
		return
	}

	var req conversationrequests.ReviewRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "decision must be approve or reject", "a0c5e8d2-3f97-4b61-90e3-7c2d5f8a1b46")
		return
	}

	response, err := route.handler.Review(ctx, conversationhandler.ActorFromPrincipal(principal), reqCtx.Param("conv_public_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// endConversation godoc
// @Summary End a conversation
// @Description Close a pending or approved conversation. Ending starts the customer's cool-down.
// @Tags Conversations API
// @Security BearerAuth
// @Produce json
// @Param conv_public_id path string true "Conversation public ID"
// @Success 200 {object} conversationresponses.ConversationResponse "Conversation after closing"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 403 {object} responses.ErrorBody "Admin access required"
// @Failure 404 {object} responses.ErrorBody "Conversation not found"
// @Failure 409 {object} responses.ErrorBody "Conversation is already closed"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/conversations/{conv_public_id}/end [post]
func (route *ConversationRoute) endConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "f8d2a641-0b95-4e73-a6c0-92e5b7d3f180")
		return
	}

	response, err := route.handler.End(ctx, conversationhandler.ActorFromPrincipal(principal), reqCtx.Param("conv_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}
