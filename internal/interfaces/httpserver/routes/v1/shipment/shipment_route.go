package shipment

import (
	"net/http"

	"freightdesk/services/support-api/internal/interfaces/httpserver/handlers/shipmenthandler"
	"freightdesk/services/support-api/internal/interfaces/httpserver/middlewares"
	"freightdesk/services/support-api/internal/interfaces/httpserver/requests"
	shipmentrequests "freightdesk/services/support-api/internal/interfaces/httpserver/requests/shipment"
	"freightdesk/services/support-api/internal/interfaces/httpserver/responses"
	"freightdesk/services/support-api/internal/utils/platformerrors"

	"github.com/gin-gonic/gin"
)

type ShipmentRoute struct {
	handler *shipmenthandler.ShipmentHandler
}

func NewShipmentRoute(handler *shipmenthandler.ShipmentHandler) *ShipmentRoute {
	return &ShipmentRoute{handler: handler}
}

func (route *ShipmentRoute) RegisterRouter(router gin.IRouter) {
	shipments := router.Group("/shipments")
	shipments.GET("", route.listShipments)
	shipments.POST("", route.createShipment)
	shipments.GET("/:pkg_public_id", route.getShipment)
	shipments.POST("/:pkg_public_id/cancel", route.cancelShipment)
}

// listShipments godoc
// @Summary List shipment packages
// @Description List shipment packages visible to the caller. Customers see their own; admins see all.
// @Tags Shipments API
// @Security BearerAuth
// @Produce json
// @Param canceled query bool false "Filter by cancellation state"
// @Param limit query int false "Maximum number of packages to return"
// @Param offset query int false "Number of packages to skip"
// @Param order query string false "Sort order (asc or desc)"
// @Success 200 {object} shipmentresponses.ShipmentListResponse "Successfully retrieved packages"
// @Failure 400 {object} responses.ErrorBody "Invalid request parameters"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/shipments [get]
func (route *ShipmentRoute) listShipments(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "c49d7e02-8a35-4f61-b2d8-50e3a6c9f174")
		return
	}

	var params shipmentrequests.ListShipmentsQueryParams
	if err := reqCtx.ShouldBindQuery(&params); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid query parameters", "5e0b8c37-1d94-4a26-9f70-d2c6e8a4b513")
		return
	}

	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	response, err := route.handler.List(ctx, shipmenthandler.ActorFromPrincipal(principal), params.Canceled, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// createShipment godoc
// @Summary Book a shipment package
// @Description Register a new package under the caller's account. The declared value is a decimal string.
// @Tags Shipments API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body shipmentrequests.CreateShipmentRequest true "Package details"
// @Success 201 {object} shipmentresponses.ShipmentResponse "Package created"
// @Failure 400 {object} responses.ErrorBody "Invalid request body"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/shipments [post]
func (route *ShipmentRoute) createShipment(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "87f3c5a1-2e60-4d98-b4f7-a19d0e6c3528")
		return
	}

	var req shipmentrequests.CreateShipmentRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "19a6d4f8-7c02-4b35-8e61-f4b0c7d2a596")
		return
	}

	response, err := route.handler.Create(ctx, shipmenthandler.ActorFromPrincipal(principal), req)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}

// getShipment godoc
// @Summary Get a shipment package
// @Description Retrieve a single package by public ID. Customers can only access their own packages.
// @Tags Shipments API
// @Security BearerAuth
// @Produce json
// @Param pkg_public_id path string true "Package public ID"
// @Success 200 {object} shipmentresponses.ShipmentResponse "Successfully retrieved package"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 404 {object} responses.ErrorBody "Package not found"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/shipments/{pkg_public_id} [get]
func (route *ShipmentRoute) getShipment(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "e61a9f52-0d38-4c74-a5b0-38c7d2e9f641")
		return
	}

	response, err := route.handler.Get(ctx, shipmenthandler.ActorFromPrincipal(principal), reqCtx.Param("pkg_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

// cancelShipment godoc
// @Summary Cancel a shipment package
// @Description Flag a package as canceled. Canceling an already canceled package succeeds without effect.
// @Tags Shipments API
// @Security BearerAuth
// @Produce json
// @Param pkg_public_id path string true "Package public ID"
// @Success 200 {object} shipmentresponses.ShipmentResponse "Package after cancellation"
// @Failure 401 {object} responses.ErrorBody "Unauthorized - missing or invalid authentication"
// @Failure 404 {object} responses.ErrorBody "Package not found"
// @Failure 500 {object} responses.ErrorBody "Internal server error"
// @Router /v1/shipments/{pkg_public_id}/cancel [post]
func (route *ShipmentRoute) cancelShipment(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "0f5c2d89-6b41-4e07-93a5-c8e1f7d0b362")
		return
	}

	response, err := route.handler.Cancel(ctx, shipmenthandler.ActorFromPrincipal(principal), reqCtx.Param("pkg_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}
