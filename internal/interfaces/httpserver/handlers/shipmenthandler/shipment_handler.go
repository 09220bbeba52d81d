package shipmenthandler

import (
	"context"

	"github.com/shopspring/decimal"

	"freightdesk/services/support-api/internal/domain"
	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/domain/shipment"
	shipmentrequests "freightdesk/services/support-api/internal/interfaces/httpserver/requests/shipment"
	shipmentresponses "freightdesk/services/support-api/internal/interfaces/httpserver/responses/shipment"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

// ShipmentHandler handles shipment package HTTP requests
type ShipmentHandler struct {
	shipmentService *shipment.Service
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(shipmentService *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// ActorFromPrincipal maps the authenticated principal onto a shipment actor.
func ActorFromPrincipal(p domain.Principal) shipment.Actor {
	return shipment.Actor{ID: p.ID, Admin: p.IsAdmin()}
}

// Create books a new shipment package for the caller.
func (h *ShipmentHandler) Create(
	ctx context.Context,
	actor shipment.Actor,
	req shipmentrequests.CreateShipmentRequest,
) (*shipmentresponses.ShipmentResponse, error) {
	declaredValue, err := decimal.NewFromString(req.DeclaredValue)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"declared_value must be a decimal string", err, "d41f7a93-2c68-4e05-b1d7-59e8c3a60f24")
	}

	pkg, err := h.shipmentService.Create(ctx, actor, shipment.CreateInput{
		Description:   req.Description,
		DeclaredValue: declaredValue,
		Attributes:    req.Attributes,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create shipment package")
	}
	return shipmentresponses.NewShipmentResponse(pkg), nil
}

// Get returns one shipment package visible to the caller.
func (h *ShipmentHandler) Get(ctx context.Context, actor shipment.Actor, publicID string) (*shipmentresponses.ShipmentResponse, error) {
	pkg, err := h.shipmentService.Get(ctx, actor, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get shipment package")
	}
	return shipmentresponses.NewShipmentResponse(pkg), nil
}

// List returns a page of shipment packages visible to the caller.
func (h *ShipmentHandler) List(
	ctx context.Context,
	actor shipment.Actor,
	canceled *bool,
	pagination *query.Pagination,
) (*shipmentresponses.ShipmentListResponse, error) {
	filter := shipment.Filter{Canceled: canceled}

	packages, total, err := h.shipmentService.List(ctx, actor, filter, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list shipment packages")
	}

	offset := 0
	if pagination != nil && pagination.Offset != nil {
		offset = *pagination.Offset
	}
	hasMore := int64(offset+len(packages)) < total
	return shipmentresponses.NewShipmentListResponse(packages, hasMore, total), nil
}

// Cancel flags a shipment package as canceled.
func (h *ShipmentHandler) Cancel(ctx context.Context, actor shipment.Actor, publicID string) (*shipmentresponses.ShipmentResponse, error) {
	pkg, err := h.shipmentService.Cancel(ctx, actor, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to cancel shipment package")
	}
	return shipmentresponses.NewShipmentResponse(pkg), nil
}
