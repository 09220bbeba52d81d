package shipmentresponses

import (
	"freightdesk/services/support-api/internal/domain/shipment"
)

// ShipmentResponse is the wire shape of a shipment package.
type ShipmentResponse struct {
	ID            string         `json:"id"`
	Object        string         `json:"object"`
	CustomerID    string         `json:"customer_id"`
	Description   string         `json:"description"`
	DeclaredValue string         `json:"declared_value"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	Canceled      bool           `json:"canceled"`
	CanceledAt    *int64         `json:"canceled_at,omitempty"`
	CreatedAt     int64          `json:"created_at"`
}

// ShipmentListResponse represents a paginated list of packages
type ShipmentListResponse struct {
	Object  string             `json:"object"`
	Data    []ShipmentResponse `json:"data"`
	HasMore bool               `json:"has_more"`
	Total   int64              `json:"total"`
}

// NewShipmentResponse creates a response from a domain package
func NewShipmentResponse(pkg *shipment.ShipmentPackage) *ShipmentResponse {
	if pkg == nil {
		return nil
	}
	response := &ShipmentResponse{
		ID:            pkg.PublicID,
		Object:        "shipment.package",
		CustomerID:    pkg.CustomerID,
		Description:   pkg.Description,
		DeclaredValue: pkg.DeclaredValue.StringFixed(2),
		Attributes:    pkg.Attributes,
		Canceled:      pkg.Canceled,
		CreatedAt:     pkg.CreatedTime.Unix(),
	}
	if pkg.CanceledAt != nil {
		ts := pkg.CanceledAt.Unix()
		response.CanceledAt = &ts
	}
	return response
}

// NewShipmentListResponse creates a package list response
func NewShipmentListResponse(packages []*shipment.ShipmentPackage, hasMore bool, total int64) *ShipmentListResponse {
	data := make([]ShipmentResponse, 0, len(packages))
	for _, pkg := range packages {
		if pkg == nil {
			continue
		}
		data = append(data, *NewShipmentResponse(pkg))
	}
	return &ShipmentListResponse{
		Object:  "list",
		Data:    data,
		HasMore: hasMore,
		Total:   total,
	}
}
