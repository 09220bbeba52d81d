package shipmentrequests

// CreateShipmentRequest registers a package for support tracking.
// DeclaredValue is a decimal string to avoid float rounding on money.
type CreateShipmentRequest struct {
	Description   string         `json:"description" binding:"required"`
	DeclaredValue string         `json:"declared_value" binding:"required"`
	Attributes    map[string]any `json:"attributes,omitempty"`
}

// ListShipmentsQueryParams represents query parameters for listing packages
type ListShipmentsQueryParams struct {
	Canceled *bool   `form:"canceled"`
	Limit    *int    `form:"limit"`
	Order    *string `form:"order"`
}
