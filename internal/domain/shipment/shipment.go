// Package shipment models freight packages tracked for support purposes.
package shipment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"freightdesk/services/support-api/internal/domain/query"
)

// ShipmentPackage is a customer's freight package record.
type ShipmentPackage struct {
	ID       uint   `json:"-"`
	PublicID string `json:"id"` // String ID like "pkg_abc123"

	CustomerID  string `json:"customer_id"`
	Description string `json:"description"`

	// DeclaredValue is the customer-declared value in the account
	// currency, kept exact for claims handling.
	DeclaredValue decimal.Decimal `json:"declared_value"`

	// Attributes holds free-form package details (dimensions, weight,
	// handling flags) as supplied by the booking flow.
	Attributes map[string]any `json:"attributes,omitempty"`

	Canceled   bool       `json:"canceled"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`

	CreatedTime time.Time `json:"created_time"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter narrows shipment package listings.
type Filter struct {
	PublicID   *string
	CustomerID *string
	Canceled   *bool
}

// Repository defines storage operations for shipment packages.
type Repository interface {
	Create(ctx context.Context, pkg *ShipmentPackage) error
	FindByPublicID(ctx context.Context, publicID string) (*ShipmentPackage, error)
	FindByFilter(ctx context.Context, filter Filter, pagination *query.Pagination) ([]*ShipmentPackage, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Update(ctx context.Context, pkg *ShipmentPackage) error

	// Janitor support: canceled packages older than the cutoff, and a
	// flat batch delete (packages own no child rows).
	FindCanceledBefore(ctx context.Context, cutoff time.Time) ([]*ShipmentPackage, error)
	DeleteByIDs(ctx context.Context, ids []uint) error
}

// Cancel flags the package as canceled at the given instant.
// Canceling an already canceled package is a no-op.
func (p *ShipmentPackage) Cancel(now time.Time) {
	if p.Canceled {
		return
	}
	p.Canceled = true
	p.CanceledAt = &now
	p.UpdatedAt = now
}
