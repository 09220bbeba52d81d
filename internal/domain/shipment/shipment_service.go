package shipment

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/utils/idgen"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

// Actor identifies the caller for shipment operations.
type Actor struct {
	ID    string
	Admin bool
}

// Notifier sends email notifications about shipment activity.
// Implementations must not block the caller on delivery.
type Notifier interface {
	ShipmentCreated(ctx context.Context, pkg *ShipmentPackage)
	ShipmentCanceled(ctx context.Context, pkg *ShipmentPackage)
}

// Service handles business logic for shipment packages.
type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

// NewService creates a new shipment service.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateInput carries the booking details for a new package.
type CreateInput struct {
	Description   string
	DeclaredValue decimal.Decimal
	Attributes    map[string]any
}

// Create registers a new shipment package for the customer.
func (s *Service) Create(ctx context.Context, customer Actor, input CreateInput) (*ShipmentPackage, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "description is required", nil, "3a80d5c2-7e14-4f9b-a6c8-0b2d9e5f7143")
	}
	if input.DeclaredValue.IsNegative() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "declared value must not be negative", nil, "b7c4e0f3-9d28-4a51-86e7-2f0a3d8c5b69")
	}

	publicID, err := idgen.GenerateSecureID("pkg", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate package ID")
	}

	now := s.now()
	pkg := &ShipmentPackage{
		PublicID:      publicID,
		CustomerID:    customer.ID,
		Description:   strings.TrimSpace(input.Description),
		DeclaredValue: input.DeclaredValue,
		Attributes:    input.Attributes,
		CreatedTime:   now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create shipment package")
	}

	if s.notifier != nil {
		s.notifier.ShipmentCreated(ctx, pkg)
	}
	return pkg, nil
}

// Get retrieves a package scoped to the caller.
func (s *Service) Get(ctx context.Context, actor Actor, publicID string) (*ShipmentPackage, error) {
	pkg, err := s.getByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && pkg.CustomerID != actor.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "shipment package not found", nil, "fd25a908-6b73-4c1e-92a5-48e0c7d3b612")
	}
	return pkg, nil
}

// List retrieves packages for the caller. Admins see every package and
// may filter; customers only ever see their own.
func (s *Service) List(ctx context.Context, actor Actor, filter Filter, pagination *query.Pagination) ([]*ShipmentPackage, int64, error) {
	if !actor.Admin {
		id := actor.ID
		filter = Filter{CustomerID: &id, Canceled: filter.Canceled}
	}

	packages, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list shipment packages")
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count shipment packages")
	}

	return packages, total, nil
}

// Cancel flags a package as canceled. Idempotent: canceling an already
// canceled package succeeds without another notification.
func (s *Service) Cancel(ctx context.Context, actor Actor, publicID string) (*ShipmentPackage, error) {
	pkg, err := s.getByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && pkg.CustomerID != actor.ID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "shipment package not found", nil, "61e8b2d4-0f97-4a36-8c5d-a3f7e9c04b28")
	}

	if pkg.Canceled {
		return pkg, nil
	}

	pkg.Cancel(s.now())
	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to cancel shipment package")
	}

	if s.notifier != nil {
		s.notifier.ShipmentCanceled(ctx, pkg)
	}
	return pkg, nil
}

func (s *Service) getByPublicID(ctx context.Context, publicID string) (*ShipmentPackage, error) {
	if !idgen.ValidateIDFormat(publicID, "pkg") {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid package ID", nil, "90b3f6e1-4d85-4c2a-b7f0-58d2a6e9c314")
	}
	pkg, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "shipment package not found")
	}
	return pkg, nil
}
