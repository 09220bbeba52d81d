package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/domain/shipment"
	"freightdesk/services/support-api/internal/infrastructure/database/dbschema"
	"freightdesk/services/support-api/internal/infrastructure/database/transaction"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

type ShipmentGormRepository struct {
	db *transaction.Database
}

var _ shipment.Repository = (*ShipmentGormRepository)(nil)

func NewShipmentGormRepository(db *transaction.Database) shipment.Repository {
	return &ShipmentGormRepository{db: db}
}

func (repo *ShipmentGormRepository) Create(ctx context.Context, pkg *shipment.ShipmentPackage) error {
	entity, err := dbschema.NewSchemaShipmentPackage(pkg)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to encode package attributes",
			err,
			"40b8e2d7-9c15-4f63-a0b9-7d2e5c8f1a46",
		)
	}
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create package",
			err,
			"6f1d3a95-28e0-4c74-b6d1-09c8e5f2a730",
		)
	}
	pkg.ID = entity.ID
	pkg.CreatedTime = entity.CreatedTime
	pkg.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *ShipmentGormRepository) FindByPublicID(ctx context.Context, publicID string) (*shipment.ShipmentPackage, error) {
	var entity dbschema.ShipmentPackage
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"package not found",
			err,
			"95e0c7a2-4d81-4b36-8f5e-1a3d6c9b2e07",
		)
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find package",
			err,
			"c2a85f10-6e39-4d27-b0c4-8f5a1d7e3906",
		)
	}
	return entity.EtoD()
}

func (repo *ShipmentGormRepository) FindByFilter(ctx context.Context, filter shipment.Filter, pagination *query.Pagination) ([]*shipment.ShipmentPackage, error) {
	tx := repo.applyFilter(ctx, filter)

	tx = tx.Order("created_time " + pagination.EffectiveOrder())
	if limit := pagination.EffectiveLimit(50, 200); limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset := pagination.EffectiveOffset(); offset > 0 {
		tx = tx.Offset(offset)
	}

	var entities []dbschema.ShipmentPackage
	if err := tx.Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list packages",
			err,
			"7d4b0e86-1f52-4a93-c8d0-35e9a2f6b174",
		)
	}

	packages := make([]*shipment.ShipmentPackage, 0, len(entities))
	for i := range entities {
		pkg, err := entities[i].EtoD()
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

func (repo *ShipmentGormRepository) Count(ctx context.Context, filter shipment.Filter) (int64, error) {
	var total int64
	if err := repo.applyFilter(ctx, filter).Count(&total).Error; err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count packages",
			err,
			"e1c96b03-8a47-4d25-9f0b-62d8e4a1c537",
		)
	}
	return total, nil
}

func (repo *ShipmentGormRepository) Update(ctx context.Context, pkg *shipment.ShipmentPackage) error {
	entity, err := dbschema.NewSchemaShipmentPackage(pkg)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to encode package attributes",
			err,
			"0b7f4e29-d3a8-4c61-85f0-9e2c6d1b5a84",
		)
	}
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.ShipmentPackage{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"description":    entity.Description,
			"declared_value": entity.DeclaredValue,
			"attributes":     entity.Attributes,
			"canceled":       entity.Canceled,
			"canceled_at":    entity.CanceledAt,
			"updated_at":     entity.UpdatedAt,
		})
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update package",
			result.Error,
			"a95d2c60-7e14-4b38-90ac-5f8b3d6e2071",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"package not found",
			nil,
			"38f6a1d4-0c97-4e52-b3e8-d60a9c2f5b13",
		)
	}
	return nil
}

// FindCanceledBefore lists canceled packages created before the cutoff.
func (repo *ShipmentGormRepository) FindCanceledBefore(ctx context.Context, cutoff time.Time) ([]*shipment.ShipmentPackage, error) {
	var entities []dbschema.ShipmentPackage
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("canceled = ?", true).
		Where("created_time < ?", cutoff).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list canceled packages",
			err,
			"52e8d0b7-a641-4f29-8c3d-07f5b9e1a624",
		)
	}

	packages := make([]*shipment.ShipmentPackage, 0, len(entities))
	for i := range entities {
		pkg, err := entities[i].EtoD()
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

func (repo *ShipmentGormRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&dbschema.ShipmentPackage{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete packages",
			err,
			"b04c7f25-e893-4d16-a2b5-61d0f8c3e947",
		)
	}
	return nil
}

func (repo *ShipmentGormRepository) applyFilter(ctx context.Context, filter shipment.Filter) *gorm.DB {
	tx := repo.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.ShipmentPackage{})
	if filter.PublicID != nil {
		tx = tx.Where("public_id = ?", *filter.PublicID)
	}
	if filter.CustomerID != nil {
		tx = tx.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Canceled != nil {
		tx = tx.Where("canceled = ?", *filter.Canceled)
	}
	return tx
}
