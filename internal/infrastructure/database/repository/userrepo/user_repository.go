package userrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/domain/user"
	"freightdesk/services/support-api/internal/infrastructure/database/dbschema"
	"freightdesk/services/support-api/internal/infrastructure/database/transaction"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) FindByIssuerAndSubject(ctx context.Context, issuer, subject string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("issuer = ? AND subject = ?", issuer, subject).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user",
			err,
			"61d9b2f0-4e87-4a35-9c1d-80f6e3a5c247",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindBySubject(ctx context.Context, subject string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("subject = ?", subject).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by subject",
			err,
			"8f3c5a91-d062-4e48-b7a0-29c1d6f4e583",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by public id",
			err,
			"2e7a0d58-936f-4c21-8b4e-d5f08a1c6b39",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindAll(ctx context.Context, pagination *query.Pagination) ([]*user.User, int64, error) {
	tx := repo.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.User{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count users",
			err,
			"d50e8b36-17a4-4f92-a6c3-08e2b7d9f415",
		)
	}

	tx = tx.Order("created_at " + pagination.EffectiveOrder())
	if limit := pagination.EffectiveLimit(50, 200); limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset := pagination.EffectiveOffset(); offset > 0 {
		tx = tx.Offset(offset)
	}

	var entities []dbschema.User
	if err := tx.Find(&entities).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list users",
			err,
			"f47c1e90-2ab5-4d68-93f0-6c8d5b0e2a71",
		)
	}

	users := make([]*user.User, 0, len(entities))
	for i := range entities {
		users = append(users, entities[i].EtoD())
	}
	return users, total, nil
}

// Upsert inserts the user or refreshes profile fields when a row with
// the same issuer and subject already exists. The stored public id
// wins over the one on the incoming record.
func (repo *UserGormRepository) Upsert(ctx context.Context, u *user.User) (*user.User, error) {
	entity := dbschema.NewSchemaUser(u)
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "issuer"}, {Name: "subject"}},
			DoUpdates: clause.Assignments(map[string]any{
				"first_name": entity.FirstName,
				"last_name":  entity.LastName,
				"email":      entity.Email,
				"role":       entity.Role,
				"updated_at": entity.UpdatedAt,
			}),
		}).
		Create(entity).
		Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"user with this email already exists",
				err,
				"09b6e4d2-85c1-4f37-a0d8-3e5f9a2c7b60",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to upsert user",
			err,
			"c83f0a17-6d49-4b25-8e91-f2b4d7c0e658",
		)
	}

	var stored dbschema.User
	err = repo.db.GetTx(ctx).WithContext(ctx).
		Where("issuer = ? AND subject = ?", entity.Issuer, entity.Subject).
		First(&stored).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to reload user after upsert",
			err,
			"74a2d9c5-0e18-4f63-b4a7-91c6e3f8d025",
		)
	}
	return stored.EtoD(), nil
}

func (repo *UserGormRepository) DeleteBySubject(ctx context.Context, subject string) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("subject = ?", subject).
		Delete(&dbschema.User{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete user",
			err,
			"ba16f5e8-3d70-4c92-85b4-e0d29c6a1f37",
		)
	}
	return nil
}

// isUniqueViolation detects postgres unique constraint errors. The
// string fallback covers drivers that do not surface *pq.Error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
