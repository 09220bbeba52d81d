package conversationrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"freightdesk/services/support-api/internal/domain/conversation"
	"freightdesk/services/support-api/internal/domain/query"
	"freightdesk/services/support-api/internal/infrastructure/database/dbschema"
	"freightdesk/services/support-api/internal/infrastructure/database/transaction"
	"freightdesk/services/support-api/internal/utils/platformerrors"
)

type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *transaction.Database) conversation.Repository {
	return &ConversationGormRepository{db: db}
}

func (repo *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"72c9e1a5-4d38-4b06-9f7e-a2d5c8b0f314",
		)
	}
	conv.ID = entity.ID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *ConversationGormRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"conversation not found",
			err,
			"c04b7d92-8e36-4f51-a9c0-63e2f5d8b417",
		)
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation",
			err,
			"1e5a8c30-b294-4d67-83f1-09d6e4b7a2c5",
		)
	}
	return entity.EtoD(), nil
}

func (repo *ConversationGormRepository) FindByFilter(ctx context.Context, filter conversation.Filter, pagination *query.Pagination) ([]*conversation.Conversation, error) {
	tx := repo.applyFilter(ctx, filter)

	tx = tx.Order("created_at " + pagination.EffectiveOrder())
	if limit := pagination.EffectiveLimit(50, 200); limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset := pagination.EffectiveOffset(); offset > 0 {
		tx = tx.Offset(offset)
	}

	var entities []dbschema.Conversation
	if err := tx.Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"9d2f6b84-07c3-4a5e-b1d8-4e7a0c9f5236",
		)
	}

	conversations := make([]*conversation.Conversation, 0, len(entities))
	for i := range entities {
		conversations = append(conversations, entities[i].EtoD())
	}
	return conversations, nil
}

func (repo *ConversationGormRepository) Count(ctx context.Context, filter conversation.Filter) (int64, error) {
	var total int64
	if err := repo.applyFilter(ctx, filter).Count(&total).Error; err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count conversations",
			err,
			"5b0e3d71-ac92-4f68-9e24-d7f1a8c50b93",
		)
	}
	return total, nil
}

func (repo *ConversationGormRepository) LatestByCustomer(ctx context.Context, customerID string) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
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
			"failed to find latest conversation",
			err,
			"e8a16f42-3c90-4d75-b6a3-58f0d2c7e914",
		)
	}
	return entity.EtoD(), nil
}

func (repo *ConversationGormRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"status":            entity.Status,
			"status_changed_at": entity.StatusChangedAt,
			"admin_id":          entity.AdminID,
			"admin_first_name":  entity.AdminFirstName,
			"admin_last_name":   entity.AdminLastName,
			"concern":           entity.Concern,
			"last_message":      entity.LastMessage,
			"schema_version":    entity.SchemaVersion,
			"updated_at":        entity.UpdatedAt,
		})
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation",
			result.Error,
			"b3d05c78-61e9-4a2f-8d46-0c9e7f5a1b82",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"conversation not found",
			nil,
			"fa49d2e6-80b5-4c13-97da-3e6f1c8b0d25",
		)
	}
	return nil
}

// DeleteWithMessages removes a conversation and its messages in a
// single transaction. Missing rows are tolerated so sweeps stay
// idempotent.
func (repo *ConversationGormRepository) DeleteWithMessages(ctx context.Context, id uint) error {
	err := repo.db.RunInTx(ctx, func(ctx context.Context) error {
		tx := repo.db.GetTx(ctx).WithContext(ctx)
		if err := tx.Where("conversation_id = ?", id).Delete(&dbschema.ConversationMessage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&dbschema.Conversation{}).Error
	})
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete conversation",
			err,
			"27c8f0b5-9d34-4e61-a8f2-6b0d5e3c9a74",
		)
	}
	return nil
}

func (repo *ConversationGormRepository) AddMessage(ctx context.Context, conversationID uint, message *conversation.Message) error {
	message.ConversationID = conversationID
	entity := dbschema.NewSchemaConversationMessage(message)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to append message",
			err,
			"d6e24a90-5f17-4b83-9c0e-82a7d1f5c306",
		)
	}
	message.ID = entity.ID
	message.CreatedAt = entity.CreatedAt
	return nil
}

func (repo *ConversationGormRepository) ListMessages(ctx context.Context, conversationID uint, pagination *query.Pagination) ([]*conversation.Message, error) {
	tx := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at " + pagination.EffectiveOrder() + ", id " + pagination.EffectiveOrder())
	if after := pagination.EffectiveAfter(); after != "" {
		var cursor dbschema.ConversationMessage
		err := repo.db.GetTx(ctx).WithContext(ctx).
			Select("created_at", "id").
			Where("conversation_id = ? AND public_id = ?", conversationID, after).
			First(&cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, platformerrors.NewError(
					ctx,
					platformerrors.LayerRepository,
					platformerrors.ErrorTypeValidation,
					"unknown after cursor",
					err,
					"3a9e1d64-7c25-4f80-b6d3-08e5a2c9f417",
				)
			}
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeDatabaseError,
				"failed to resolve after cursor",
				err,
				"b57d0f28-6e93-4a41-8c05-d2f7e1b4a869",
			)
		}
		tx = tx.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	if limit := pagination.EffectiveLimit(100, 500); limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset := pagination.EffectiveOffset(); offset > 0 {
		tx = tx.Offset(offset)
	}

	var entities []dbschema.ConversationMessage
	if err := tx.Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"814f6c2d-3b09-4e57-a1c8-f5d20b9e7a63",
		)
	}

	messages := make([]*conversation.Message, 0, len(entities))
	for i := range entities {
		messages = append(messages, entities[i].EtoD())
	}
	return messages, nil
}

// FindExpired lists conversations created before the cutoff whose
// status is deletable or unset. Approved rows never match.
func (repo *ConversationGormRepository) FindExpired(ctx context.Context, olderThan time.Time, statuses []conversation.Status) ([]*conversation.Conversation, error) {
	var entities []dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("created_at < ?", olderThan).
		Where("status IN ? OR status = ''", statuses).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list expired conversations",
			err,
			"f90c5e31-7a84-4d26-b5f0-38d1c6a9e052",
		)
	}

	conversations := make([]*conversation.Conversation, 0, len(entities))
	for i := range entities {
		conversations = append(conversations, entities[i].EtoD())
	}
	return conversations, nil
}

// FindOrphaned lists rows without customer identity, regardless of age.
func (repo *ConversationGormRepository) FindOrphaned(ctx context.Context) ([]*conversation.Conversation, error) {
	var entities []dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("customer_id = ''").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list orphaned conversations",
			err,
			"3a6d9f08-25cb-4e71-80d4-c1f7b2e5a936",
		)
	}

	conversations := make([]*conversation.Conversation, 0, len(entities))
	for i := range entities {
		conversations = append(conversations, entities[i].EtoD())
	}
	return conversations, nil
}

func (repo *ConversationGormRepository) applyFilter(ctx context.Context, filter conversation.Filter) *gorm.DB {
	tx := repo.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.Conversation{})
	if filter.ID != nil {
		tx = tx.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		tx = tx.Where("public_id = ?", *filter.PublicID)
	}
	if filter.CustomerID != nil {
		tx = tx.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.AdminID != nil {
		tx = tx.Where("admin_id = ?", *filter.AdminID)
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", *filter.Status)
	}
	return tx
}
