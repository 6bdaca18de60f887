package conversationrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/database/dbschema"
	"todo-server/internal/infrastructure/database/transaction"
	"todo-server/internal/utils/functional"
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
		return fmt.Errorf("create conversation: %w", err)
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
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation by public id: %w", err)
	}
	return entity.EtoD(), nil
}

func (repo *ConversationGormRepository) ListByUser(ctx context.Context, userID uint) ([]*conversation.Conversation, error) {
	var entities []*dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return functional.Map(entities, func(e *dbschema.Conversation) *conversation.Conversation {
		return e.EtoD()
	}), nil
}

func (repo *ConversationGormRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

// Delete removes the conversation together with its messages.
func (repo *ConversationGormRepository) Delete(ctx context.Context, conv *conversation.Conversation) error {
	return repo.db.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx := repo.db.GetTx(txCtx).WithContext(txCtx)
		if err := tx.Where("conversation_id = ?", conv.ID).Delete(&dbschema.Message{}).Error; err != nil {
			return fmt.Errorf("delete conversation messages: %w", err)
		}
		if err := tx.Delete(&dbschema.Conversation{}, conv.ID).Error; err != nil {
			return fmt.Errorf("delete conversation: %w", err)
		}
		return nil
	})
}

func (repo *ConversationGormRepository) AppendMessages(ctx context.Context, msgs []*conversation.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	entities := functional.Map(msgs, func(m *conversation.Message) *dbschema.Message {
		return dbschema.NewSchemaMessage(m)
	})
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entities).Error; err != nil {
		return fmt.Errorf("append messages: %w", err)
	}
	for i, entity := range entities {
		msgs[i].ID = entity.ID
		msgs[i].CreatedAt = entity.CreatedAt
	}
	return nil
}

func (repo *ConversationGormRepository) ListMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var entities []*dbschema.Message
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return functional.Map(entities, func(e *dbschema.Message) *conversation.Message {
		return e.EtoD()
	}), nil
}
