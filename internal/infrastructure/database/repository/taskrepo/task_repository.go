package taskrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todo-server/internal/domain/task"
	"todo-server/internal/infrastructure/database/dbschema"
	"todo-server/internal/infrastructure/database/transaction"
	"todo-server/internal/utils/functional"
)

type TaskGormRepository struct {
	db *transaction.Database
}

var _ task.Repository = (*TaskGormRepository)(nil)

func NewTaskGormRepository(db *transaction.Database) task.Repository {
	return &TaskGormRepository{db: db}
}

func (repo *TaskGormRepository) Create(ctx context.Context, t *task.Task) error {
	entity := dbschema.NewSchemaTask(t)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	t.ID = entity.ID
	t.CreatedAt = entity.CreatedAt
	t.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *TaskGormRepository) FindByID(ctx context.Context, id, userID uint) (*task.Task, error) {
	var entity dbschema.Task
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task by id: %w", err)
	}
	return entity.EtoD(), nil
}

func (repo *TaskGormRepository) List(ctx context.Context, filter task.Filter) ([]*task.Task, error) {
	var entities []*dbschema.Task
	query := repo.applyFilter(repo.db.GetTx(ctx).WithContext(ctx), filter)
	if err := query.Order("id ASC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return functional.Map(entities, func(e *dbschema.Task) *task.Task {
		return e.EtoD()
	}), nil
}

func (repo *TaskGormRepository) Update(ctx context.Context, t *task.Task) error {
	entity := dbschema.NewSchemaTask(t)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	t.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *TaskGormRepository) Delete(ctx context.Context, t *task.Task) error {
	result := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", t.UserID).
		Delete(&dbschema.Task{}, t.ID)
	if result.Error != nil {
		return fmt.Errorf("delete task: %w", result.Error)
	}
	return nil
}

func (repo *TaskGormRepository) applyFilter(query *gorm.DB, filter task.Filter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	return query
}
