package userrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/database/dbschema"
	"todo-server/internal/infrastructure/database/transaction"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) Create(ctx context.Context, u *user.User) error {
	entity := dbschema.NewSchemaUser(u)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = entity.ID
	u.CreatedAt = entity.CreatedAt
	u.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *UserGormRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("email = ?", email).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
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
		return nil, fmt.Errorf("find user by public id: %w", err)
	}
	return entity.EtoD(), nil
}
