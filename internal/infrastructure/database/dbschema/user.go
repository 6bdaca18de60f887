package dbschema

import (
	"todo-server/internal/domain/user"
	"todo-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the persisted schema for locally registered accounts.
type User struct {
	BaseModel
	PublicID       string  `gorm:"type:varchar(64);not null;uniqueIndex"`
	Email          string  `gorm:"type:varchar(320);not null;uniqueIndex"`
	Name           *string `gorm:"type:varchar(255)"`
	HashedPassword string  `gorm:"type:varchar(128);not null"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		PublicID:       u.PublicID,
		Email:          u.Email,
		Name:           u.Name,
		HashedPassword: u.HashedPassword,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}
	return &user.User{
		ID:             u.ID,
		PublicID:       u.PublicID,
		Email:          u.Email,
		Name:           u.Name,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
