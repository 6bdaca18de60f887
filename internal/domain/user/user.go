// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"time"
)

// User models a locally registered account. PublicID is the external
// identifier carried in URLs and token subjects.
type User struct {
	ID             uint
	PublicID       string
	Email          string
	Name           *string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Repository defines storage operations for users. Find methods return
// (nil, nil) when no user matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPublicID(ctx context.Context, publicID string) (*User, error)
}
