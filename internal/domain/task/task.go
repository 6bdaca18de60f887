package task

import (
	"context"
	"time"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Task is a single to-do item owned by one user.
type Task struct {
	ID          uint
	UserID      uint
	Title       string
	Description *string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatusFilter narrows task listings by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// Filter describes criteria for listing tasks. UserID is mandatory: tasks
// are never visible across users.
type Filter struct {
	UserID    uint
	Completed *bool
}

// Repository abstracts task persistence. Lookups are scoped to a user so a
// task owned by someone else behaves as if it does not exist.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id, userID uint) (*Task, error)
	List(ctx context.Context, filter Filter) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, t *Task) error
}
