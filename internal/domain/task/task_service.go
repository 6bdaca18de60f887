package task

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"todo-server/internal/utils/apperrors"
)

// Service implements task operations on top of a Repository. All methods
// take the acting user's id and never expose another user's tasks.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "task_service").Logger(),
	}
}

// CreateInput carries the fields accepted when creating a task.
type CreateInput struct {
	Title       string
	Description *string
}

// UpdateInput carries a partial update: nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
}

func (s *Service) Create(ctx context.Context, userID uint, input CreateInput) (*Task, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	t := &Task{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "task_create_failed", "failed to create task")
	}
	s.logger.Debug().Uint("task_id", t.ID).Uint("user_id", userID).Msg("task created")
	return t, nil
}

func (s *Service) Get(ctx context.Context, userID, taskID uint) (*Task, error) {
	t, err := s.repo.FindByID(ctx, taskID, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "task_lookup_failed", "failed to look up task")
	}
	if t == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "task_not_found", "Task not found")
	}
	return t, nil
}

// List returns the user's tasks, optionally narrowed by status
// ("all", "pending", "completed"; empty means all).
func (s *Service) List(ctx context.Context, userID uint, status string) ([]*Task, error) {
	filter := Filter{UserID: userID}
	switch StatusFilter(status) {
	case "", StatusAll:
	case StatusPending:
		completed := false
		filter.Completed = &completed
	case StatusCompleted:
		completed := true
		filter.Completed = &completed
	default:
		return nil, apperrors.Newf(apperrors.KindValidation, "invalid_status_filter",
			"invalid status filter %q, expected all, pending or completed", status)
	}

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "task_list_failed", "failed to list tasks")
	}
	return tasks, nil
}

// Update applies a partial update: only non-nil fields of input change.
func (s *Service) Update(ctx context.Context, userID, taskID uint, input UpdateInput) (*Task, error) {
	t, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		t.Title = title
	}
	if input.Description != nil {
		if err := validateDescription(input.Description); err != nil {
			return nil, err
		}
		t.Description = input.Description
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "task_update_failed", "failed to update task")
	}
	return t, nil
}

// SetCompletion flips the completed flag without touching other fields.
func (s *Service) SetCompletion(ctx context.Context, userID, taskID uint, completed bool) (*Task, error) {
	t, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	t.Completed = completed
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "task_update_failed", "failed to update task")
	}
	return t, nil
}

// Delete removes the task and returns its last state.
func (s *Service) Delete(ctx context.Context, userID, taskID uint) (*Task, error) {
	t, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, t); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "task_delete_failed", "failed to delete task")
	}
	s.logger.Debug().Uint("task_id", taskID).Uint("user_id", userID).Msg("task deleted")
	return t, nil
}

func validateTitle(title string) error {
	if title == "" {
		return apperrors.New(apperrors.KindValidation, "title_required", "title must not be empty")
	}
	if len(title) > MaxTitleLength {
		return apperrors.Newf(apperrors.KindValidation, "title_too_long",
			"title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len(*description) > MaxDescriptionLength {
		return apperrors.Newf(apperrors.KindValidation, "description_too_long",
			"description must be at most %d characters", MaxDescriptionLength)
	}
	return nil
}
