package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"todo-server/internal/domain/task"
	"todo-server/internal/utils/apperrors"
	"todo-server/internal/utils/functional"
)

// Registry exposes the task operations as model-callable tools. Every
// execution is scoped to the calling user; a tool can never see or touch
// another user's tasks. Failures never propagate as errors: they are
// serialized into an error payload the model can read and recover from.
type Registry struct {
	tasks  *task.Service
	logger zerolog.Logger
}

func NewRegistry(tasks *task.Service, logger zerolog.Logger) *Registry {
	return &Registry{
		tasks:  tasks,
		logger: logger.With().Str("component", "tool_registry").Logger(),
	}
}

// Declarations lists the tools offered to the model.
func (r *Registry) Declarations() []ToolDeclaration {
	return []ToolDeclaration{
		{
			Name:        "add_task",
			Description: "Add a new task to the user's to-do list.",
			Parameters: objectSchema(map[string]any{
				"title":       stringProp("Short title of the task"),
				"description": stringProp("Optional longer description"),
			}, []string{"title"}),
		},
		{
			Name:        "list_tasks",
			Description: "List the user's tasks, optionally filtered by status.",
			Parameters: objectSchema(map[string]any{
				"status": map[string]any{
					"type":        "string",
					"description": "Filter by completion status",
					"enum":        []string{"all", "pending", "completed"},
				},
			}, nil),
		},
		{
			Name:        "complete_task",
			Description: "Mark a task as completed by its numeric ID.",
			Parameters: objectSchema(map[string]any{
				"task_id": intProp("Numeric ID of the task"),
			}, []string{"task_id"}),
		},
		{
			Name:        "delete_task",
			Description: "Delete a task by its numeric ID.",
			Parameters: objectSchema(map[string]any{
				"task_id": intProp("Numeric ID of the task"),
			}, []string{"task_id"}),
		},
		{
			Name:        "update_task",
			Description: "Update a task's title and/or description.",
			Parameters: objectSchema(map[string]any{
				"task_id":     intProp("Numeric ID of the task"),
				"title":       stringProp("New title"),
				"description": stringProp("New description"),
			}, []string{"task_id"}),
		},
	}
}

// Execute runs the named tool with raw JSON arguments on behalf of userID
// and returns the JSON result payload. Unknown tools, malformed arguments
// and execution failures all come back as {"error": ...} payloads.
func (r *Registry) Execute(ctx context.Context, userID uint, name, arguments string) string {
	result, err := r.dispatch(ctx, userID, name, arguments)
	if err != nil {
		r.logger.Warn().Err(err).Str("tool", name).Uint("user_id", userID).Msg("tool execution failed")
		return errorPayload(err)
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return errorPayload(fmt.Errorf("encode tool result: %w", err))
	}
	return string(encoded)
}

func (r *Registry) dispatch(ctx context.Context, userID uint, name, arguments string) (any, error) {
	switch name {
	case "add_task":
		return r.addTask(ctx, userID, arguments)
	case "list_tasks":
		return r.listTasks(ctx, userID, arguments)
	case "complete_task":
		return r.completeTask(ctx, userID, arguments)
	case "delete_task":
		return r.deleteTask(ctx, userID, arguments)
	case "update_task":
		return r.updateTask(ctx, userID, arguments)
	default:
		return nil, fmt.Errorf("Unknown tool: %s", name)
	}
}

func (r *Registry) addTask(ctx context.Context, userID uint, arguments string) (any, error) {
	var args struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	if err := decodeArgs(arguments, &args); err != nil {
		return nil, err
	}
	t, err := r.tasks.Create(ctx, userID, task.CreateInput{Title: args.Title, Description: args.Description})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"task_id":     t.ID,
		"status":      "created",
		"title":       t.Title,
		"description": derefOrEmpty(t.Description),
	}, nil
}

func (r *Registry) listTasks(ctx context.Context, userID uint, arguments string) (any, error) {
	var args struct {
		Status string `json:"status"`
	}
	if err := decodeArgs(arguments, &args); err != nil {
		return nil, err
	}
	tasks, err := r.tasks.List(ctx, userID, args.Status)
	if err != nil {
		return nil, err
	}
	return functional.Map(tasks, func(t *task.Task) map[string]any {
		return map[string]any{
			"id":          t.ID,
			"title":       t.Title,
			"description": derefOrEmpty(t.Description),
			"completed":   t.Completed,
		}
	}), nil
}

func (r *Registry) completeTask(ctx context.Context, userID uint, arguments string) (any, error) {
	var args struct {
		TaskID uint `json:"task_id"`
	}
	if err := decodeArgs(arguments, &args); err != nil {
		return nil, err
	}
	t, err := r.tasks.SetCompletion(ctx, userID, args.TaskID, true)
	if err != nil {
		return nil, taskError(err, args.TaskID)
	}
	return map[string]any{"task_id": t.ID, "status": "completed", "title": t.Title}, nil
}

func (r *Registry) deleteTask(ctx context.Context, userID uint, arguments string) (any, error) {
	var args struct {
		TaskID uint `json:"task_id"`
	}
	if err := decodeArgs(arguments, &args); err != nil {
		return nil, err
	}
	t, err := r.tasks.Delete(ctx, userID, args.TaskID)
	if err != nil {
		return nil, taskError(err, args.TaskID)
	}
	return map[string]any{"task_id": t.ID, "status": "deleted", "title": t.Title}, nil
}

func (r *Registry) updateTask(ctx context.Context, userID uint, arguments string) (any, error) {
	var args struct {
		TaskID      uint    `json:"task_id"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := decodeArgs(arguments, &args); err != nil {
		return nil, err
	}
	t, err := r.tasks.Update(ctx, userID, args.TaskID, task.UpdateInput{Title: args.Title, Description: args.Description})
	if err != nil {
		return nil, taskError(err, args.TaskID)
	}
	return map[string]any{"task_id": t.ID, "status": "updated", "title": t.Title}, nil
}

func decodeArgs(arguments string, dst any) error {
	if arguments == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), dst); err != nil {
		return fmt.Errorf("Invalid arguments: %v", err)
	}
	return nil
}

// taskError rewrites missing-task failures into the message shape the model
// is prompted to recognize.
func taskError(err error, taskID uint) error {
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return fmt.Errorf("Task with ID %d not found", taskID)
	}
	return err
}

func errorPayload(err error) string {
	msg := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	encoded, mErr := json.Marshal(map[string]string{"error": msg})
	if mErr != nil {
		return `{"error": "tool execution failed"}`
	}
	return string(encoded)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func objectSchema(props map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}
