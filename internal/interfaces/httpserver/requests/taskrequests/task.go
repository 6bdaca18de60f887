package taskrequests

// CreateTaskRequest creates a new task.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// UpdateTaskRequest applies a partial update; absent fields stay untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// CompletionStatusRequest flips the completed flag.
type CompletionStatusRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// ListTasksQuery filters the task listing.
type ListTasksQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=all pending completed"`
}
