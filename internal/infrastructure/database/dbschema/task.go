package dbschema

import (
	"todo-server/internal/domain/task"
	"todo-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Task{})
}

// Task represents the persisted schema for to-do items.
type Task struct {
	BaseModel
	UserID      uint    `gorm:"index:idx_task_user_completed;not null"`
	User        User    `gorm:"foreignKey:UserID"`
	Title       string  `gorm:"type:varchar(200);not null"`
	Description *string `gorm:"type:varchar(1000)"`
	Completed   bool    `gorm:"index:idx_task_user_completed;not null;default:false"`
}

// NewSchemaTask converts a domain task into a schema instance.
func NewSchemaTask(t *task.Task) *Task {
	if t == nil {
		return nil
	}
	return &Task{
		BaseModel: BaseModel{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		},
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}

// EtoD converts a schema task back to the domain representation.
func (t *Task) EtoD() *task.Task {
	if t == nil {
		return nil
	}
	return &task.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
