package domain

import "context"

type Task struct {
	ID          int64    `gorm:"column:task_id;primaryKey;autoIncrement" json:"task_id"`
	ProjectID   int64    `gorm:"index;not null" json:"project_id"`
	Title       string   `gorm:"size:191" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	AssignedTo  *int64   `gorm:"index" json:"assigned_to"`
	DueDate     Date     `gorm:"type:date" json:"due_date"`
	Status      string   `gorm:"size:32" json:"status"`
	Project     *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Task) TableName() string { return "tasks" }

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	List(ctx context.Context) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id int64) error
}
