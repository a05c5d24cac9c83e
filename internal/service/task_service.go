package service

import (
	"context"

	"construction-pm/internal/domain"
)

// TaskService passes tasks through unvalidated; the store rejects what it
// cannot hold.
type TaskService struct {
	tasks domain.TaskRepository
}

func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *TaskService) Create(ctx context.Context, t *domain.Task) error {
	t.ID = 0
	return s.tasks.Create(ctx, t)
}

func (s *TaskService) Update(ctx context.Context, t *domain.Task) error {
	return s.tasks.Update(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}
