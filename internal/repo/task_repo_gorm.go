package repo

import (
	"context"

	"gorm.io/gorm"

	"construction-pm/internal/domain"
)

type TaskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	err := r.db.WithContext(ctx).Omit("Project").Create(t).Error
	if isFKViolation(err) {
		return domain.Invalid(domain.MsgUnknownProject)
	}
	return err
}

func (r *TaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	ts := []domain.Task{}
	err := r.db.WithContext(ctx).Order("task_id").Find(&ts).Error
	return ts, err
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	res := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("task_id = ?", t.ID).
		Updates(map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"assigned_to": t.AssignedTo,
			"due_date":    t.DueDate,
			"status":      t.Status,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("task_id = ?", id).Delete(&domain.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
