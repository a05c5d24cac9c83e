package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"construction-pm/internal/domain"
)

type ProjectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) *ProjectRepo { return &ProjectRepo{db: db} }

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	ps := []domain.Project{}
	err := r.db.WithContext(ctx).Order("project_id").Find(&ps).Error
	return ps, err
}

func (r *ProjectRepo) Get(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).First(&p, "project_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.ProjectRef, error) {
	refs := []domain.ProjectRef{}
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Select("project_id", "name").
		Where("owner_id = ?", ownerID).
		Order("project_id").
		Find(&refs).Error
	return refs, err
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	res := r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("project_id = ?", p.ID).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"owner_id":    p.OwnerID,
			"start_date":  p.StartDate,
			"end_date":    p.EndDate,
			"status":      p.Status,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the project; its tasks go with it through the
// ON DELETE CASCADE constraint on tasks.project_id.
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("project_id = ?", id).Delete(&domain.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
