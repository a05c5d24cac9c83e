package service

import (
	"context"

	"construction-pm/internal/domain"
)

type ProjectService struct {
	projects domain.ProjectRepository
}

func NewProjectService(projects domain.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

func (s *ProjectService) Create(ctx context.Context, p *domain.Project) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	p.ID = 0
	if err := s.projects.Create(ctx, p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// Get returns nil, nil when the project does not exist.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.Get(ctx, id)
}

func (s *ProjectService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.ProjectRef, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

// Update overwrites the project and returns the row as stored.
func (s *ProjectService) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	stored, err := s.projects.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		// deleted between the write and the read
		return nil, domain.ErrNotFound
	}
	return stored, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.projects.Delete(ctx, id)
}
