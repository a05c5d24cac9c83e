package repo

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"construction-pm/internal/core/cache"
	"construction-pm/internal/domain"
)

type ProjectCache interface {
	cache.Loader
	Delete(ctx context.Context, keys ...string) error
}

// CachedProjectRepo serves Get through a read-through cache and drops the
// entry on every write so a read after a write sees the store.
type CachedProjectRepo struct {
	domain.ProjectRepository
	c   ProjectCache
	ttl time.Duration
	log *zap.Logger
}

func NewCachedProjectRepo(next domain.ProjectRepository, c ProjectCache, ttl time.Duration, l *zap.Logger) *CachedProjectRepo {
	return &CachedProjectRepo{ProjectRepository: next, c: c, ttl: ttl, log: l}
}

func projectKey(id int64) string { return "project:" + strconv.FormatInt(id, 10) }

func (r *CachedProjectRepo) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return cache.GetOrLoadJSON(r.c, ctx, projectKey(id), r.ttl, func(ctx context.Context) (*domain.Project, error) {
		return r.ProjectRepository.Get(ctx, id)
	})
}

func (r *CachedProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if err := r.ProjectRepository.Create(ctx, p); err != nil {
		return err
	}
	// a miss for this id may have been cached as absent
	r.invalidate(ctx, p.ID)
	return nil
}

func (r *CachedProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	err := r.ProjectRepository.Update(ctx, p)
	r.invalidate(ctx, p.ID)
	return err
}

func (r *CachedProjectRepo) Delete(ctx context.Context, id int64) error {
	err := r.ProjectRepository.Delete(ctx, id)
	r.invalidate(ctx, id)
	return err
}

func (r *CachedProjectRepo) invalidate(ctx context.Context, id int64) {
	if err := r.c.Delete(ctx, projectKey(id)); err != nil {
		r.log.Warn("project cache invalidate failed", zap.Int64("project_id", id), zap.Error(err))
	}
}
