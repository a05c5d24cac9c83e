package service

import (
	"context"

	"construction-pm/internal/domain"
)

type stubUserRepo struct {
	byEmail   map[string]*domain.User
	nextID    int64
	findErr   error
	createErr error
	created   []*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*domain.User{}, nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	u.ID = r.nextID
	r.nextID++
	r.byEmail[u.Email] = u
	r.created = append(r.created, u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.byEmail[email], nil
}

func (r *stubUserRepo) List(context.Context) ([]domain.User, error) { return nil, nil }

func (r *stubUserRepo) Update(context.Context, int64, string, string, string) error { return nil }

func (r *stubUserRepo) Delete(context.Context, int64) error { return nil }

type stubIssuer struct {
	gotID   int64
	gotRole string
	err     error
}

func (s *stubIssuer) Issue(userID int64, role string) (string, error) {
	s.gotID, s.gotRole = userID, role
	if s.err != nil {
		return "", s.err
	}
	return "signed-token", nil
}

type stubProjectRepo struct {
	rows      map[int64]domain.Project
	nextID    int64
	updateErr error
	// vanish drops the row right after Update, as a concurrent delete would.
	vanish bool
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{rows: map[int64]domain.Project{}, nextID: 1}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	p.ID = r.nextID
	r.nextID++
	r.rows[p.ID] = *p
	return nil
}

func (r *stubProjectRepo) List(context.Context) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProjectRepo) Get(_ context.Context, id int64) (*domain.Project, error) {
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *stubProjectRepo) ListByOwner(_ context.Context, owner int64) ([]domain.ProjectRef, error) {
	var out []domain.ProjectRef
	for _, p := range r.rows {
		if p.OwnerID == owner {
			out = append(out, domain.ProjectRef{ID: p.ID, Name: p.Name})
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.rows[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[p.ID] = *p
	if r.vanish {
		delete(r.rows, p.ID)
	}
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type stubTaskRepo struct {
	created []domain.Task
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	if t.ID != 0 {
		panic("task id must be assigned by the store")
	}
	t.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *t)
	return nil
}

func (r *stubTaskRepo) List(context.Context) ([]domain.Task, error) { return r.created, nil }

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if t.ID < 1 || int(t.ID) > len(r.created) {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id int64) error {
	if id < 1 || int(id) > len(r.created) {
		return domain.ErrNotFound
	}
	return nil
}
