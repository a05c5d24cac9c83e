package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"construction-pm/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isDupKey(err) {
		return domain.ErrUserExists
	}
	return err
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.WithContext(ctx).
		Select("user_id", "name", "email", "role", "created_at").
		Order("user_id").
		Find(&users).Error
	return users, err
}

func (r *UserRepo) Update(ctx context.Context, id int64, name, email, role string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("user_id = ?", id).
		Updates(map[string]any{"name": name, "email": email, "role": role})
	if isDupKey(res.Error) {
		return domain.ErrUserExists
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a user that owns no projects and unassigns its tasks.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.User{}).Where("user_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Model(&domain.Project{}).Where("owner_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.Conflict(domain.MsgUserOwnsProject)
		}
		if err := tx.Model(&domain.Task{}).Where("assigned_to = ?", id).Update("assigned_to", nil).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", id).Delete(&domain.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
