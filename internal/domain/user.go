package domain

import (
	"context"
	"time"
)

type User struct {
	ID           int64     `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;size:191;not null" json:"-"`
	Role         string    `gorm:"size:32;not null" json:"role"` // "admin"/"manager"/"worker"
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

// UserRepository is the credential store. Mutating methods return
// ErrNotFound when no row matched.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, name, email, role string) error
	Delete(ctx context.Context, id int64) error
}
