package service

import (
	"context"
	"errors"
	"fmt"

	"construction-pm/internal/domain"
	"construction-pm/pkg/utils"
)

type TokenIssuer interface {
	Issue(userID int64, role string) (string, error)
}

// AuthService registers users and authenticates logins.
type AuthService struct {
	users  domain.UserRepository
	tokens TokenIssuer

	hash  func(pw string) (string, error)
	check func(pw, hashed string) (bool, error)
}

func NewAuthService(users domain.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hash:   utils.HashPassword,
		check:  utils.CheckPassword,
	}
}

type LoginResult struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID int64  `json:"user_id"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hash(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, domain.Invalid(domain.MsgPasswordTooLong)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.check(password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, Role: u.Role, UserID: u.ID}, nil
}
