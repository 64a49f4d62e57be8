package service

import (
	"context"
	"errors"
	"strings"

	"skillswapserver/internal/auth"
	"skillswapserver/internal/domain"
)

type UsersStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (domain.User, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.UserWithPassword, error)
}

type AuthService struct {
	Users  UsersStore
	Tokens auth.TokenCodec
}

// Signup creates the account and issues a bearer token in one step, so a
// fresh signup is immediately logged in.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	u, err := s.Users.CreateUser(ctx, name, email, passwordHash)
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return u, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	ok, err := auth.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		return domain.User{}, "", err
	}
	if !ok {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return u.User, token, nil
}

// GetUserForToken resolves a bearer token to a live user row.
func (s *AuthService) GetUserForToken(ctx context.Context, token string) (domain.User, error) {
	userID, ok := s.Tokens.Verify(token)
	if !ok {
		return domain.User{}, domain.ErrUnauthorized
	}

	u, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, err
	}
	return u, nil
}
