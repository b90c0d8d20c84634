package auth

import (
	"context"
	"errors"
	"time"

	"bookfinder/internal/session"
	"bookfinder/internal/user"
)

var ErrUnauthorized = errors.New("unauthorized")

type Service struct {
	userService    *user.Service
	sessionService *session.Service
}

func NewService(userService *user.Service, sessionService *session.Service) *Service {
	return &Service{
		userService:    userService,
		sessionService: sessionService,
	}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      user.User `json:"user"`
}

// Login verifies the credentials and opens a new session.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.userService.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return LoginResult{}, ErrUnauthorized
		}
		return LoginResult{}, err
	}
	if !user.VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, ErrUnauthorized
	}

	token, sess, err := s.sessionService.Issue(ctx, u.ID)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: sess.ExpiresAt, User: u}, nil
}

// Logout ends the session behind token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessionService.Revoke(ctx, token); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	return nil
}
