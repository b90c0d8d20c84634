package session

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewService(repo Repository, ttl time.Duration) *Service {
	return &Service{repo: repo, ttl: ttl, now: time.Now}
}

// Issue creates a session for userID and returns the raw token. The token is
// never stored; callers must hand it to the client.
func (s *Service) Issue(ctx context.Context, userID string) (string, Session, error) {
	token, err := newToken()
	if err != nil {
		return "", Session{}, err
	}
	sess := Session{
		UserID:    userID,
		TokenHash: HashToken(token),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, &sess); err != nil {
		return "", Session{}, err
	}
	return token, sess, nil
}

// ResolveToken returns the user behind a live token.
func (s *Service) ResolveToken(ctx context.Context, token string) (string, error) {
	sess, err := s.repo.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		return "", err
	}
	if !sess.ExpiresAt.After(s.now()) {
		return "", ErrNotFound
	}
	return sess.UserID, nil
}

// Revoke deletes the session behind token.
func (s *Service) Revoke(ctx context.Context, token string) error {
	return s.repo.DeleteByTokenHash(ctx, HashToken(token))
}

func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	return s.repo.CleanupExpired(ctx)
}
