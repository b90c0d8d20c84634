package session

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=session

// Repository stores sessions keyed by token hash. The raw token never reaches it.
type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	CleanupExpired(ctx context.Context) (int64, error)
}
