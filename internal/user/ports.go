package user

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=user

// Repository persists accounts. Create fills in ID and CreatedAt and reports
// ErrAlreadyExists for a taken email; lookups report ErrNotFound.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
