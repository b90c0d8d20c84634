package reservation

import (
	"context"

	"bookfinder/internal/library"
)

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=reservation

type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, userID string, id int64) (Reservation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Reservation, int, error)
}

// LibraryResolver confirms a library name exists in the catalog.
type LibraryResolver interface {
	FindByName(name string) (library.Library, error)
}
