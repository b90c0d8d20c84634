package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_provider_test.go -package=book

// Provider is one external bibliographic catalog.
type Provider interface {
	// Search returns page (0-based) of pageSize records matching query.
	Search(ctx context.Context, query string, pageSize, page int) (Chunk, error)
	// Get returns the first record for isbn or ErrNotFound.
	Get(ctx context.Context, isbn string) (Book, error)
}
