package library

import (
	"context"
)

// Source supplies the complete library list in one call.
type Source interface {
	FetchLibraries(ctx context.Context) ([]Library, error)
}
