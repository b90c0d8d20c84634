package holder

import (
	"context"

	"bookfinder/internal/library"
	"bookfinder/internal/platform/calil"
	"bookfinder/internal/platform/cinii"
)

// Provider answers the availability of isbn at each named library, in order.
type Provider interface {
	Query(ctx context.Context, isbn string, names []string) (Chunk, error)
}

// LibraryResolver finds the catalog entries behind a batch of library names,
// all from the same snapshot. Unknown names resolve to nil.
type LibraryResolver interface {
	ResolveNames(names []string) ([]*library.Library, error)
}

// Checker runs one availability job across a set of library systems.
type Checker interface {
	Check(ctx context.Context, isbn string, systemIDs []string) (*calil.Job, error)
}

// AcademicSource lists the academic libraries holding isbn.
type AcademicSource interface {
	Holders(ctx context.Context, isbn string) (*cinii.Holdings, error)
}
