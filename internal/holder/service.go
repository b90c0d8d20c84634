package holder

import (
	"context"
	"fmt"
	"sort"

	"bookfinder/internal/httpx"
)

// DefaultProvider is used when a request names no provider.
const DefaultProvider = "calil"

type Service struct {
	providers map[string]Provider
	academic  AcademicSource
}

func NewService(providers map[string]Provider, academic AcademicSource) *Service {
	return &Service{providers: providers, academic: academic}
}

func (s *Service) Providers() []string {
	tags := make([]string, 0, len(s.providers))
	for tag := range s.providers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Query asks the tagged provider about isbn at each named library.
func (s *Service) Query(ctx context.Context, tag, isbn string, names []string) (Chunk, error) {
	if tag == "" {
		tag = DefaultProvider
	}
	p, ok := s.providers[tag]
	if !ok {
		return Chunk{}, fmt.Errorf("%w: %q", ErrUnknownProvider, tag)
	}
	return p.Query(ctx, isbn, names)
}

// ListAcademic pages through every academic library holding isbn. The
// listing is fetched whole and paged locally; TotalCount is the feed's total.
func (s *Service) ListAcademic(ctx context.Context, isbn string, pageSize, page int) (Chunk, error) {
	holdings, err := s.academic.Holders(ctx, isbn)
	if err != nil {
		return Chunk{}, err
	}

	chunk := Chunk{Holders: []Holder{}, TotalCount: holdings.Total}
	start, end := httpx.PageWindow(len(holdings.Libraries), pageSize, page)
	for _, name := range holdings.Libraries[start:end] {
		chunk.Holders = append(chunk.Holders, Holder{ISBN: isbn, LibraryName: name, State: Exists})
	}
	return chunk, nil
}
