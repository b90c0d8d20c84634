package book

import (
	"context"
	"fmt"
	"sort"

	"bookfinder/internal/httpx"
)

// DefaultProvider is used when a request names no provider.
const DefaultProvider = "ndl"

// Service dispatches metadata queries to a registered provider.
type Service struct {
	providers map[string]Provider
}

// NewService creates a new book service over the tagged providers.
func NewService(providers map[string]Provider) *Service {
	return &Service{providers: providers}
}

func (s *Service) provider(tag string) (Provider, error) {
	if tag == "" {
		tag = DefaultProvider
	}
	p, ok := s.providers[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, tag)
	}
	return p, nil
}

// Providers lists the registered tags.
func (s *Service) Providers() []string {
	tags := make([]string, 0, len(s.providers))
	for tag := range s.providers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Search runs a free text search against the tagged provider.
func (s *Service) Search(ctx context.Context, tag, query string, pageSize, page int) (Chunk, error) {
	p, err := s.provider(tag)
	if err != nil {
		return Chunk{}, err
	}
	if !httpx.OffsetFits(pageSize, page) {
		return Chunk{}, fmt.Errorf("%w: page %d of size %d", ErrPageOutOfRange, page, pageSize)
	}
	return p.Search(ctx, query, pageSize, page)
}

// GetByISBN returns one book from the tagged provider.
func (s *Service) GetByISBN(ctx context.Context, tag, isbn string) (Book, error) {
	p, err := s.provider(tag)
	if err != nil {
		return Book{}, err
	}
	return p.Get(ctx, isbn)
}
