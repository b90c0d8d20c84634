package reservation

import (
	"context"
	"errors"
	"fmt"

	"bookfinder/internal/library"
)

type Service struct {
	repo      Repository
	libraries LibraryResolver
}

func NewService(repo Repository, libraries LibraryResolver) *Service {
	return &Service{repo: repo, libraries: libraries}
}

// Create stages a reservation of isbn at libraryName for userID.
func (s *Service) Create(ctx context.Context, userID, libraryName, isbn string) (Reservation, error) {
	if s.libraries != nil {
		if _, err := s.libraries.FindByName(libraryName); err != nil {
			if errors.Is(err, library.ErrNotFound) {
				return Reservation{}, fmt.Errorf("%w: %q", ErrUnknownLibrary, libraryName)
			}
			return Reservation{}, err
		}
	}

	res := Reservation{
		UserID:      userID,
		LibraryName: libraryName,
		ISBN:        isbn,
		State:       StateStaging,
	}
	if err := s.repo.Create(ctx, &res); err != nil {
		return Reservation{}, err
	}
	return res, nil
}

func (s *Service) Get(ctx context.Context, userID string, id int64) (Reservation, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List returns page (0-based) of the user's reservations, newest first.
func (s *Service) List(ctx context.Context, userID string, pageSize, page int) (Chunk, error) {
	items, total, err := s.repo.ListByUser(ctx, userID, pageSize, page*pageSize)
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{Reservations: items, TotalCount: total}, nil
}
