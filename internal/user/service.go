package user

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores a new user with a bcrypt hash of password.
func (s *Service) Register(ctx context.Context, email, password, fullname, address string) (User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	u := User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Fullname:     strings.TrimSpace(fullname),
		Address:      strings.TrimSpace(address),
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}
