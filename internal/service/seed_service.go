package service

import (
	"context"
	"fmt"

	"teslo-shop/internal/auth"
	"teslo-shop/internal/domain"
	"teslo-shop/internal/repository"

	"go.uber.org/zap"
)

// SeedService replaces all data with the demo catalog
type SeedService interface {
	Run(ctx context.Context) error
}

type seedService struct {
	products ProductService
	users    repository.UserRepository
	hasher   auth.Hasher
	logger   *zap.Logger
}

// NewSeedService creates a new instance of SeedService
func NewSeedService(products ProductService, users repository.UserRepository, hasher auth.Hasher, logger *zap.Logger) SeedService {
	return &seedService{
		products: products,
		users:    users,
		hasher:   hasher,
		logger:   logger,
	}
}

// Run deletes every product and user, then inserts the demo users and a product
// catalog owned by the first of them.
func (s *seedService) Run(ctx context.Context) error {
	deletedProducts, err := s.products.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	deletedUsers, err := s.users.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}

	admin, err := s.insertUsers(ctx)
	if err != nil {
		return err
	}

	for _, input := range seedProducts {
		if _, err := s.products.Create(ctx, input, admin); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", input.Title, err)
		}
	}

	s.logger.Info("Seed executed",
		zap.Int64("deleted_products", deletedProducts),
		zap.Int64("deleted_users", deletedUsers),
		zap.Int("users", len(seedUsers)),
		zap.Int("products", len(seedProducts)),
	)
	return nil
}

func (s *seedService) insertUsers(ctx context.Context) (*domain.User, error) {
	hashed, err := s.hasher.Hash(seedUsers[0].Password)
	if err != nil {
		return nil, err
	}

	var first *domain.User
	for _, su := range seedUsers {
		user := &domain.User{
			FullName:     su.FullName,
			Email:        su.Email,
			PasswordHash: hashed,
			IsActive:     true,
			Role:         su.Role,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", su.Email, err)
		}
		if first == nil {
			first = user
		}
	}
	return first, nil
}
