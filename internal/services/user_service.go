package services

import (
	"context"
	"fmt"

	"github.com/nebulanet/topup-backend/internal/models"
	"github.com/nebulanet/topup-backend/internal/repositories"
)

// UserService resolves the acting user. Authentication is out of scope, so
// every request acts as the bootstrapped demo user.
type UserService interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Compile-time check to ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// UserServiceImpl backs UserService with the user repository
type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserServiceImpl
func NewUserService(userRepo repositories.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

// CurrentUser upserts and returns the demo user
func (s *UserServiceImpl) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.userRepo.EnsureDemoUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}
