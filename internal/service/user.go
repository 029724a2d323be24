package service

import (
	"context"
	"log/slog"

	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/domain/repositories"
)

// UserService reads profile data for display.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.userRepo.GetProfile(ctx, userID)
}
