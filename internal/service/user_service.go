package service

import (
	"context"

	"waypost/internal/models"
	"waypost/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService implements the caller-profile operations.
type UserService struct {
	users repository.UserRepository
}

// NewUserService returns a UserService over the given repository.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Current returns the caller's own user record.
func (s *UserService) Current(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, models.NewNotFoundError("user")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("user")
	}
	return user, nil
}

// UpdateStatus sets and persists the caller's status, returning the updated record.
func (s *UserService) UpdateStatus(ctx context.Context, userID, status string) (*models.User, error) {
	user, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateStatus(ctx, user.ID, status); err != nil {
		return nil, models.NewInternalError(err)
	}
	user.Status = status
	return user, nil
}
