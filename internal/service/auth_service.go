// Package service implements the operation contracts: input validation,
// authorization, and persistence orchestration.
package service

import (
	"context"

	"waypost/internal/auth"
	"waypost/internal/models"
	"waypost/internal/repository"
	"waypost/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginResult carries the issued token and the subject's identifier.
type LoginResult struct {
	Token  string
	UserID string
}

// AuthService implements registration and login.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService returns an AuthService over the given repository and token manager.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new user. Validation failures are aggregated into a
// single error carrying every field message; a duplicate email fails without
// creating a record.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if fields := validation.UserInput(in.Email, in.Password); len(fields) > 0 {
		return nil, models.NewInvalidInputError(fields)
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewUserExistsError()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Name:     in.Name,
		Password: string(hashed),
		Status:   models.DefaultStatus,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// Login verifies the credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &LoginResult{Token: token, UserID: user.ID.Hex()}, nil
}
