package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// CreateUserInput is the DTO for creating an app user.
type CreateUserInput struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Name     string          `json:"name"`
	Role     domain.UserRole `json:"role"`
}

// UpdateProfileInput is the DTO for the settings page. Empty strings clear
// the field.
type UpdateProfileInput struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// UserService defines the app user contract.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Current(ctx context.Context, id *Identity) (*domain.User, error)
	UpdateProfile(ctx context.Context, id *Identity, input UpdateProfileInput) (*domain.User, error)
}

type userService struct {
	repo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrPasswordTooShort
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Name:         cleanString(input.Name),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Current(ctx context.Context, id *Identity) (*domain.User, error) {
	if id == nil {
		return nil, domain.ErrUnauthorized
	}

	var (
		user *domain.User
		err  error
	)
	if id.UserID != uuid.Nil {
		user, err = s.repo.GetByID(ctx, id.UserID)
	} else {
		user, err = s.repo.GetByUsername(ctx, id.Username)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userService.Current: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id *Identity, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.Current(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = cleanString(*input.Name)
	}
	if input.Email != nil {
		user.Email = cleanString(*input.Email)
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = cleanString(*input.PhoneNumber)
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
