package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nightfly_backend/internal/models"
	"nightfly_backend/internal/repositories"
	"nightfly_backend/pkg/utils"
)

var ErrUserNotFound = errors.New("user not found")

// UpsertUserRequest DTO
type UpsertUserRequest struct {
	Mobile   string `json:"mobile" binding:"required,mobile"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Location string `json:"location"`
}

// --- UserService Interface ---
type UserService interface {
	UserExists(ctx context.Context, mobile string) (bool, error)
	GetUserByMobile(ctx context.Context, mobile string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpsertUser(ctx context.Context, req UpsertUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) UserExists(ctx context.Context, mobile string) (bool, error) {
	_, err := s.GetUserByMobile(ctx, mobile)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *userService) GetUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	user, err := s.userRepo.GetUserByMobile(ctx, strings.TrimSpace(mobile))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageError(err, "get user")
	}
	return user, nil
}

func (s *userService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, storageError(err, "get users")
	}
	return users, nil
}

// UpsertUser replaces the profile for req.Mobile, keeping the original createdAt.
func (s *userService) UpsertUser(ctx context.Context, req UpsertUserRequest) (*models.User, error) {
	mobile := strings.TrimSpace(req.Mobile)
	if !utils.IsValidMobile(mobile) {
		return nil, fmt.Errorf("%w: invalid mobile number", ErrValidation)
	}

	now := time.Now().UTC()
	user := &models.User{
		Mobile:    mobile,
		Name:      strings.TrimSpace(req.Name),
		Gender:    strings.TrimSpace(req.Gender),
		Location:  strings.TrimSpace(req.Location),
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := s.userRepo.GetUserByMobile(ctx, mobile)
	switch {
	case err == nil:
		user.CreatedAt = existing.CreatedAt
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, storageError(err, "get user before upsert")
	}

	if err := s.userRepo.UpsertUser(ctx, user); err != nil {
		return nil, storageError(err, "upsert user")
	}
	return user, nil
}
