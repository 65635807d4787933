package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nightfly_backend/internal/models"
	"nightfly_backend/internal/repositories"
	"nightfly_backend/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrManagerNotFound    = errors.New("manager not found")
	ErrManagerPhoneExists = errors.New("a manager with this phone already exists")
	ErrManagerExists      = errors.New("a manager with this id already exists")
)

// CreateManagerRequest DTO
type CreateManagerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,mobile"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateManagerRequest DTO. Nil fields are left as stored.
type UpdateManagerRequest struct {
	ID             string  `json:"id" binding:"required"`
	Name           *string `json:"name"`
	Phone          *string `json:"phone" binding:"omitempty,mobile"`
	Email          *string `json:"email" binding:"omitempty,email|eq="`
	AssignedOrders *int    `json:"assignedOrders" binding:"omitempty,min=0"`
}

// --- ManagerService Interface ---
type ManagerService interface {
	CreateManager(ctx context.Context, req CreateManagerRequest) (*models.Manager, error)
	GetManagers(ctx context.Context) ([]models.Manager, error)
	UpdateManager(ctx context.Context, req UpdateManagerRequest) (*models.Manager, error)
	DeleteManager(ctx context.Context, managerID string) error
}

type managerService struct {
	managerRepo repositories.ManagerRepository
}

// NewManagerService creates a new instance of ManagerService.
func NewManagerService(managerRepo repositories.ManagerRepository) ManagerService {
	return &managerService{managerRepo: managerRepo}
}

// ensurePhoneFree fails when another manager already uses phone.
func (s *managerService) ensurePhoneFree(ctx context.Context, phone, selfID string) error {
	existing, err := s.managerRepo.GetManagerByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return storageError(err, "check manager phone")
	}
	if existing.ID != selfID {
		return fmt.Errorf("%w: %s", ErrManagerPhoneExists, phone)
	}
	return nil
}

func (s *managerService) CreateManager(ctx context.Context, req CreateManagerRequest) (*models.Manager, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || !utils.IsValidMobile(phone) {
		return nil, fmt.Errorf("%w: name and a valid phone are required", ErrValidation)
	}
	if err := s.ensurePhoneFree(ctx, phone, ""); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = "mgr-" + uuid.NewString()
	}
	manager := &models.Manager{
		ID:    id,
		Name:  name,
		Phone: phone,
		Email: strings.TrimSpace(req.Email),
	}
	if err := s.managerRepo.CreateManager(ctx, manager); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrManagerExists, id)
		}
		return nil, storageError(err, "create manager")
	}
	return manager, nil
}

func (s *managerService) GetManagers(ctx context.Context) ([]models.Manager, error) {
	managers, err := s.managerRepo.GetManagers(ctx)
	if err != nil {
		return nil, storageError(err, "get managers")
	}
	return managers, nil
}

func (s *managerService) UpdateManager(ctx context.Context, req UpdateManagerRequest) (*models.Manager, error) {
	manager, err := s.managerRepo.GetManagerByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, storageError(err, "get manager")
	}

	if req.Name != nil {
		if utils.IsEmpty(*req.Name) {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		manager.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if !utils.IsValidMobile(phone) {
			return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
		}
		if phone != manager.Phone {
			if err := s.ensurePhoneFree(ctx, phone, manager.ID); err != nil {
				return nil, err
			}
		}
		manager.Phone = phone
	}
	if req.Email != nil {
		manager.Email = strings.TrimSpace(*req.Email)
	}
	if req.AssignedOrders != nil {
		if *req.AssignedOrders < 0 {
			return nil, fmt.Errorf("%w: assignedOrders cannot be negative", ErrValidation)
		}
		manager.AssignedOrders = *req.AssignedOrders
	}

	if err := s.managerRepo.UpdateManager(ctx, manager); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, storageError(err, "update manager")
	}
	return manager, nil
}

func (s *managerService) DeleteManager(ctx context.Context, managerID string) error {
	if err := s.managerRepo.DeleteManager(ctx, managerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrManagerNotFound
		}
		return storageError(err, "delete manager")
	}
	return nil
}
