package repositories

import (
	"context"
	"time"

	"nightfly_backend/internal/database"
	"nightfly_backend/internal/models"
)

// ManagerRepository defines the interface for manager persistence.
type ManagerRepository interface {
	CreateManager(ctx context.Context, manager *models.Manager) error
	GetManagerByID(ctx context.Context, managerID string) (*models.Manager, error)
	GetManagerByPhone(ctx context.Context, phone string) (*models.Manager, error)
	GetManagers(ctx context.Context) ([]models.Manager, error)
	UpdateManager(ctx context.Context, manager *models.Manager) error
	DeleteManager(ctx context.Context, managerID string) error
}

type managerRepository struct {
	store database.Store
}

// NewManagerRepository creates a new instance of ManagerRepository.
func NewManagerRepository(store database.Store) ManagerRepository {
	return &managerRepository{store: store}
}

func (r *managerRepository) CreateManager(ctx context.Context, manager *models.Manager) error {
	if manager.CreatedAt.IsZero() {
		manager.CreatedAt = time.Now().UTC()
	}
	if manager.UpdatedAt.IsZero() {
		manager.UpdatedAt = manager.CreatedAt
	}
	return translateStoreError(r.store.Insert(ctx, database.Managers, manager.ID, manager), "creating manager")
}

func (r *managerRepository) GetManagerByID(ctx context.Context, managerID string) (*models.Manager, error) {
	manager := &models.Manager{}
	if err := r.store.Get(ctx, database.Managers, managerID, manager); err != nil {
		return nil, translateStoreError(err, "getting manager "+managerID)
	}
	return manager, nil
}

// GetManagerByPhone uses the phone secondary key. The first match wins.
func (r *managerRepository) GetManagerByPhone(ctx context.Context, phone string) (*models.Manager, error) {
	managers := []models.Manager{}
	if err := r.store.Find(ctx, database.Managers, database.Filter{"phone": phone}, &managers); err != nil {
		return nil, translateStoreError(err, "querying manager by phone")
	}
	if len(managers) == 0 {
		return nil, ErrNotFound
	}
	return &managers[0], nil
}

func (r *managerRepository) GetManagers(ctx context.Context) ([]models.Manager, error) {
	managers := []models.Manager{}
	if err := r.store.Find(ctx, database.Managers, nil, &managers); err != nil {
		return nil, translateStoreError(err, "querying managers")
	}
	return managers, nil
}

// UpdateManager overwrites the editable fields; id and createdAt are kept.
func (r *managerRepository) UpdateManager(ctx context.Context, manager *models.Manager) error {
	manager.UpdatedAt = time.Now().UTC()
	fields := map[string]any{
		"name":           manager.Name,
		"phone":          manager.Phone,
		"email":          manager.Email,
		"assignedOrders": manager.AssignedOrders,
		"updatedAt":      manager.UpdatedAt,
	}
	return translateStoreError(r.store.Merge(ctx, database.Managers, manager.ID, fields), "updating manager "+manager.ID)
}

func (r *managerRepository) DeleteManager(ctx context.Context, managerID string) error {
	return translateStoreError(r.store.Delete(ctx, database.Managers, managerID), "deleting manager "+managerID)
}
