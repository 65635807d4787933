package repositories

import (
	"context"
	"time"

	"nightfly_backend/internal/database"
	"nightfly_backend/internal/models"
)

// OrderUpdate carries the mutable order fields. Nil pointers are left untouched.
// Manager is applied only when SetManager is true, so a nil Manager with
// SetManager clears the stored contact.
type OrderUpdate struct {
	Status        *models.OrderStatus
	PaymentStatus *models.PaymentStatus
	SetManager    bool
	Manager       *models.ManagerRef
	ScheduledTime *string
	UpdatedAt     time.Time
}

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error)
	UpdateOrder(ctx context.Context, orderID string, update OrderUpdate) error
}

type orderRepository struct {
	store database.Store
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(store database.Store) OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}
	err := r.store.Insert(ctx, database.Orders, order.ID, order)
	return translateStoreError(err, "creating order")
}

func (r *orderRepository) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	order := &models.Order{}
	if err := r.store.Get(ctx, database.Orders, orderID, order); err != nil {
		return nil, translateStoreError(err, "getting order "+orderID)
	}
	return order, nil
}

// GetOrders applies only the requester filter at the store; views are applied by the service.
func (r *orderRepository) GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error) {
	filter := database.Filter{}
	if !filters.All && filters.Mobile != "" {
		filter["mobile"] = filters.Mobile
	}

	orders := []models.Order{}
	if err := r.store.Find(ctx, database.Orders, filter, &orders); err != nil {
		return nil, translateStoreError(err, "querying orders")
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, orderID string, update OrderUpdate) error {
	fields := map[string]any{}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.PaymentStatus != nil {
		fields["paymentStatus"] = *update.PaymentStatus
	}
	if update.SetManager {
		fields["manager"] = update.Manager
	}
	if update.ScheduledTime != nil {
		fields["scheduledTime"] = *update.ScheduledTime
	}
	if update.UpdatedAt.IsZero() {
		update.UpdatedAt = time.Now().UTC()
	}
	fields["updatedAt"] = update.UpdatedAt

	err := r.store.Merge(ctx, database.Orders, orderID, fields)
	return translateStoreError(err, "updating order "+orderID)
}
