package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"nightfly_backend/internal/models"
	"nightfly_backend/internal/repositories"
	"nightfly_backend/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderExists         = errors.New("an order with this id already exists")
	ErrInvalidTransition   = errors.New("invalid order state transition")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrRequesterRequired   = errors.New("mobile is required unless all=true")
	ErrUnderageGuest       = errors.New("all guests must be 18 or above")
	ErrUnknownTicketType   = errors.New("unknown ticket type")
	ErrTicketPriceMismatch = errors.New("ticket price does not match catalog")
	ErrAmountMismatch      = errors.New("amount does not equal the sum of line items")
	ErrInvalidView         = errors.New("invalid order view")
)

// --- Data Transfer Objects (DTOs) ---

// CreateOrderItemRequest is one guest in a new order.
type CreateOrderItemRequest struct {
	Name  string      `json:"name" binding:"required"`
	Age   json.Number `json:"age" binding:"required,adult"`
	Type  string      `json:"type" binding:"required"`
	Price float64     `json:"price"`
}

// CreateOrderRequest is the checkout payload. Amount is optional; when present it
// must equal the sum of item prices.
type CreateOrderRequest struct {
	ID           string                   `json:"id"`
	ClubID       string                   `json:"clubId"`
	Club         models.ClubSnapshot      `json:"club"`
	Items        []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Amount       *float64                 `json:"amount"`
	Mobile       string                   `json:"mobile"`
	SelectedDate string                   `json:"selectedDate"`
	SelectedTime string                   `json:"selectedTime"`
}

// OptionalManager distinguishes an omitted manager from an explicit null.
type OptionalManager struct {
	Set   bool
	Value *models.ManagerRef
}

func (m *OptionalManager) UnmarshalJSON(data []byte) error {
	m.Set = true
	if string(data) == "null" {
		m.Value = nil
		return nil
	}
	var ref models.ManagerRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return err
	}
	m.Value = &ref
	return nil
}

// UpdateOrderRequest is a partial update; omitted fields are left untouched.
type UpdateOrderRequest struct {
	ID            string          `json:"id" binding:"required"`
	Status        *string         `json:"status"`
	PaymentStatus *string         `json:"paymentStatus"`
	Manager       OptionalManager `json:"manager"`
	ScheduledTime *string         `json:"scheduledTime"`
}

// OrderResponse adds derived fields to a stored order.
type OrderResponse struct {
	models.Order
	ManagerContactLink string `json:"managerContactLink,omitempty"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error)
	GetOrders(ctx context.Context, filters models.OrderFilters) ([]OrderResponse, error)
	GetOrderByID(ctx context.Context, orderID string) (*OrderResponse, error)
	UpdateOrder(ctx context.Context, req UpdateOrderRequest) (*OrderResponse, error)
	GetOrderSummary(ctx context.Context) (*models.OrderSummary, error)
}

type orderService struct {
	orderRepo repositories.OrderRepository
	clubRepo  repositories.ClubRepository
	now       func() time.Time
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(or repositories.OrderRepository, cr repositories.ClubRepository) OrderService {
	return &orderService{orderRepo: or, clubRepo: cr, now: time.Now}
}

func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if utils.IsEmpty(req.Mobile) {
		return nil, fmt.Errorf("%w: mobile is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one guest is required", ErrValidation)
	}

	items := make([]models.LineItem, 0, len(req.Items))
	for i, itemReq := range req.Items {
		if utils.IsEmpty(itemReq.Name) {
			return nil, fmt.Errorf("%w: guest %d name is required", ErrValidation, i+1)
		}
		age := strings.TrimSpace(itemReq.Age.String())
		if !utils.IsAdultAge(age) {
			return nil, fmt.Errorf("%w: guest %q", ErrUnderageGuest, itemReq.Name)
		}
		ticket, ok := models.LookupTicketType(itemReq.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTicketType, itemReq.Type)
		}
		if itemReq.Price != ticket.Price {
			return nil, fmt.Errorf("%w: %s costs %.0f, got %.0f", ErrTicketPriceMismatch, ticket.Type, ticket.Price, itemReq.Price)
		}
		items = append(items, models.LineItem{
			Name:  strings.TrimSpace(itemReq.Name),
			Age:   age,
			Type:  ticket.Type,
			Price: ticket.Price,
		})
	}

	amount := models.SumLineItems(items)
	if req.Amount != nil && *req.Amount != amount {
		return nil, fmt.Errorf("%w: expected %.0f, got %.0f", ErrAmountMismatch, amount, *req.Amount)
	}

	club := req.Club
	if req.ClubID != "" && club.Name == "" {
		stored, err := s.clubRepo.GetClubByID(ctx, req.ClubID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: club %s does not exist", ErrValidation, req.ClubID)
			}
			return nil, storageError(err, "load club for order")
		}
		club = stored.Snapshot()
	}

	orderID := strings.TrimSpace(req.ID)
	if orderID == "" {
		orderID = "order-" + uuid.NewString()
	}

	createdAt := s.now().UTC().Truncate(time.Millisecond)
	order := models.Order{
		ID:            orderID,
		Club:          club,
		Items:         items,
		Amount:        amount,
		Status:        models.OrderPending,
		PaymentStatus: models.InitialPaymentStatus(amount),
		Mobile:        strings.TrimSpace(req.Mobile),
		SelectedDate:  req.SelectedDate,
		SelectedTime:  req.SelectedTime,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if req.SelectedDate != "" && req.SelectedTime != "" {
		order.BookingDateTime = req.SelectedDate + " " + req.SelectedTime
	}

	if err := s.orderRepo.CreateOrder(ctx, &order); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrOrderExists, orderID)
		}
		return nil, storageError(err, "create order")
	}
	return toOrderResponse(&order), nil
}

func (s *orderService) GetOrders(ctx context.Context, filters models.OrderFilters) ([]OrderResponse, error) {
	if !filters.All && utils.IsEmpty(filters.Mobile) {
		return nil, ErrRequesterRequired
	}
	switch filters.View {
	case models.ViewAll, models.ViewInFlight, models.ViewFulfilled:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidView, filters.View)
	}

	orders, err := s.orderRepo.GetOrders(ctx, filters)
	if err != nil {
		return nil, storageError(err, "get orders")
	}

	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if !filters.All && o.Mobile != filters.Mobile {
			continue
		}
		if filters.View == models.ViewInFlight && !o.InFlight() {
			continue
		}
		if filters.View == models.ViewFulfilled && !o.Fulfilled() {
			continue
		}
		result = append(result, *toOrderResponse(o))
	}
	return result, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*OrderResponse, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, storageError(err, "get order")
	}
	return toOrderResponse(order), nil
}

// UpdateOrder merges req into the stored order after checking both transition tables.
// There is no concurrency control: the last write wins.
func (s *orderService) UpdateOrder(ctx context.Context, req UpdateOrderRequest) (*OrderResponse, error) {
	current, err := s.orderRepo.GetOrderByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, storageError(err, "fetch order for update")
	}

	update := repositories.OrderUpdate{}

	if req.Status != nil {
		next, ok := models.ParseOrderStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOrderStatus, *req.Status)
		}
		if !current.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: status %s -> %s", ErrInvalidTransition, current.Status, next)
		}
		update.Status = &next
	}

	if req.PaymentStatus != nil {
		next, ok := models.ParsePaymentStatus(*req.PaymentStatus)
		if !ok {
			return nil, fmt.Errorf("%w: payment status %q", ErrInvalidOrderStatus, *req.PaymentStatus)
		}
		if !current.PaymentStatus.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: payment status %s -> %s", ErrInvalidTransition, current.PaymentStatus, next)
		}
		update.PaymentStatus = &next
	}

	if req.Manager.Set {
		if ref := req.Manager.Value; ref != nil {
			ref.Name = strings.TrimSpace(ref.Name)
			ref.Phone = strings.TrimSpace(ref.Phone)
			if ref.Name == "" || ref.Phone == "" {
				return nil, fmt.Errorf("%w: manager needs both name and phone, or null to clear", ErrValidation)
			}
			if !utils.IsValidMobile(ref.Phone) {
				return nil, fmt.Errorf("%w: manager phone %q is not a valid number", ErrValidation, ref.Phone)
			}
		}
		update.SetManager = true
		update.Manager = req.Manager.Value
	}

	if req.ScheduledTime != nil {
		scheduled := strings.TrimSpace(*req.ScheduledTime)
		update.ScheduledTime = &scheduled
	}

	update.UpdatedAt = s.nextUpdateTime(current.UpdatedAt)

	if err := s.orderRepo.UpdateOrder(ctx, req.ID, update); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, storageError(err, "update order")
	}
	return s.GetOrderByID(ctx, req.ID)
}

func (s *orderService) GetOrderSummary(ctx context.Context) (*models.OrderSummary, error) {
	orders, err := s.orderRepo.GetOrders(ctx, models.OrderFilters{All: true})
	if err != nil {
		return nil, storageError(err, "summarize orders")
	}

	summary := &models.OrderSummary{
		Total:           len(orders),
		ByStatus:        make(map[models.OrderStatus]int),
		ByPaymentStatus: make(map[models.PaymentStatus]int),
	}
	for _, st := range models.OrderStatuses() {
		summary.ByStatus[st] = 0
	}
	for _, ps := range models.PaymentStatuses() {
		summary.ByPaymentStatus[ps] = 0
	}
	for i := range orders {
		o := &orders[i]
		summary.ByStatus[o.Status]++
		summary.ByPaymentStatus[o.PaymentStatus]++
		if o.InFlight() {
			summary.InFlight++
		}
		if o.Fulfilled() {
			summary.Fulfilled++
		}
	}
	return summary, nil
}

// nextUpdateTime is strictly after prev at millisecond precision, the coarsest
// precision any store keeps.
func (s *orderService) nextUpdateTime(prev time.Time) time.Time {
	now := s.now().UTC().Truncate(time.Millisecond)
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func toOrderResponse(order *models.Order) *OrderResponse {
	resp := &OrderResponse{Order: *order}
	if order.ManagerAttached() {
		resp.ManagerContactLink = WhatsAppLink(order.Manager.Phone)
	}
	return resp
}

// WhatsAppLink builds a messaging deep link from a phone number.
func WhatsAppLink(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + digits.String()
}
