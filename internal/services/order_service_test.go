package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"nightfly_backend/internal/models"
	"nightfly_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderServiceUnderTest(now time.Time) (*orderService, *MockOrderRepository, *MockClubRepository) {
	orderRepo := new(MockOrderRepository)
	clubRepo := new(MockClubRepository)
	svc := NewOrderService(orderRepo, clubRepo).(*orderService)
	svc.now = fixedClock(now)
	return svc, orderRepo, clubRepo
}

func float(v float64) *float64 { return &v }

func str(s string) *string { return &s }

func TestOrderService_CreateOrder_FreeEntry(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())
	orderRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Once()

	resp, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ID:     "order-1",
		Amount: float(0),
		Items:  []CreateOrderItemRequest{{Name: "A", Age: json.Number("20"), Type: "Single Girls", Price: 0}},
		Mobile: "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-1", resp.ID)
	assert.Equal(t, 0.0, resp.Amount)
	assert.Equal(t, models.OrderPending, resp.Status)
	assert.Equal(t, models.PaymentFreeEntry, resp.PaymentStatus)
	assert.Nil(t, resp.Manager)
	assert.Empty(t, resp.ManagerContactLink)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_PaidEntry(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())
	var stored *models.Order
	orderRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.Order) }).
		Return(nil).Once()

	resp, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Items:        []CreateOrderItemRequest{{Name: "B", Age: json.Number("25"), Type: "Boys", Price: 1000}},
		Mobile:       "9876543210",
		SelectedDate: "2025-01-31",
		SelectedTime: "22:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, resp.Amount)
	assert.Equal(t, models.PaymentInitiated, resp.PaymentStatus)
	assert.Regexp(t, `^order-`, resp.ID)
	assert.Equal(t, "2025-01-31 22:00", resp.BookingDateTime)
	require.NotNil(t, stored)
	assert.Equal(t, models.SumLineItems(stored.Items), stored.Amount)
}

func TestOrderService_CreateOrder_Rejections(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateOrderRequest
		wantErr error
	}{
		{
			name:    "underage guest",
			req:     CreateOrderRequest{Mobile: "9876543210", Items: []CreateOrderItemRequest{{Name: "K", Age: json.Number("17"), Type: "Boys", Price: 1000}}},
			wantErr: ErrUnderageGuest,
		},
		{
			name:    "unknown ticket",
			req:     CreateOrderRequest{Mobile: "9876543210", Items: []CreateOrderItemRequest{{Name: "K", Age: json.Number("30"), Type: "VIP", Price: 5000}}},
			wantErr: ErrUnknownTicketType,
		},
		{
			name:    "tampered price",
			req:     CreateOrderRequest{Mobile: "9876543210", Items: []CreateOrderItemRequest{{Name: "K", Age: json.Number("30"), Type: "Boys", Price: 1}}},
			wantErr: ErrTicketPriceMismatch,
		},
		{
			name:    "amount mismatch",
			req:     CreateOrderRequest{Mobile: "9876543210", Amount: float(500), Items: []CreateOrderItemRequest{{Name: "K", Age: json.Number("30"), Type: "Boys", Price: 1000}}},
			wantErr: ErrAmountMismatch,
		},
		{
			name:    "no requester",
			req:     CreateOrderRequest{Items: []CreateOrderItemRequest{{Name: "K", Age: json.Number("30"), Type: "Boys", Price: 1000}}},
			wantErr: ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_DuplicateID(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())
	orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateKey).Once()

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ID:     "order-1",
		Mobile: "9876543210",
		Items:  []CreateOrderItemRequest{{Name: "A", Age: json.Number("20"), Type: "Couples", Price: 0}},
	})
	assert.ErrorIs(t, err, ErrOrderExists)
}

func TestOrderService_CreateOrder_SnapshotsClubByID(t *testing.T) {
	svc, orderRepo, clubRepo := newOrderServiceUnderTest(time.Now())
	clubRepo.On("GetClubByID", mock.Anything, "club-nova").
		Return(&models.Club{ID: "club-nova", Name: "Nova Lounge", Location: "Bandra, Mumbai"}, nil).Once()
	orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		ClubID: "club-nova",
		Mobile: "9876543210",
		Items:  []CreateOrderItemRequest{{Name: "A", Age: json.Number("20"), Type: "Couples", Price: 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Nova Lounge", resp.Club.Name)
}

func TestOrderService_GetOrders_RequiresRequester(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())

	_, err := svc.GetOrders(context.Background(), models.OrderFilters{})
	assert.ErrorIs(t, err, ErrRequesterRequired)

	_, err = svc.GetOrders(context.Background(), models.OrderFilters{All: true, View: "archived"})
	assert.ErrorIs(t, err, ErrInvalidView)
	orderRepo.AssertNotCalled(t, "GetOrders", mock.Anything, mock.Anything)
}

func TestOrderService_GetOrders_FiltersAndViews(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())
	stored := []models.Order{
		{ID: "o3", Mobile: "9000000001", Status: models.OrderSuccess, PaymentStatus: models.PaymentFreeEntry},
		{ID: "o2", Mobile: "9000000002", Status: models.OrderPending, PaymentStatus: models.PaymentInitiated},
		{ID: "o1", Mobile: "9000000001", Status: models.OrderPending, PaymentStatus: models.PaymentFreeEntry},
	}
	orderRepo.On("GetOrders", mock.Anything, mock.Anything).Return(stored, nil)

	mine, err := svc.GetOrders(context.Background(), models.OrderFilters{Mobile: "9000000001"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, "9000000001", o.Mobile)
	}

	inFlight, err := svc.GetOrders(context.Background(), models.OrderFilters{All: true, View: models.ViewInFlight})
	require.NoError(t, err)
	assert.Len(t, inFlight, 2)

	fulfilled, err := svc.GetOrders(context.Background(), models.OrderFilters{All: true, View: models.ViewFulfilled})
	require.NoError(t, err)
	require.Len(t, fulfilled, 1)
	assert.Equal(t, "o3", fulfilled[0].ID)
}

func TestOrderService_UpdateOrder_StatusAndManager(t *testing.T) {
	created := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	svc, orderRepo, _ := newOrderServiceUnderTest(created.Add(time.Hour))
	current := &models.Order{ID: "order-1", Status: models.OrderPending, PaymentStatus: models.PaymentFreeEntry, UpdatedAt: created}
	updated := &models.Order{
		ID:            "order-1",
		Status:        models.OrderSuccess,
		PaymentStatus: models.PaymentFreeEntry,
		Manager:       &models.ManagerRef{Name: "M", Phone: "+911234567890"},
		UpdatedAt:     created.Add(time.Hour),
	}

	orderRepo.On("GetOrderByID", mock.Anything, "order-1").Return(current, nil).Once()
	orderRepo.On("UpdateOrder", mock.Anything, "order-1", mock.MatchedBy(func(u repositories.OrderUpdate) bool {
		return u.Status != nil && *u.Status == models.OrderSuccess &&
			u.SetManager && u.Manager != nil && u.Manager.Name == "M" &&
			u.PaymentStatus == nil &&
			u.UpdatedAt.After(created)
	})).Return(nil).Once()
	orderRepo.On("GetOrderByID", mock.Anything, "order-1").Return(updated, nil).Once()

	resp, err := svc.UpdateOrder(context.Background(), UpdateOrderRequest{
		ID:      "order-1",
		Status:  str("success"),
		Manager: OptionalManager{Set: true, Value: &models.ManagerRef{Name: "M", Phone: "+911234567890"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderSuccess, resp.Status)
	assert.Equal(t, "https://wa.me/911234567890", resp.ManagerContactLink)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrder_StatusOnlyKeepsManager(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())
	current := &models.Order{ID: "order-1", Status: models.OrderAssigned, PaymentStatus: models.PaymentInitiated,
		Manager: &models.ManagerRef{Name: "M", Phone: "+911234567890"}}

	orderRepo.On("GetOrderByID", mock.Anything, "order-1").Return(current, nil)
	orderRepo.On("UpdateOrder", mock.Anything, "order-1", mock.MatchedBy(func(u repositories.OrderUpdate) bool {
		return !u.SetManager && u.Status != nil && *u.Status == models.OrderConfirmed
	})).Return(nil).Once()

	_, err := svc.UpdateOrder(context.Background(), UpdateOrderRequest{ID: "order-1", Status: str("confirmed")})
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrder_CompletedAlias(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())
	orderRepo.On("GetOrderByID", mock.Anything, "order-1").
		Return(&models.Order{ID: "order-1", Status: models.OrderConfirmed, PaymentStatus: models.PaymentFreeEntry}, nil)
	orderRepo.On("UpdateOrder", mock.Anything, "order-1", mock.MatchedBy(func(u repositories.OrderUpdate) bool {
		return u.Status != nil && *u.Status == models.OrderSuccess
	})).Return(nil).Once()

	_, err := svc.UpdateOrder(context.Background(), UpdateOrderRequest{ID: "order-1", Status: str("completed")})
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrder_Rejections(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())
	orderRepo.On("GetOrderByID", mock.Anything, "done").
		Return(&models.Order{ID: "done", Status: models.OrderSuccess, PaymentStatus: models.PaymentVerified}, nil)
	orderRepo.On("GetOrderByID", mock.Anything, "missing").Return(nil, repositories.ErrNotFound)
	ctx := context.Background()

	_, err := svc.UpdateOrder(ctx, UpdateOrderRequest{ID: "done", Status: str("pending")})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateOrder(ctx, UpdateOrderRequest{ID: "done", PaymentStatus: str("cancelled")})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateOrder(ctx, UpdateOrderRequest{ID: "done", Status: str("shipped")})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = svc.UpdateOrder(ctx, UpdateOrderRequest{ID: "done", Manager: OptionalManager{Set: true, Value: &models.ManagerRef{Name: "M"}}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateOrder(ctx, UpdateOrderRequest{ID: "missing", Status: str("success")})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	orderRepo.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrder_AdvancesUpdatedAtOnSameMillisecond(t *testing.T) {
	stamp := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	svc, orderRepo, _ := newOrderServiceUnderTest(stamp)
	orderRepo.On("GetOrderByID", mock.Anything, "order-1").
		Return(&models.Order{ID: "order-1", Status: models.OrderPending, PaymentStatus: models.PaymentFreeEntry, UpdatedAt: stamp}, nil)
	orderRepo.On("UpdateOrder", mock.Anything, "order-1", mock.MatchedBy(func(u repositories.OrderUpdate) bool {
		return u.UpdatedAt.Equal(stamp.Add(time.Millisecond))
	})).Return(nil).Once()

	_, err := svc.UpdateOrder(context.Background(), UpdateOrderRequest{ID: "order-1", ScheduledTime: str("23:30")})
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_Summary(t *testing.T) {
	svc, orderRepo, _ := newOrderServiceUnderTest(time.Now())
	orderRepo.On("GetOrders", mock.Anything, models.OrderFilters{All: true}).Return([]models.Order{
		{Status: models.OrderPending, PaymentStatus: models.PaymentInitiated},
		{Status: models.OrderSuccess, PaymentStatus: models.PaymentFreeEntry},
		{Status: models.OrderCancelled, PaymentStatus: models.PaymentCancelled},
	}, nil)

	summary, err := svc.GetOrderSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.InFlight)
	assert.Equal(t, 1, summary.Fulfilled)
	assert.Equal(t, 1, summary.ByStatus[models.OrderCancelled])
	assert.Equal(t, 0, summary.ByStatus[models.OrderAssigned])
	assert.Equal(t, 1, summary.ByPaymentStatus[models.PaymentInitiated])
}

func TestOptionalManager_UnmarshalJSON(t *testing.T) {
	var req UpdateOrderRequest

	require.NoError(t, json.Unmarshal([]byte(`{"id":"o"}`), &req))
	assert.False(t, req.Manager.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"o","manager":null}`), &req))
	assert.True(t, req.Manager.Set)
	assert.Nil(t, req.Manager.Value)

	req = UpdateOrderRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"o","manager":{"name":"M","phone":"+911234567890"}}`), &req))
	assert.True(t, req.Manager.Set)
	require.NotNil(t, req.Manager.Value)
	assert.Equal(t, "M", req.Manager.Value.Name)
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/911234567890", WhatsAppLink("+91 12345-67890"))
	assert.Empty(t, WhatsAppLink("n/a"))
}
