package services

import (
	"context"
	"time"

	"nightfly_backend/internal/gateway"
	"nightfly_backend/internal/models"
	"nightfly_backend/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, orderID string, update repositories.OrderUpdate) error {
	args := m.Called(ctx, orderID, update)
	return args.Error(0)
}

// MockClubRepository is a mock implementation of repositories.ClubRepository.
type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) CreateClub(ctx context.Context, club *models.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *MockClubRepository) GetClubByID(ctx context.Context, clubID string) (*models.Club, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Club), args.Error(1)
}

func (m *MockClubRepository) GetClubs(ctx context.Context) ([]models.Club, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Club), args.Error(1)
}

func (m *MockClubRepository) UpdateClub(ctx context.Context, club *models.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *MockClubRepository) DeleteClub(ctx context.Context, clubID string) error {
	args := m.Called(ctx, clubID)
	return args.Error(0)
}

// MockSMSSender records delivered codes.
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) SendOTP(ctx context.Context, mobile, code string) (string, error) {
	args := m.Called(ctx, mobile, code)
	return args.String(0), args.Error(1)
}

// MockPaymentGateway is a mock implementation of gateway.PaymentGateway.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePayment(ctx context.Context, payload map[string]any) (*gateway.ProviderResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.ProviderResponse), args.Error(1)
}

func (m *MockPaymentGateway) CheckPayment(ctx context.Context, payload map[string]any) (*gateway.ProviderResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.ProviderResponse), args.Error(1)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
