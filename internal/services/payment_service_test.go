package services

import (
	"context"
	"encoding/json"
	"testing"

	"nightfly_backend/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_CreatePayment(t *testing.T) {
	gw := new(MockPaymentGateway)
	svc := NewPaymentService(gw)
	reply := &gateway.ProviderResponse{StatusCode: 200, Body: json.RawMessage(`{"payment_link":"https://pay.example/abc"}`)}
	gw.On("CreatePayment", mock.Anything, map[string]any{
		"unique_id": "order-1",
		"amount":    "1000",
		"mobile":    "9876543210",
	}).Return(reply, nil).Once()

	resp, err := svc.CreatePayment(context.Background(), CreatePaymentRequest{UniqueID: "order-1", Amount: json.Number("1000"), Mobile: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, reply, resp)
	gw.AssertExpectations(t)
}

func TestPaymentService_ErrorTranslation(t *testing.T) {
	gw := new(MockPaymentGateway)
	svc := NewPaymentService(gw)
	gw.On("CreatePayment", mock.Anything, mock.Anything).Return(nil, gateway.ErrPaymentNotConfigured).Once()
	gw.On("CheckPayment", mock.Anything, mock.Anything).Return(nil, gateway.ErrProviderUnavailable).Once()

	_, err := svc.CreatePayment(context.Background(), CreatePaymentRequest{UniqueID: "order-1", Amount: json.Number("1000"), Mobile: "9876543210"})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = svc.CheckPayment(context.Background(), CheckPaymentRequest{UniqueID: "order-1", UTR: "123456789012"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestPaymentService_CheckPaymentValidation(t *testing.T) {
	gw := new(MockPaymentGateway)
	svc := NewPaymentService(gw)
	ctx := context.Background()

	_, err := svc.CheckPayment(ctx, CheckPaymentRequest{UniqueID: "order-1", UTR: "12345"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CheckPayment(ctx, CheckPaymentRequest{UniqueID: "order-1"})
	assert.ErrorIs(t, err, ErrValidation)

	gw.On("CheckPayment", mock.Anything, map[string]any{"unique_id": "order-1", "verification": "paid via upi"}).
		Return(&gateway.ProviderResponse{StatusCode: 200, Body: json.RawMessage(`{}`)}, nil).Once()
	_, err = svc.CheckPayment(ctx, CheckPaymentRequest{UniqueID: "order-1", Verification: "paid via upi"})
	require.NoError(t, err)
	gw.AssertExpectations(t)
}
