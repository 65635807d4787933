package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nightfly_backend/internal/gateway"
	"nightfly_backend/pkg/utils"
)

// CreatePaymentRequest DTO. Amount accepts a JSON number or numeric string.
type CreatePaymentRequest struct {
	UniqueID string      `json:"unique_id" binding:"required"`
	Amount   json.Number `json:"amount" binding:"required"`
	Mobile   string      `json:"mobile" binding:"required,mobile"`
}

// CheckPaymentRequest DTO. Exactly one of UTR or Verification is expected.
type CheckPaymentRequest struct {
	UniqueID     string `json:"unique_id" binding:"required"`
	UTR          string `json:"utr" binding:"omitempty,utr"`
	Verification string `json:"verification"`
}

// --- PaymentService Interface ---
type PaymentService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*gateway.ProviderResponse, error)
	CheckPayment(ctx context.Context, req CheckPaymentRequest) (*gateway.ProviderResponse, error)
}

type paymentService struct {
	gateway gateway.PaymentGateway
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(gw gateway.PaymentGateway) PaymentService {
	return &paymentService{gateway: gw}
}

func (s *paymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*gateway.ProviderResponse, error) {
	if utils.IsEmpty(req.UniqueID) {
		return nil, fmt.Errorf("%w: unique_id is required", ErrValidation)
	}
	amount, err := req.Amount.Float64()
	if err != nil || amount < 0 {
		return nil, fmt.Errorf("%w: amount must be a non-negative number", ErrValidation)
	}
	if !utils.IsValidMobile(req.Mobile) {
		return nil, fmt.Errorf("%w: invalid mobile number", ErrValidation)
	}

	payload := map[string]any{
		"unique_id": strings.TrimSpace(req.UniqueID),
		"amount":    req.Amount.String(),
		"mobile":    strings.TrimSpace(req.Mobile),
	}
	resp, err := s.gateway.CreatePayment(ctx, payload)
	if err != nil {
		return nil, translateGatewayError(err)
	}
	if resp.StatusCode < 300 && gateway.PaymentLink(resp.Body) == "" {
		utils.LogWarn("Payment provider reply has no payment link", map[string]interface{}{"unique_id": payload["unique_id"]})
	}
	return resp, nil
}

func (s *paymentService) CheckPayment(ctx context.Context, req CheckPaymentRequest) (*gateway.ProviderResponse, error) {
	if utils.IsEmpty(req.UniqueID) {
		return nil, fmt.Errorf("%w: unique_id is required", ErrValidation)
	}
	utr := strings.TrimSpace(req.UTR)
	verification := strings.TrimSpace(req.Verification)

	payload := map[string]any{"unique_id": strings.TrimSpace(req.UniqueID)}
	switch {
	case utr != "":
		if !utils.IsValidUTR(utr) {
			return nil, fmt.Errorf("%w: utr must be exactly 12 digits", ErrValidation)
		}
		payload["utr"] = utr
	case verification != "":
		payload["verification"] = verification
	default:
		return nil, fmt.Errorf("%w: utr or verification is required", ErrValidation)
	}

	resp, err := s.gateway.CheckPayment(ctx, payload)
	if err != nil {
		return nil, translateGatewayError(err)
	}
	return resp, nil
}

func translateGatewayError(err error) error {
	switch {
	case errors.Is(err, gateway.ErrPaymentNotConfigured):
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	case errors.Is(err, gateway.ErrProviderUnavailable):
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	default:
		return fmt.Errorf("payment relay failed: %w", err)
	}
}
