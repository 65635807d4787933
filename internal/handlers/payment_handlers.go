package handlers

import (
	"nightfly_backend/internal/gateway"
	"nightfly_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// PaymentHandler relays payment calls to the provider.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CreatePayment", err)
		return
	}
	resp, err := h.paymentService.CreatePayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, "CreatePayment", err, "Failed to create payment.")
		return
	}
	forward(c, resp)
}

func (h *PaymentHandler) CheckPayment(c *gin.Context) {
	var req services.CheckPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CheckPayment", err)
		return
	}
	resp, err := h.paymentService.CheckPayment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, "CheckPayment", err, "Failed to check payment.")
		return
	}
	forward(c, resp)
}

// forward writes the provider reply with the provider's status code.
func forward(c *gin.Context, resp *gateway.ProviderResponse) {
	c.Data(resp.StatusCode, "application/json; charset=utf-8", resp.Body)
}
