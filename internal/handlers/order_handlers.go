package handlers

import (
	"errors"
	"net/http"

	"nightfly_backend/internal/middleware"
	"nightfly_backend/internal/models"
	"nightfly_backend/internal/services"
	"nightfly_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder books a cart of guests. The requester defaults to the token's mobile.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CreateOrder", err)
		return
	}
	if utils.IsEmpty(req.Mobile) {
		req.Mobile = middleware.CurrentMobile(c)
	}

	createdOrder, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "CreateOrder", err, "Failed to create order.")
		return
	}
	c.JSON(http.StatusCreated, createdOrder)
}

// GetOrders lists orders for ?mobile=, or every order with ?all=true.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBindError(c, "GetOrders", err)
		return
	}

	orders, err := h.orderService.GetOrders(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, "GetOrders", err, "Failed to retrieve orders.")
		return
	}
	c.JSON(http.StatusOK, listResponse(orders))
}

// UpdateOrder applies a partial update; the order id travels in the body.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateOrder", err)
		return
	}

	updatedOrder, err := h.orderService.UpdateOrder(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "UpdateOrder", err, "Failed to update order.")
		return
	}
	c.JSON(http.StatusOK, updatedOrder)
}

// GetOrderSummary returns dashboard counts over all orders.
func (h *OrderHandler) GetOrderSummary(c *gin.Context) {
	summary, err := h.orderService.GetOrderSummary(c.Request.Context())
	if err != nil {
		h.respondError(c, "GetOrderSummary", err, "Failed to summarize orders.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *OrderHandler) respondError(c *gin.Context, op string, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		utils.LogError(err, op+": order not found")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
	case errors.Is(err, services.ErrOrderExists):
		utils.LogError(err, op+": duplicate order")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Order already exists.", err.Error()))
	case errors.Is(err, services.ErrInvalidTransition):
		utils.LogError(err, op+": rejected transition")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInvalidTransition, "Order cannot move to the requested state.", err.Error()))
	case errors.Is(err, services.ErrRequesterRequired),
		errors.Is(err, services.ErrInvalidView),
		errors.Is(err, services.ErrInvalidOrderStatus),
		errors.Is(err, services.ErrUnderageGuest),
		errors.Is(err, services.ErrUnknownTicketType),
		errors.Is(err, services.ErrTicketPriceMismatch),
		errors.Is(err, services.ErrAmountMismatch):
		utils.LogError(err, op+": invalid request")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
	default:
		respondServiceError(c, op, err, fallback)
	}
}
