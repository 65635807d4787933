package handlers

import (
	"errors"
	"net/http"

	"nightfly_backend/internal/services"
	"nightfly_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ManagerHandler holds the manager service.
type ManagerHandler struct {
	managerService services.ManagerService
}

// NewManagerHandler creates a new ManagerHandler.
func NewManagerHandler(ms services.ManagerService) *ManagerHandler {
	return &ManagerHandler{managerService: ms}
}

func (h *ManagerHandler) GetManagers(c *gin.Context) {
	managers, err := h.managerService.GetManagers(c.Request.Context())
	if err != nil {
		respondServiceError(c, "GetManagers", err, "Failed to retrieve managers.")
		return
	}
	c.JSON(http.StatusOK, listResponse(managers))
}

func (h *ManagerHandler) CreateManager(c *gin.Context) {
	var req services.CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CreateManager", err)
		return
	}
	manager, err := h.managerService.CreateManager(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "CreateManager", err, "Failed to create manager.")
		return
	}
	c.JSON(http.StatusCreated, manager)
}

func (h *ManagerHandler) UpdateManager(c *gin.Context) {
	var req services.UpdateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateManager", err)
		return
	}
	manager, err := h.managerService.UpdateManager(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "UpdateManager", err, "Failed to update manager.")
		return
	}
	c.JSON(http.StatusOK, manager)
}

func (h *ManagerHandler) DeleteManager(c *gin.Context) {
	id := idFromRequest(c)
	if id == "" {
		utils.RespondValidationFailed(c, "id is required")
		return
	}
	if err := h.managerService.DeleteManager(c.Request.Context(), id); err != nil {
		h.respondError(c, "DeleteManager", err, "Failed to delete manager.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Manager deleted", "id": id})
}

func (h *ManagerHandler) respondError(c *gin.Context, op string, err error, fallback string) {
	if errors.Is(err, services.ErrManagerNotFound) {
		utils.LogError(err, op+": manager not found")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Manager not found.", err.Error()))
	} else if errors.Is(err, services.ErrManagerPhoneExists) || errors.Is(err, services.ErrManagerExists) {
		utils.LogError(err, op+": manager conflict")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Manager already exists.", err.Error()))
	} else {
		respondServiceError(c, op, err, fallback)
	}
}
