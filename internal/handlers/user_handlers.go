package handlers

import (
	"errors"
	"net/http"

	"nightfly_backend/internal/services"
	"nightfly_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// CheckUserRequest DTO
type CheckUserRequest struct {
	Mobile string `json:"mobile" binding:"required"`
}

// CheckUser reports whether a profile exists for the mobile number.
func (h *UserHandler) CheckUser(c *gin.Context) {
	var req CheckUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CheckUser", err)
		return
	}
	exists, err := h.userService.UserExists(c.Request.Context(), req.Mobile)
	if err != nil {
		respondServiceError(c, "CheckUser", err, "Failed to check user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// GetUsers lists users, or returns one user when ?mobile= is given.
func (h *UserHandler) GetUsers(c *gin.Context) {
	if mobile := c.Query("mobile"); mobile != "" {
		user, err := h.userService.GetUserByMobile(c.Request.Context(), mobile)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", err.Error()))
				return
			}
			respondServiceError(c, "GetUsers", err, "Failed to retrieve user.")
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	users, err := h.userService.GetUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, "GetUsers", err, "Failed to retrieve users.")
		return
	}
	c.JSON(http.StatusOK, listResponse(users))
}

// UpsertUser creates or replaces the profile keyed by mobile.
func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req services.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpsertUser", err)
		return
	}
	user, err := h.userService.UpsertUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, "UpsertUser", err, "Failed to save user.")
		return
	}
	c.JSON(http.StatusOK, user)
}
