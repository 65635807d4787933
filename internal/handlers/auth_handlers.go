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

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService  services.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: as, cookieSecure: cookieSecure}
}

// RequestOTP generates a one-time code and sends it to the mobile number.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req services.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "RequestOTP", err)
		return
	}

	resp, err := h.authService.RequestOTP(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrOTPCooldown) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusTooManyRequests, utils.ErrCodeTooManyRequests, "Please wait before requesting another OTP.", err.Error()))
			return
		}
		respondServiceError(c, "RequestOTP", err, "Failed to send OTP.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTP checks the code, issues the identity token and sets it as a cookie.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req services.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "VerifyOTP", err)
		return
	}

	authResp, err := h.authService.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired OTP.", err.Error()))
			return
		}
		respondServiceError(c, "VerifyOTP", err, "Failed to verify OTP.")
		return
	}

	h.setIdentityCookie(c, authResp.AccessToken, int(utils.IdentityTokenTTL.Seconds()))
	c.JSON(http.StatusOK, authResp)
}

// Logout clears the identity cookie. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setIdentityCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me echoes the mobile number bound to the presented token.
func (h *AuthHandler) Me(c *gin.Context) {
	mobile := middleware.CurrentMobile(c)
	if mobile == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing mobile in context"))
		return
	}
	c.JSON(http.StatusOK, models.Identity{Mobile: mobile})
}

func (h *AuthHandler) setIdentityCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.IdentityCookieName, value, maxAge, "/", "", h.cookieSecure, true)
}
