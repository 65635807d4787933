package handlers

import (
	"net/http"

	"nightfly_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// LoginPage answers the redirect target of the identity gate. The client
// application renders the actual page.
func LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":    "login",
		"message": "Sign in with your mobile number",
		"otpPath": "/api/otp",
	})
}

// GetTicketTypes returns the ticket catalog.
func GetTicketTypes(c *gin.Context) {
	c.JSON(http.StatusOK, listResponse(models.TicketCatalog))
}
