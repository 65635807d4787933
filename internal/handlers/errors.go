package handlers

import (
	"errors"
	"net/http"

	"nightfly_backend/internal/services"
	"nightfly_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondBindError reports a request body or query that failed binding.
func respondBindError(c *gin.Context, op string, err error) {
	utils.LogError(err, op+": Failed to bind request")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+utils.DescribeValidationError(err), err.Error()))
}

// respondServiceError maps the errors every service shares. Handlers check their
// own sentinel errors first.
func respondServiceError(c *gin.Context, op string, err error, fallback string) {
	utils.LogError(err, op+": Error from service")
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed.", err.Error()))
	case errors.Is(err, services.ErrConfiguration):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeConfiguration, "Server configuration error.", err.Error()))
	case errors.Is(err, services.ErrUpstream):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeUpstream, "Upstream provider is unavailable.", "Upstream error"))
	default:
		utils.RespondInternal(c, fallback)
	}
}

// idFromRequest reads the target id from the query string or a JSON body.
func idFromRequest(c *gin.Context) string {
	if id := c.Query("id"); id != "" {
		return id
	}
	var body struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return ""
	}
	return body.ID
}

// listResponse wraps collection results.
func listResponse[T any](items []T) gin.H {
	return gin.H{"data": items, "total": len(items)}
}
