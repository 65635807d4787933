package handlers

import (
	"errors"
	"net/http"

	"nightfly_backend/internal/services"
	"nightfly_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClubHandler holds the club service.
type ClubHandler struct {
	clubService services.ClubService
}

// NewClubHandler creates a new ClubHandler.
func NewClubHandler(cs services.ClubService) *ClubHandler {
	return &ClubHandler{clubService: cs}
}

func (h *ClubHandler) GetClubs(c *gin.Context) {
	clubs, err := h.clubService.GetClubs(c.Request.Context())
	if err != nil {
		respondServiceError(c, "GetClubs", err, "Failed to retrieve clubs.")
		return
	}
	c.JSON(http.StatusOK, listResponse(clubs))
}

func (h *ClubHandler) CreateClub(c *gin.Context) {
	var req services.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "CreateClub", err)
		return
	}
	club, err := h.clubService.CreateClub(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrClubExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Club already exists.", err.Error()))
			return
		}
		respondServiceError(c, "CreateClub", err, "Failed to create club.")
		return
	}
	c.JSON(http.StatusCreated, club)
}

func (h *ClubHandler) UpdateClub(c *gin.Context) {
	var req services.UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, "UpdateClub", err)
		return
	}
	club, err := h.clubService.UpdateClub(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrClubNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Club not found.", err.Error()))
			return
		}
		respondServiceError(c, "UpdateClub", err, "Failed to update club.")
		return
	}
	c.JSON(http.StatusOK, club)
}

// DeleteClub takes the id from ?id= or a JSON body. Orders keep their club snapshot.
func (h *ClubHandler) DeleteClub(c *gin.Context) {
	id := idFromRequest(c)
	if id == "" {
		utils.RespondValidationFailed(c, "id is required")
		return
	}
	if err := h.clubService.DeleteClub(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrClubNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Club not found.", err.Error()))
			return
		}
		respondServiceError(c, "DeleteClub", err, "Failed to delete club.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Club deleted", "id": id})
}
