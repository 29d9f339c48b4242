package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckyroue/wheelplay-backend/internal/middleware"
	"github.com/luckyroue/wheelplay-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignHandler handles campaign management HTTP requests
type CampaignHandler struct {
	campaignService services.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// Create handles POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	var input services.CampaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignService.Create(c, &input, middleware.GetClaims(c))
	if err != nil {
		c.JSON(campaignErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

// Get handles GET /campaigns/:id
func (h *CampaignHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	campaign, prizes, err := h.campaignService.Get(c, id, middleware.GetClaims(c))
	if err != nil {
		c.JSON(campaignErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": campaign, "prizes": prizes})
}

// statusBody is the JSON body of a status change request.
type statusBody struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// ChangeStatus handles POST /campaigns/:id/status
func (h *CampaignHandler) ChangeStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var body statusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	oldStatus, newStatus, err := h.campaignService.ChangeStatus(c, id, body.Status, body.Reason, middleware.GetClaims(c))
	if err != nil {
		var activationErr *services.ActivationError
		if errors.As(err, &activationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "activation requirements not met",
				"errors": activationErr.Problems,
			})
			return
		}
		var transitionErr *services.TransitionError
		if errors.As(err, &transitionErr) {
			c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
			return
		}
		c.JSON(campaignErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"old_status": oldStatus, "new_status": newStatus})
}

// Duplicate handles POST /campaigns/:id/duplicate
func (h *CampaignHandler) Duplicate(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	clone, err := h.campaignService.Duplicate(c, id, middleware.GetClaims(c))
	if err != nil {
		c.JSON(campaignErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, clone)
}

// TestLink handles POST /campaigns/:id/test-link
func (h *CampaignHandler) TestLink(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	token, err := h.campaignService.GenerateTestLink(c, id, middleware.GetClaims(c))
	if err != nil {
		c.JSON(campaignErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"test_token": token})
}

// Delete handles DELETE /campaigns/:id
func (h *CampaignHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.campaignService.Delete(c, id, middleware.GetClaims(c)); err != nil {
		c.JSON(campaignErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

func campaignErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrCampaignNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrCampaignActive):
		return http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
