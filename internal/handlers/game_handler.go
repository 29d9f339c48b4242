package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckyroue/wheelplay-backend/internal/services"
)

// GameHandler handles the public player-facing endpoints
type GameHandler struct {
	playService services.PlayService
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(playService services.PlayService) *GameHandler {
	return &GameHandler{playService: playService}
}

// playBody is the JSON body of a play request.
type playBody struct {
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone"`
	FirstName        string `json:"first_name"`
	ConsentAccepted  bool   `json:"consent_accepted"`
	MarketingConsent bool   `json:"marketing_consent"`
	DeviceHash       string `json:"device_hash"`
}

// GetCampaign handles GET /game/:slug
func (h *GameHandler) GetCampaign(c *gin.Context) {
	view, err := h.playService.GetPlayableCampaign(c, c.Param("slug"), c.Query("token"))
	if err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load campaign"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// Play handles POST /game/:slug/play
func (h *GameHandler) Play(c *gin.Context) {
	var body playBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := &services.PlayRequest{
		Email:            body.Email,
		Phone:            body.Phone,
		FirstName:        body.FirstName,
		ConsentAccepted:  body.ConsentAccepted,
		MarketingConsent: body.MarketingConsent,
		DeviceHash:       body.DeviceHash,
		IPAddress:        c.ClientIP(),
		TestToken:        c.Query("token"),
	}

	result, err := h.playService.Play(c, c.Param("slug"), req)
	if err != nil {
		status := playErrorStatus(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Failed to process play"})
		} else {
			c.JSON(status, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// playErrorStatus maps play pipeline errors to HTTP statuses. Policy
// denials deliberately carry no more detail than their sentinel message.
func playErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrCampaignNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConsentRequired), errors.Is(err, services.ErrPhoneRequired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, services.ErrPlanQuotaExceeded),
		errors.Is(err, services.ErrEmailCapReached),
		errors.Is(err, services.ErrPhoneCapReached),
		errors.Is(err, services.ErrIPVelocityExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
