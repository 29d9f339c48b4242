package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckyroue/wheelplay-backend/internal/middleware"
	"github.com/luckyroue/wheelplay-backend/internal/services"
)

// RewardHandler handles staff reward code HTTP requests
type RewardHandler struct {
	rewardService services.RewardService
}

// NewRewardHandler creates a new RewardHandler
func NewRewardHandler(rewardService services.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

// Redeem handles POST /rewards/:code/redeem
func (h *RewardHandler) Redeem(c *gin.Context) {
	reward, err := h.rewardService.Redeem(c, c.Param("code"), middleware.GetClaims(c))
	if err != nil {
		c.JSON(rewardErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reward)
}

// Verify handles GET /rewards/:code/verify
func (h *RewardHandler) Verify(c *gin.Context) {
	verification, err := h.rewardService.Verify(c, c.Param("code"), middleware.GetClaims(c))
	if err != nil {
		c.JSON(rewardErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, verification)
}

func rewardErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrRewardNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrRewardAlreadyRedeemed),
		errors.Is(err, services.ErrRewardExpired),
		errors.Is(err, services.ErrTestCodeUnredeemable):
		return http.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
