package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luckyroue/wheelplay-backend/internal/middleware"
	"github.com/luckyroue/wheelplay-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BanHandler handles ban list HTTP requests
type BanHandler struct {
	banService services.BanService
}

// NewBanHandler creates a new BanHandler
func NewBanHandler(banService services.BanService) *BanHandler {
	return &BanHandler{banService: banService}
}

// banBody is the JSON body of a ban create request.
type banBody struct {
	Type      string     `json:"type" binding:"required"`
	Value     string     `json:"value" binding:"required"`
	Reason    string     `json:"reason"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// List handles GET /bans
func (h *BanHandler) List(c *gin.Context) {
	entries, err := h.banService.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bans"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Add handles POST /bans
func (h *BanHandler) Add(c *gin.Context) {
	var body banBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.banService.Add(c, body.Type, body.Value, body.Reason, body.ExpiresAt, middleware.GetClaims(c))
	if err != nil {
		if errors.Is(err, services.ErrDuplicateBan) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Remove handles DELETE /bans/:id
func (h *BanHandler) Remove(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.banService.Remove(c, id, middleware.GetClaims(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove ban"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ban removed"})
}
