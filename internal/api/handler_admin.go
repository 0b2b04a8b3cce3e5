package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostRandom handles POST /api/random. It frees every room and then occupies
// a random share of them. It does not coordinate with running bookings.
func (h *Handler) PostRandom(c *gin.Context) {
	occupied, err := h.store.Randomize(c.Request.Context(), h.randomizeRatio)
	if err != nil {
		h.logger.Error("failed to randomize occupancy", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate random occupancy"})
		return
	}
	h.invalidate()

	h.logger.Info("random occupancy generated", zap.Int("occupied", occupied))
	c.JSON(http.StatusOK, gin.H{"message": "Random occupancy generated", "occupied": occupied})
}

// PostReset handles POST /api/reset.
func (h *Handler) PostReset(c *gin.Context) {
	if err := h.store.Reset(c.Request.Context()); err != nil {
		h.logger.Error("failed to reset rooms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset rooms"})
		return
	}
	h.invalidate()

	h.logger.Info("all rooms reset")
	c.JSON(http.StatusOK, gin.H{"message": "All rooms reset"})
}
