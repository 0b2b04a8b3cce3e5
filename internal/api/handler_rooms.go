package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-reservation-backend/internal/parse"
	"hotel-reservation-backend/internal/store"
)

// GetRooms handles GET /api/rooms.
func (h *Handler) GetRooms(c *gin.Context) {
	rooms, err := h.store.ReadAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to read rooms", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

// GetRoom handles GET /api/rooms/{number}.
func (h *Handler) GetRoom(c *gin.Context) {
	ref, err := parse.ParseRoomNumber(c.Param("number"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.store.Room(c.Request.Context(), ref.Number)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		h.logger.Error("failed to read room", zap.Int("number", ref.Number), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve room"})
		return
	}

	c.JSON(http.StatusOK, room)
}
