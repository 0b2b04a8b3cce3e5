package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotel-reservation-backend/internal/booking"
	"hotel-reservation-backend/internal/notification"
	"hotel-reservation-backend/internal/parse"
)

// bookRequest accepts numRooms as a JSON number or a numeric string.
type bookRequest struct {
	NumRooms json.Number `json:"numRooms"`
}

// PostBook handles POST /api/book.
func (h *Handler) PostBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	count, err := parse.ParseCount(req.NumRooms.String())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booked, err := h.booker.Book(c.Request.Context(), count)
	if err != nil {
		status, msg := bookingErrorResponse(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("booking failed", zap.Int("count", count), zap.Error(err))
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	h.invalidate()

	event := notification.BookingEvent{ID: uuid.NewString(), Rooms: booked}
	if h.notifier != nil && !h.notifier.Dispatch(event) {
		h.logger.Warn("booking alert dropped", zap.String("booking_id", event.ID))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"booking_id": event.ID,
		"booked":     booked,
	})
}

// bookingErrorResponse maps a booking failure to an HTTP status and a
// message safe to show to clients.
func bookingErrorResponse(err error) (int, string) {
	var bookingErr *booking.Error
	if !errors.As(err, &bookingErr) {
		return http.StatusInternalServerError, "failed to book rooms"
	}

	switch bookingErr.Status {
	case booking.ErrorStatusInvalidRequest:
		return http.StatusBadRequest, errors.Unwrap(bookingErr).Error()
	case booking.ErrorStatusInsufficientCapacity, booking.ErrorStatusNoFeasibleAllocation:
		return http.StatusConflict, errors.Unwrap(bookingErr).Error()
	default:
		return http.StatusInternalServerError, "failed to book rooms"
	}
}
