package api

import (
	"context"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"hotel-reservation-backend/internal/mw"
	"hotel-reservation-backend/internal/notification"
	"hotel-reservation-backend/internal/store"
)

// Booker reserves a number of rooms in one atomic step.
type Booker interface {
	Book(ctx context.Context, count int) ([]int, error)
}

// Notifier receives committed bookings for asynchronous delivery.
type Notifier interface {
	Dispatch(event notification.BookingEvent) bool
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store          store.Store
	booker         Booker
	notifier       Notifier
	cache          *mw.ResponseCache
	webpush        *webpush.Options
	randomizeRatio float64
	logger         *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, booker Booker, webpushOptions *webpush.Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:          s,
		booker:         booker,
		webpush:        webpushOptions,
		randomizeRatio: store.DefaultRandomizeRatio,
		logger:         logger,
	}
}

// WithNotifier sets where committed bookings are announced.
func (h *Handler) WithNotifier(n Notifier) *Handler {
	h.notifier = n
	return h
}

// WithRandomizeRatio sets the share of rooms occupied by POST /api/random.
func (h *Handler) WithRandomizeRatio(ratio float64) *Handler {
	if ratio > 0 && ratio <= 1 {
		h.randomizeRatio = ratio
	}
	return h
}

// invalidate drops cached reads after the room table changed.
func (h *Handler) invalidate() {
	if h.cache != nil {
		h.cache.Invalidate()
	}
}
