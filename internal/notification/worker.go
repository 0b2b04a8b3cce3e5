package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-reservation-backend/internal/model"
)

// BookingEvent describes a committed booking.
type BookingEvent struct {
	ID    string `json:"booking_id"`
	Rooms []int  `json:"rooms"`
}

// Message renders the human-readable alert text.
func (e BookingEvent) Message() string {
	return fmt.Sprintf("Rooms %v booked (booking %s)", e.Rooms, e.ID)
}

type payload struct {
	BookingEvent
	Message string `json:"message"`
}

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers that push booking alerts to every
// registered subscription.
type WorkerPool struct {
	size    int
	jobs    chan BookingEvent
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
	logger  *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, logger *zap.Logger) *WorkerPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan BookingEvent, size), // Buffered channel
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
		logger:  logger,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log := wp.logger.With(zap.Int("worker", id))
	log.Debug("worker started")
	for {
		select {
		case event := <-wp.jobs:
			log.Debug("processing booking", zap.String("booking_id", event.ID))
			wp.notifySubscribers(ctx, event)
		case <-ctx.Done():
			log.Debug("worker shutting down")
			return
		}
	}
}

// Dispatch queues an event without blocking. It reports false when the
// queue is full and the event was dropped.
func (wp *WorkerPool) Dispatch(event BookingEvent) bool {
	select {
	case wp.jobs <- event:
		return true
	default:
		wp.logger.Warn("notification queue full, dropping booking alert", zap.String("booking_id", event.ID))
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan BookingEvent {
	return wp.jobs
}

// notifySubscribers fetches all subscriptions and sends the alert to each.
func (wp *WorkerPool) notifySubscribers(ctx context.Context, event BookingEvent) {
	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		wp.logger.Error("failed to fetch subscriptions", zap.String("booking_id", event.ID), zap.Error(err))
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	body, err := json.Marshal(payload{BookingEvent: event, Message: event.Message()})
	if err != nil {
		wp.logger.Error("failed to encode booking alert", zap.String("booking_id", event.ID), zap.Error(err))
		return
	}

	wp.logger.Info("sending booking alerts",
		zap.String("booking_id", event.ID),
		zap.Int("subscriptions", len(subscriptions)))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, body)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.logger.Warn("failed to send notification", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		wp.logger.Info("subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			wp.logger.Warn("failed to delete expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
