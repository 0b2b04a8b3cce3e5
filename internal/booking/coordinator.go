// Package booking turns a room count into an atomic, serialized booking.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"hotel-reservation-backend/internal/allocation"
	"hotel-reservation-backend/internal/model"
	"hotel-reservation-backend/internal/store"
)

const (
	MinRooms = 1
	MaxRooms = 5
)

// TxStore is the part of the room store the coordinator needs.
type TxStore interface {
	Transaction(ctx context.Context, fn func(tx store.RoomTx) error) error
}

// Coordinator runs bookings one at a time: lock, read, allocate, write, commit.
type Coordinator struct {
	mu     sync.Mutex
	store  TxStore
	logger *zap.Logger
}

// NewCoordinator creates a coordinator on top of the given store.
func NewCoordinator(s TxStore, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{store: s, logger: logger}
}

// Book reserves count rooms and returns their numbers in allocation order.
//
// Calls are serialized: a booking only ever decides against a snapshot that
// contains all or none of the writes of every booking before it. Any failure
// after the transaction is opened rolls it back, so either every selected
// room is marked occupied or none is. Errors are *Error values.
func (c *Coordinator) Book(ctx context.Context, count int) ([]int, error) {
	if count < MinRooms || count > MaxRooms {
		return nil, NewError(ErrorStatusInvalidRequest,
			fmt.Errorf("room count must be between %d and %d, got %d", MinRooms, MaxRooms, count))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var booked []model.Room
	err := c.store.Transaction(ctx, func(tx store.RoomTx) error {
		rooms, err := tx.ReadAllLocked(ctx)
		if err != nil {
			return NewError(ErrorStatusStorageFailure, err)
		}

		available := allocation.Available(rooms)
		if len(available) < count {
			return NewError(ErrorStatusInsufficientCapacity,
				fmt.Errorf("not enough rooms available: requested %d, free %d", count, len(available)))
		}

		selected, ok := allocation.Select(available, count)
		if !ok {
			return NewError(ErrorStatusNoFeasibleAllocation,
				fmt.Errorf("unable to find a suitable set of %d rooms", count))
		}

		if err := tx.MarkOccupied(ctx, allocation.Numbers(selected)); err != nil {
			return NewError(ErrorStatusStorageFailure, err)
		}
		booked = selected
		return nil
	})
	if err != nil {
		var bookingErr *Error
		if !errors.As(err, &bookingErr) {
			// Begin or commit failed outside the callback.
			err = NewError(ErrorStatusStorageFailure, err)
		}
		c.logger.Warn("booking rolled back", zap.Int("count", count), zap.Error(err))
		return nil, err
	}

	numbers := allocation.Numbers(booked)
	c.logger.Info("booking committed",
		zap.Int("count", count),
		zap.Ints("rooms", numbers),
		zap.Int("cost", allocation.SetCost(booked)))
	return numbers, nil
}
