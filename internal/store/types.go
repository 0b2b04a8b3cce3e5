package store

import (
	"context"
	"errors"

	"hotel-reservation-backend/internal/model"
)

// ErrRoomNotFound is returned when a room number is not in the table.
var ErrRoomNotFound = errors.New("room not found")

// RoomTx is the view of the room table inside an open transaction.
type RoomTx interface {
	// ReadAllLocked reads every room ordered by floor and position and holds
	// the row locks until the enclosing transaction ends.
	ReadAllLocked(ctx context.Context) ([]model.Room, error)
	// MarkOccupied flags exactly the given rooms as occupied. It fails without
	// partial effect if any of them is missing or already occupied.
	MarkOccupied(ctx context.Context, numbers []int) error
}

// DefaultRandomizeRatio is the share of rooms occupied by Randomize when no
// ratio is configured.
const DefaultRandomizeRatio = 0.3
