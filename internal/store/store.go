package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-reservation-backend/internal/model"
)

// Store defines the interface for all room table operations.
type Store interface {
	ReadAll(ctx context.Context) ([]model.Room, error)
	Room(ctx context.Context, number int) (*model.Room, error)
	Transaction(ctx context.Context, fn func(tx RoomTx) error) error
	Seed(ctx context.Context, layout model.HotelLayout) (int64, error)
	Reset(ctx context.Context) error
	Randomize(ctx context.Context, ratio float64) (int, error)
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db     *gorm.DB
	random func() float64
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db, random: rand.Float64}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ReadAll returns every room ordered by floor and position without locking.
// Callers must not treat the result as a reservation.
func (s *gormStore) ReadAll(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("floor ASC, pos ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to read rooms: %w", err)
	}
	return rooms, nil
}

// Room returns a single room by number.
func (s *gormStore) Room(ctx context.Context, number int) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to read room %d: %w", number, err)
	}
	return &room, nil
}

// Transaction runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise, including on panic;
// the connection is released in both cases.
func (s *gormStore) Transaction(ctx context.Context, fn func(tx RoomTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
}

// Seed inserts the rooms of the layout, leaving existing rows untouched.
func (s *gormStore) Seed(ctx context.Context, layout model.HotelLayout) (int64, error) {
	rooms := layout.Rooms()
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rooms)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to seed rooms: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Reset frees every room. It does not take the booking lock.
func (s *gormStore) Reset(ctx context.Context) error {
	if err := resetAll(s.db.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to reset rooms: %w", err)
	}
	return nil
}

// Randomize frees every room and then occupies each one with probability
// ratio. Like Reset it does not take the booking lock. It returns the number
// of rooms left occupied.
func (s *gormStore) Randomize(ctx context.Context, ratio float64) (int, error) {
	var occupied []int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resetAll(tx); err != nil {
			return err
		}

		var numbers []int
		if err := tx.Model(&model.Room{}).Order("number").Pluck("number", &numbers).Error; err != nil {
			return err
		}
		for _, n := range numbers {
			if s.random() < ratio {
				occupied = append(occupied, n)
			}
		}
		if len(occupied) == 0 {
			return nil
		}
		return tx.Model(&model.Room{}).Where("number IN ?", occupied).Update("is_occupied", true).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to randomize rooms: %w", err)
	}
	return len(occupied), nil
}

func resetAll(db *gorm.DB) error {
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Model(&model.Room{}).
		Update("is_occupied", false).Error
}

// gormTx implements RoomTx on top of an open GORM transaction.
type gormTx struct {
	tx *gorm.DB
}

func (t *gormTx) ReadAllLocked(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("floor ASC, pos ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms for update: %w", err)
	}
	return rooms, nil
}

func (t *gormTx) MarkOccupied(ctx context.Context, numbers []int) error {
	if len(numbers) == 0 {
		return nil
	}
	res := t.tx.WithContext(ctx).
		Model(&model.Room{}).
		Where("number IN ? AND is_occupied = ?", numbers, false).
		Update("is_occupied", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark rooms %v occupied: %w", numbers, res.Error)
	}
	if res.RowsAffected != int64(len(numbers)) {
		return fmt.Errorf("marked %d of %d rooms %v occupied", res.RowsAffected, len(numbers), numbers)
	}
	return nil
}
