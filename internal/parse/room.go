package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"hotel-reservation-backend/internal/model"
)

var (
	roomRe  = regexp.MustCompile(`(?i)^(?:room\s*)?#?\s*(\d{3,4})$`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// RoomRef holds the grid coordinates parsed from a room number.
type RoomRef struct {
	Number   int
	Floor    int
	Position int
}

// ParseRoomNumber accepts "305", "#305" or "Room 1007" and checks that the
// room exists in the default layout.
func ParseRoomNumber(raw string) (RoomRef, error) {
	s := strings.TrimSpace(spaceRe.ReplaceAllString(raw, " "))

	m := roomRe.FindStringSubmatch(s)
	if m == nil {
		return RoomRef{}, fmt.Errorf("unable to parse room number: %q", raw)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return RoomRef{}, fmt.Errorf("unable to parse room number %q: %w", raw, err)
	}

	// Last two digits are the position, the rest is the floor.
	ref := RoomRef{Number: n, Floor: n / 100, Position: n % 100}
	if !model.DefaultLayout.Contains(ref.Floor, ref.Position) {
		return RoomRef{}, fmt.Errorf("room %d does not exist", n)
	}
	return ref, nil
}

// ParseCount reads a requested room count. Range checks are left to the caller.
func ParseCount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("room count is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid room count %q", raw)
	}
	return n, nil
}
