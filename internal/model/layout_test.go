package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLayout_Rooms(t *testing.T) {
	rooms := DefaultLayout.Rooms()

	assert.Len(t, rooms, 97)
	assert.Equal(t, Room{Number: 101, Floor: 1, Position: 1}, rooms[0])
	assert.Equal(t, Room{Number: 1007, Floor: 10, Position: 7}, rooms[len(rooms)-1])

	seen := make(map[int]bool, len(rooms))
	for i, r := range rooms {
		assert.False(t, seen[r.Number], "duplicate room %d", r.Number)
		seen[r.Number] = true
		assert.False(t, r.Occupied)
		if i > 0 {
			prev := rooms[i-1]
			assert.True(t, prev.Floor < r.Floor || (prev.Floor == r.Floor && prev.Position < r.Position),
				"rooms must be ordered by floor then position")
		}
	}
}

func TestHotelLayout_Contains(t *testing.T) {
	testCases := []struct {
		floor, position int
		expected        bool
	}{
		{1, 1, true},
		{9, 10, true},
		{10, 7, true},
		{10, 8, false},
		{0, 1, false},
		{11, 1, false},
		{3, 0, false},
		{3, 11, false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, DefaultLayout.Contains(tc.floor, tc.position), "floor %d position %d", tc.floor, tc.position)
	}
}
