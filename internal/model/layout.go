package model

// HotelLayout describes the fixed room grid used to seed storage.
type HotelLayout struct {
	Floors            int
	PositionsPerFloor int
	TopFloorPositions int
}

// DefaultLayout is 10 floors of 10 rooms, except the top floor with 7.
var DefaultLayout = HotelLayout{
	Floors:            10,
	PositionsPerFloor: 10,
	TopFloorPositions: 7,
}

// PositionsOn returns the number of rooms on the given floor, or 0 when the
// floor does not exist.
func (l HotelLayout) PositionsOn(floor int) int {
	switch {
	case floor < 1 || floor > l.Floors:
		return 0
	case floor == l.Floors:
		return l.TopFloorPositions
	default:
		return l.PositionsPerFloor
	}
}

// Contains reports whether (floor, position) is a room of this layout.
func (l HotelLayout) Contains(floor, position int) bool {
	return position >= 1 && position <= l.PositionsOn(floor)
}

// Rooms returns every room of the layout, unoccupied, ordered by floor then position.
func (l HotelLayout) Rooms() []Room {
	var rooms []Room
	for f := 1; f <= l.Floors; f++ {
		for p := 1; p <= l.PositionsOn(f); p++ {
			rooms = append(rooms, Room{Number: RoomNumber(f, p), Floor: f, Position: p})
		}
	}
	return rooms
}
