package model

// Room is a single bookable room. Only Occupied ever changes after seeding.
type Room struct {
	Number   int  `gorm:"primaryKey;autoIncrement:false" json:"number"` // floor*100 + position
	Floor    int  `gorm:"not null;index:idx_rooms_floor_pos,priority:1" json:"floor"`
	Position int  `gorm:"column:pos;not null;index:idx_rooms_floor_pos,priority:2" json:"pos"`
	Occupied bool `gorm:"column:is_occupied;not null;default:false" json:"is_occupied"`
}

// RoomNumber derives the room number from its grid coordinates.
func RoomNumber(floor, position int) int {
	return floor*100 + position
}
