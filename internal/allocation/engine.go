// Package allocation chooses which free rooms satisfy a booking request.
//
// The cost of a room set is the travel cost between its two extreme rooms,
// where moving one floor costs twice as much as moving one position along a
// floor. Two heuristics are tried in order: a window of rooms on a single
// floor, then a pivot room with its nearest neighbours across floors.
package allocation

import (
	"math"
	"sort"

	"hotel-reservation-backend/internal/model"
)

const (
	floorWeight    = 2
	positionWeight = 1
)

// PairCost is the travel cost between two rooms.
func PairCost(a, b model.Room) int {
	return abs(a.Floor-b.Floor)*floorWeight + abs(a.Position-b.Position)*positionWeight
}

// SetCost is the travel cost between the first and last room of the set
// once ordered by floor and position. An empty set costs nothing.
func SetCost(rooms []model.Room) int {
	if len(rooms) == 0 {
		return 0
	}
	sorted := make([]model.Room, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Floor != sorted[j].Floor {
			return sorted[i].Floor < sorted[j].Floor
		}
		return sorted[i].Position < sorted[j].Position
	})
	return PairCost(sorted[0], sorted[len(sorted)-1])
}

// Select picks count rooms out of available, which must be ordered by floor
// then position. It returns false when no candidate set can be built.
//
// Ties keep the first candidate found, so results are biased towards lower
// floors and lower positions and are fully deterministic.
func Select(available []model.Room, count int) ([]model.Room, bool) {
	if count <= 0 || len(available) < count {
		return nil, false
	}
	if best, ok := sameFloor(available, count); ok {
		return best, true
	}
	return crossFloor(available, count)
}

// sameFloor slides a window of count rooms over each floor's free rooms.
func sameFloor(available []model.Room, count int) ([]model.Room, bool) {
	floors, byFloor := groupByFloor(available)

	var best []model.Room
	minCost := math.MaxInt
	for _, floor := range floors {
		rooms := byFloor[floor]
		if len(rooms) < count {
			continue
		}
		for i := 0; i <= len(rooms)-count; i++ {
			window := rooms[i : i+count]
			if cost := SetCost(window); cost < minCost {
				minCost = cost
				best = window
			}
		}
	}
	if best == nil {
		return nil, false
	}
	return clone(best), true
}

// groupByFloor keeps floors in the order they first appear and rooms in
// their input order within each floor.
func groupByFloor(available []model.Room) ([]int, map[int][]model.Room) {
	var floors []int
	byFloor := make(map[int][]model.Room)
	for _, r := range available {
		if _, ok := byFloor[r.Floor]; !ok {
			floors = append(floors, r.Floor)
		}
		byFloor[r.Floor] = append(byFloor[r.Floor], r)
	}
	return floors, byFloor
}

type neighbour struct {
	room     model.Room
	distance int
}

// crossFloor builds one candidate per pivot from the pivot and its count-1
// nearest rooms. This is not an exhaustive search over all subsets.
func crossFloor(available []model.Room, count int) ([]model.Room, bool) {
	var best []model.Room
	minCost := math.MaxInt
	for _, pivot := range available {
		neighbours := make([]neighbour, 0, len(available)-1)
		for _, r := range available {
			if r.Number == pivot.Number {
				continue
			}
			neighbours = append(neighbours, neighbour{room: r, distance: PairCost(pivot, r)})
		}
		if len(neighbours) < count-1 {
			continue
		}
		sort.SliceStable(neighbours, func(i, j int) bool {
			return neighbours[i].distance < neighbours[j].distance
		})

		candidate := make([]model.Room, 0, count)
		candidate = append(candidate, pivot)
		for _, n := range neighbours[:count-1] {
			candidate = append(candidate, n.room)
		}
		if cost := SetCost(candidate); cost < minCost {
			minCost = cost
			best = candidate
		}
	}
	return best, best != nil
}

// Available filters a snapshot down to its unoccupied rooms, keeping order.
func Available(rooms []model.Room) []model.Room {
	free := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if !r.Occupied {
			free = append(free, r)
		}
	}
	return free
}

// Numbers returns the room numbers of rooms in the same order.
func Numbers(rooms []model.Room) []int {
	numbers := make([]int, len(rooms))
	for i, r := range rooms {
		numbers[i] = r.Number
	}
	return numbers
}

func clone(rooms []model.Room) []model.Room {
	out := make([]model.Room, len(rooms))
	copy(out, rooms)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
