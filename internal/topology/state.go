package topology

import (
	"slices"

	"homespace/internal/models"
)

// State is one immutable version of the house topology. Actions never modify
// a published State; they build a replacement with the touched structures
// copied, so callers can compare versions for change detection.
type State struct {
	Houses         []models.House
	Neighbours     []models.Neighbour
	CurrentHouseID string
	CurrentRoomID  string
}

// NewState returns an empty topology.
func NewState() State {
	return State{
		Houses:     []models.House{},
		Neighbours: []models.Neighbour{},
	}
}

// mapHouse returns a copy of houses with fn applied to the house matching id.
// The original slice and untouched houses are shared, never mutated.
func mapHouse(houses []models.House, id string, fn func(models.House) models.House) []models.House {
	next := slices.Clone(houses)
	for i, h := range next {
		if h.ID == id {
			next[i] = fn(h)
		}
	}
	return next
}

// mapRoom returns a copy of the house with fn applied to the room matching id.
func mapRoom(h models.House, roomID string, fn func(models.Room) models.Room) models.House {
	rooms := slices.Clone(h.Rooms)
	for i, r := range rooms {
		if r.ID == roomID {
			rooms[i] = fn(r)
		}
	}
	h.Rooms = rooms
	return h
}
