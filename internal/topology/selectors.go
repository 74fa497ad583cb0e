package topology

import "homespace/internal/models"

// Selectors are pure functions over a state snapshot, so presentation code
// and tests can derive views without holding a live store.

// FindHouse looks up a house by ID.
func FindHouse(s State, houseID string) (models.House, bool) {
	for _, h := range s.Houses {
		if h.ID == houseID {
			return h, true
		}
	}
	return models.House{}, false
}

// FindRoom looks up a room inside a house.
func FindRoom(s State, houseID, roomID string) (models.Room, bool) {
	h, ok := FindHouse(s, houseID)
	if !ok {
		return models.Room{}, false
	}
	for _, r := range h.Rooms {
		if r.ID == roomID {
			return r, true
		}
	}
	return models.Room{}, false
}

// CurrentHouse resolves the navigation cursor to a house.
func CurrentHouse(s State) (models.House, bool) {
	return FindHouse(s, s.CurrentHouseID)
}

// CurrentRoom resolves the navigation cursor to a room. The room must live
// inside the current house; otherwise there is no current room.
func CurrentRoom(s State) (models.Room, bool) {
	return FindRoom(s, s.CurrentHouseID, s.CurrentRoomID)
}

// RoomUsers returns the room's occupants, or an empty slice when the house
// or room is unknown.
func RoomUsers(s State, houseID, roomID string) []models.UserRef {
	r, ok := FindRoom(s, houseID, roomID)
	if !ok || r.Users == nil {
		return []models.UserRef{}
	}
	return r.Users
}

// UserCount returns the number of occupants in the room.
func UserCount(s State, houseID, roomID string) int {
	return len(RoomUsers(s, houseID, roomID))
}
