package topology

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"homespace/internal/models"
	"homespace/internal/observability"
)

// HousePatch carries optional field updates for a house. Nil fields are
// left unchanged.
type HousePatch struct {
	Name      *string
	Thumbnail *string
}

// RoomPatch carries optional field updates for a room.
type RoomPatch struct {
	Name         *string
	Description  *string
	MaxOccupants *int
	Status       *models.RoomStatus
	Activity     *string
	IsPrivate    *bool
	Thumbnail    *string
}

// Store owns the canonical topology snapshot. Every mutation replaces the
// snapshot wholesale; readers always observe a fully consistent version.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a store seeded with the given initial state.
func NewStore(initial State) *Store {
	if initial.Houses == nil {
		initial.Houses = []models.House{}
	}
	if initial.Neighbours == nil {
		initial.Neighbours = []models.Neighbour{}
	}
	return &Store{state: initial}
}

// Snapshot returns the current state version. Callers must treat the result
// as read-only.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Replace swaps in an externally constructed state, e.g. one restored from
// a persisted snapshot.
func (s *Store) Replace(next State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next.Houses == nil {
		next.Houses = []models.House{}
	}
	if next.Neighbours == nil {
		next.Neighbours = []models.Neighbour{}
	}
	s.state = next
	observability.IncStoreAction("topology", "replace")
}

// CreateHouse adds a house, assigning an ID and defaults where absent, and
// returns the house ID.
func (s *Store) CreateHouse(data models.House) string {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	if data.Name == "" {
		data.Name = "Untitled House"
	}
	if data.Owners == nil {
		data.Owners = []string{}
	}
	if data.Rooms == nil {
		data.Rooms = []models.Room{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = append(slices.Clone(s.state.Houses), data)
	s.state = next
	observability.IncStoreAction("topology", "create_house")
	return data.ID
}

// RemoveHouse deletes the house and every room it contains. Unknown IDs are
// a no-op.
func (s *Store) RemoveHouse(houseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = slices.DeleteFunc(slices.Clone(s.state.Houses), func(h models.House) bool {
		return h.ID == houseID
	})
	s.state = next
	observability.IncStoreAction("topology", "remove_house")
}

// UpdateHouse applies the patch to the house. Unknown IDs are a no-op.
func (s *Store) UpdateHouse(houseID string, patch HousePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = mapHouse(s.state.Houses, houseID, func(h models.House) models.House {
		if patch.Name != nil {
			h.Name = *patch.Name
		}
		if patch.Thumbnail != nil {
			h.Thumbnail = *patch.Thumbnail
		}
		return h
	})
	s.state = next
	observability.IncStoreAction("topology", "update_house")
}

// AddOwner adds an owner to the house if not already present.
func (s *Store) AddOwner(houseID, ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = mapHouse(s.state.Houses, houseID, func(h models.House) models.House {
		if slices.Contains(h.Owners, ownerID) {
			return h
		}
		h.Owners = append(slices.Clone(h.Owners), ownerID)
		return h
	})
	s.state = next
	observability.IncStoreAction("topology", "add_owner")
}

// RemoveOwner removes an owner from the house.
func (s *Store) RemoveOwner(houseID, ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = mapHouse(s.state.Houses, houseID, func(h models.House) models.House {
		h.Owners = slices.DeleteFunc(slices.Clone(h.Owners), func(id string) bool {
			return id == ownerID
		})
		return h
	})
	s.state = next
	observability.IncStoreAction("topology", "remove_owner")
}

// AddRoom adds a room to the house, filling defaults (status open, ten
// occupants max, empty occupancy), and returns the room ID. The room is not
// created when the house is unknown, but the returned ID is still assigned.
func (s *Store) AddRoom(houseID string, data models.Room) string {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	if data.Name == "" {
		data.Name = "Untitled Room"
	}
	if data.MaxOccupants <= 0 {
		data.MaxOccupants = 10
	}
	if data.Status == "" {
		data.Status = models.RoomOpen
	}
	if data.Activity == "" {
		data.Activity = "Idle"
	}
	data.Users = []models.UserRef{}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = mapHouse(s.state.Houses, houseID, func(h models.House) models.House {
		h.Rooms = append(slices.Clone(h.Rooms), data)
		return h
	})
	s.state = next
	observability.IncStoreAction("topology", "add_room")
	return data.ID
}

// RemoveRoom deletes the room from the house.
func (s *Store) RemoveRoom(houseID, roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = mapHouse(s.state.Houses, houseID, func(h models.House) models.House {
		h.Rooms = slices.DeleteFunc(slices.Clone(h.Rooms), func(r models.Room) bool {
			return r.ID == roomID
		})
		return h
	})
	s.state = next
	observability.IncStoreAction("topology", "remove_room")
}

// UpdateRoom applies the patch to the room. Unknown house or room IDs are a
// no-op.
func (s *Store) UpdateRoom(houseID, roomID string, patch RoomPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = mapHouse(s.state.Houses, houseID, func(h models.House) models.House {
		return mapRoom(h, roomID, func(r models.Room) models.Room {
			if patch.Name != nil {
				r.Name = *patch.Name
			}
			if patch.Description != nil {
				r.Description = *patch.Description
			}
			if patch.MaxOccupants != nil {
				r.MaxOccupants = *patch.MaxOccupants
			}
			if patch.Status != nil {
				r.Status = *patch.Status
			}
			if patch.Activity != nil {
				r.Activity = *patch.Activity
			}
			if patch.IsPrivate != nil {
				r.IsPrivate = *patch.IsPrivate
			}
			if patch.Thumbnail != nil {
				r.Thumbnail = *patch.Thumbnail
			}
			return r
		})
	})
	s.state = next
	observability.IncStoreAction("topology", "update_room")
}

// UpdateCurrentRoomDescription edits the description of the room the
// navigation cursor points at.
func (s *Store) UpdateCurrentRoomDescription(description string) {
	s.mu.Lock()
	houseID, roomID := s.state.CurrentHouseID, s.state.CurrentRoomID
	s.mu.Unlock()
	s.UpdateRoom(houseID, roomID, RoomPatch{Description: &description})
}

// AddUserToRoom places the user in the room. Adding a user already present
// is a no-op, so occupancy never holds duplicate IDs. Occupancy capacity is
// not enforced here; capping is a presentation-layer decision.
func (s *Store) AddUserToRoom(houseID, roomID string, user models.UserRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = mapHouse(s.state.Houses, houseID, func(h models.House) models.House {
		return mapRoom(h, roomID, func(r models.Room) models.Room {
			if slices.ContainsFunc(r.Users, func(u models.UserRef) bool { return u.ID == user.ID }) {
				return r
			}
			r.Users = append(slices.Clone(r.Users), user)
			return r
		})
	})
	s.state = next
	observability.IncStoreAction("topology", "add_user_to_room")
}

// RemoveUserFromRoom removes the user from the room's occupancy.
func (s *Store) RemoveUserFromRoom(houseID, roomID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Houses = mapHouse(s.state.Houses, houseID, func(h models.House) models.House {
		return mapRoom(h, roomID, func(r models.Room) models.Room {
			r.Users = slices.DeleteFunc(slices.Clone(r.Users), func(u models.UserRef) bool {
				return u.ID == userID
			})
			return r
		})
	})
	s.state = next
	observability.IncStoreAction("topology", "remove_user_from_room")
}

// MoveUserToRoom is remove-then-add. When the user is not in the source room
// the removal is a no-op and the move degenerates to a pure add.
func (s *Store) MoveUserToRoom(fromHouseID, fromRoomID, toHouseID, toRoomID string, user models.UserRef) {
	if fromHouseID != "" && fromRoomID != "" {
		s.RemoveUserFromRoom(fromHouseID, fromRoomID, user.ID)
	}
	s.AddUserToRoom(toHouseID, toRoomID, user)
}

// AddNeighbour appends an entry to the neighbour directory.
func (s *Store) AddNeighbour(n models.Neighbour) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Neighbours = append(slices.Clone(s.state.Neighbours), n)
	s.state = next
	observability.IncStoreAction("topology", "add_neighbour")
}

// RemoveNeighbour deletes a neighbour directory entry.
func (s *Store) RemoveNeighbour(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Neighbours = slices.DeleteFunc(slices.Clone(s.state.Neighbours), func(n models.Neighbour) bool {
		return n.ID == id
	})
	s.state = next
	observability.IncStoreAction("topology", "remove_neighbour")
}

// SetCurrentHouse moves the navigation cursor to a house.
func (s *Store) SetCurrentHouse(houseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.CurrentHouseID = houseID
	s.state = next
	observability.IncStoreAction("topology", "set_current_house")
}

// SetCurrentRoom moves the navigation cursor to a room.
func (s *Store) SetCurrentRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.CurrentRoomID = roomID
	s.state = next
	observability.IncStoreAction("topology", "set_current_room")
}
