// Package snapshot persists an opaque, serializable image of the three state
// stores, keyed by store name, and restores it by shallow-merging into the
// fixture defaults. Persistence is strictly best-effort: a corrupt or
// missing snapshot silently falls back to defaults.
package snapshot

import (
	"slices"
	"time"

	"homespace/internal/chat"
	"homespace/internal/models"
	"homespace/internal/presence"
	"homespace/internal/topology"
)

// Snapshot is the persisted shape, one section per store.
type Snapshot struct {
	Topology *TopologySection `json:"house-store,omitempty"`
	Chat     *ChatSection     `json:"chat-store,omitempty"`
	Presence *PresenceSection `json:"user-store,omitempty"`
}

// TopologySection is the serializable image of the topology store.
type TopologySection struct {
	Houses         []models.House     `json:"houses"`
	Neighbours     []models.Neighbour `json:"neighbours"`
	CurrentHouseID string             `json:"current_house_id"`
	CurrentRoomID  string             `json:"current_room_id"`
}

// ChatSection is the serializable image of the chat store. Sets are encoded
// as sorted arrays; the ephemeral UI slots (search, reply, edit, queue) are
// deliberately not persisted.
type ChatSection struct {
	Messages      []models.ChatMessage `json:"messages"`
	RoomIndex     map[string][]string  `json:"room_index"`
	UsersByRoom   map[string][]string  `json:"users_by_room"`
	CurrentRoomID string               `json:"current_room_id"`
	UnreadCounts  map[string]int       `json:"unread_counts"`
	LastReadAt    map[string]time.Time `json:"last_read_at"`
	Pinned        []string             `json:"pinned"`
}

// PresenceSection is the serializable image of the presence store.
type PresenceSection struct {
	Users         []models.UserProfile `json:"users"`
	CurrentUserID string               `json:"current_user_id"`
	Online        []string             `json:"online"`
	Typing        []string             `json:"typing"`
	LastSeen      map[string]time.Time `json:"last_seen"`
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Capture builds a snapshot from the three store states.
func Capture(ts topology.State, cs chat.State, ps presence.State) Snapshot {
	msgs := make([]models.ChatMessage, 0, len(cs.Messages))
	for _, id := range sortedKeys(cs.Messages) {
		msgs = append(msgs, cs.Messages[id])
	}

	users := make([]models.UserProfile, 0, len(ps.Users))
	for _, id := range sortedKeys(ps.Users) {
		users = append(users, ps.Users[id])
	}

	usersByRoom := make(map[string][]string, len(cs.UsersByRoom))
	for room, set := range cs.UsersByRoom {
		usersByRoom[room] = sortedKeys(set)
	}

	return Snapshot{
		Topology: &TopologySection{
			Houses:         ts.Houses,
			Neighbours:     ts.Neighbours,
			CurrentHouseID: ts.CurrentHouseID,
			CurrentRoomID:  ts.CurrentRoomID,
		},
		Chat: &ChatSection{
			Messages:      msgs,
			RoomIndex:     cs.MessagesByRoom,
			UsersByRoom:   usersByRoom,
			CurrentRoomID: cs.CurrentRoomID,
			UnreadCounts:  cs.UnreadCounts,
			LastReadAt:    cs.LastReadAt,
			Pinned:        sortedKeys(cs.Pinned),
		},
		Presence: &PresenceSection{
			Users:         users,
			CurrentUserID: ps.CurrentUserID,
			Online:        sortedKeys(ps.Online),
			Typing:        sortedKeys(ps.Typing),
			LastSeen:      ps.LastSeen,
		},
	}
}

// TopologyState merges the snapshot's topology section over the base state.
// A missing section or field leaves the base value in place.
func (s Snapshot) TopologyState(base topology.State) topology.State {
	sec := s.Topology
	if sec == nil {
		return base
	}
	if sec.Houses != nil {
		base.Houses = sec.Houses
	}
	if sec.Neighbours != nil {
		base.Neighbours = sec.Neighbours
	}
	if sec.CurrentHouseID != "" {
		base.CurrentHouseID = sec.CurrentHouseID
	}
	if sec.CurrentRoomID != "" {
		base.CurrentRoomID = sec.CurrentRoomID
	}
	return base
}

// ChatState merges the snapshot's chat section over the base state,
// rebuilding the map and set indices from their serialized forms.
func (s Snapshot) ChatState(base chat.State) chat.State {
	sec := s.Chat
	if sec == nil {
		return base
	}
	if sec.Messages != nil {
		base.Messages = make(map[string]models.ChatMessage, len(sec.Messages))
		for _, msg := range sec.Messages {
			base.Messages[msg.ID] = msg
		}
	}
	if sec.RoomIndex != nil {
		base.MessagesByRoom = sec.RoomIndex
	}
	if sec.UsersByRoom != nil {
		base.UsersByRoom = make(map[string]map[string]bool, len(sec.UsersByRoom))
		for room, ids := range sec.UsersByRoom {
			set := make(map[string]bool, len(ids))
			for _, id := range ids {
				set[id] = true
			}
			base.UsersByRoom[room] = set
		}
	}
	if sec.CurrentRoomID != "" {
		base.CurrentRoomID = sec.CurrentRoomID
	}
	if sec.UnreadCounts != nil {
		base.UnreadCounts = sec.UnreadCounts
	}
	if sec.LastReadAt != nil {
		base.LastReadAt = sec.LastReadAt
	}
	if sec.Pinned != nil {
		base.Pinned = make(map[string]bool, len(sec.Pinned))
		for _, id := range sec.Pinned {
			base.Pinned[id] = true
		}
	}
	return base
}

// PresenceState merges the snapshot's presence section over the base state.
func (s Snapshot) PresenceState(base presence.State) presence.State {
	sec := s.Presence
	if sec == nil {
		return base
	}
	if sec.Users != nil {
		base.Users = make(map[string]models.UserProfile, len(sec.Users))
		for _, u := range sec.Users {
			base.Users[u.ID] = u
		}
	}
	if sec.CurrentUserID != "" {
		base.CurrentUserID = sec.CurrentUserID
	}
	if sec.Online != nil {
		base.Online = make(map[string]bool, len(sec.Online))
		for _, id := range sec.Online {
			base.Online[id] = true
		}
	}
	if sec.Typing != nil {
		base.Typing = make(map[string]bool, len(sec.Typing))
		for _, id := range sec.Typing {
			base.Typing[id] = true
		}
	}
	if sec.LastSeen != nil {
		base.LastSeen = sec.LastSeen
	}
	return base
}
