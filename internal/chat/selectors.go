package chat

import (
	"slices"
	"strings"

	"homespace/internal/models"
)

// Selectors are pure functions over a state snapshot. A roomID of "" means
// the currently focused room.

func resolveRoom(s State, roomID string) string {
	if roomID == "" {
		return s.CurrentRoomID
	}
	return roomID
}

// Message looks up a single message by ID.
func Message(s State, id string) (models.ChatMessage, bool) {
	msg, ok := s.Messages[id]
	return msg, ok
}

// RoomMessages resolves the room's index to message records in order.
// Index entries whose record is missing are skipped, tolerating transient
// inconsistency rather than failing.
func RoomMessages(s State, roomID string) []models.ChatMessage {
	ids := s.MessagesByRoom[resolveRoom(s, roomID)]
	out := make([]models.ChatMessage, 0, len(ids))
	for _, id := range ids {
		if msg, ok := s.Messages[id]; ok {
			out = append(out, msg)
		}
	}
	return out
}

// RecentMessages returns the last limit messages of the focused room.
func RecentMessages(s State, limit int) []models.ChatMessage {
	msgs := RoomMessages(s, "")
	if limit <= 0 || limit >= len(msgs) {
		return msgs
	}
	return msgs[len(msgs)-limit:]
}

// UnreadCount returns the room's unread counter.
func UnreadCount(s State, roomID string) int {
	return s.UnreadCounts[resolveRoom(s, roomID)]
}

// PinnedMessages returns the room's messages that are in the pinned set.
func PinnedMessages(s State, roomID string) []models.ChatMessage {
	var out []models.ChatMessage
	for _, msg := range RoomMessages(s, roomID) {
		if s.Pinned[msg.ID] {
			out = append(out, msg)
		}
	}
	return out
}

// MessagesByUser returns the room's messages sent by the user.
func MessagesByUser(s State, userID, roomID string) []models.ChatMessage {
	var out []models.ChatMessage
	for _, msg := range RoomMessages(s, roomID) {
		if msg.User.ID == userID {
			out = append(out, msg)
		}
	}
	return out
}

// UsersByRoom returns the IDs of users who have sent at least one message in
// the room, sorted for determinism.
func UsersByRoom(s State, roomID string) []string {
	set := s.UsersByRoom[resolveRoom(s, roomID)]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// SearchMessages returns the room's messages whose text or sender name
// contains the query, case-insensitively.
func SearchMessages(s State, query, roomID string) []models.ChatMessage {
	q := strings.ToLower(query)
	out := []models.ChatMessage{}
	for _, msg := range RoomMessages(s, roomID) {
		if strings.Contains(strings.ToLower(msg.Text), q) ||
			strings.Contains(strings.ToLower(msg.User.Name), q) {
			out = append(out, msg)
		}
	}
	return out
}
