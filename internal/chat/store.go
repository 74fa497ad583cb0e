package chat

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"homespace/internal/models"
	"homespace/internal/observability"
)

// MessagePatch carries optional field updates for a message. Nil fields are
// left unchanged. A Text change marks the message edited.
type MessagePatch struct {
	Text        *string
	Type        *models.MessageType
	ReplyTo     *string
	Mentions    []string
	Attachments []models.Attachment
	Metadata    map[string]string
}

// Store owns the canonical chat snapshot. Every mutation replaces the
// snapshot wholesale under the lock; readers always observe a fully
// consistent version.
//
// Room-scoped actions accept unknown room IDs without failing: the room's
// buckets are created lazily on first write.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a store seeded with the given initial state.
func NewStore(initial State) *Store {
	return &Store{state: initial.withDefaults()}
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
	s.state = next.withDefaults()
	observability.IncStoreAction("chat", "replace")
	observability.SetUnreadMessages(totalUnread(s.state))
}

// normalize fills message defaults and stamps the room the message lands in.
func normalize(data models.ChatMessage, roomID string) models.ChatMessage {
	if data.ID == "" {
		data.ID = "msg_" + uuid.NewString()
	}
	if data.User.ID == "" {
		data.User = models.UserRef{ID: "unknown", Name: "Unknown User"}
	}
	if data.Timestamp.IsZero() {
		data.Timestamp = time.Now()
	}
	if data.Type == "" {
		data.Type = models.MessageText
	}
	if data.Reactions == nil {
		data.Reactions = map[string]map[string]bool{}
	}
	if data.Mentions == nil {
		data.Mentions = []string{}
	}
	if data.Attachments == nil {
		data.Attachments = []models.Attachment{}
	}
	if data.Metadata == nil {
		data.Metadata = map[string]string{}
	}
	data.RoomID = roomID
	return data
}

// appendMessage writes one message into an already-cloned draft state.
// The caller owns every top-level map in next.
func appendMessage(next *State, msg models.ChatMessage) {
	next.Messages[msg.ID] = msg
	next.MessagesByRoom[msg.RoomID] = append(slices.Clone(next.MessagesByRoom[msg.RoomID]), msg.ID)

	set := maps.Clone(next.UsersByRoom[msg.RoomID])
	if set == nil {
		set = map[string]bool{}
	}
	set[msg.User.ID] = true
	next.UsersByRoom[msg.RoomID] = set

	if msg.RoomID != next.CurrentRoomID {
		next.UnreadCounts[msg.RoomID]++
	}
}

// AddMessage appends a message to the room (the focused room when roomID is
// empty), assigning an ID and defaults where absent, and returns the message
// ID. The sender joins the room's user-presence set, and the unread counter
// increments when the room is not the focused one.
func (s *Store) AddMessage(data models.ChatMessage, roomID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	if roomID == "" {
		roomID = next.CurrentRoomID
	}
	msg := normalize(data, roomID)

	next.Messages = maps.Clone(next.Messages)
	next.MessagesByRoom = maps.Clone(next.MessagesByRoom)
	next.UsersByRoom = maps.Clone(next.UsersByRoom)
	next.UnreadCounts = maps.Clone(next.UnreadCounts)
	appendMessage(&next, msg)

	s.state = next
	observability.IncStoreAction("chat", "add_message")
	observability.IncMessage(string(msg.Type))
	observability.SetUnreadMessages(totalUnread(next))
	return msg.ID
}

// BulkAddMessages applies AddMessage semantics to each entry in a single
// state transition, and returns the assigned IDs.
func (s *Store) BulkAddMessages(dataList []models.ChatMessage, roomID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	if roomID == "" {
		roomID = next.CurrentRoomID
	}

	next.Messages = maps.Clone(next.Messages)
	next.MessagesByRoom = maps.Clone(next.MessagesByRoom)
	next.UsersByRoom = maps.Clone(next.UsersByRoom)
	next.UnreadCounts = maps.Clone(next.UnreadCounts)

	ids := make([]string, 0, len(dataList))
	for _, data := range dataList {
		msg := normalize(data, roomID)
		appendMessage(&next, msg)
		ids = append(ids, msg.ID)
		observability.IncMessage(string(msg.Type))
	}

	s.state = next
	observability.IncStoreAction("chat", "bulk_add_messages")
	observability.SetUnreadMessages(totalUnread(next))
	return ids
}

// UpdateMessage merges the patch into the message. A changed text marks the
// message edited and stamps the edit time. Unknown IDs are a no-op.
func (s *Store) UpdateMessage(id string, patch MessagePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.state.Messages[id]
	if !ok {
		return
	}
	if patch.Text != nil && *patch.Text != msg.Text {
		msg.Text = *patch.Text
		msg.IsEdited = true
		msg.EditedAt = time.Now()
	}
	if patch.Type != nil {
		msg.Type = *patch.Type
	}
	if patch.ReplyTo != nil {
		msg.ReplyTo = *patch.ReplyTo
	}
	if patch.Mentions != nil {
		msg.Mentions = patch.Mentions
	}
	if patch.Attachments != nil {
		msg.Attachments = patch.Attachments
	}
	if patch.Metadata != nil {
		msg.Metadata = patch.Metadata
	}

	next := s.state
	next.Messages = maps.Clone(next.Messages)
	next.Messages[id] = msg
	s.state = next
	observability.IncStoreAction("chat", "update_message")
}

// DeleteMessage removes a message. The soft path keeps the record with its
// text replaced by the tombstone; the hard path drops the record and its
// room-index entry. Both paths unpin the message. Unknown IDs are a no-op.
func (s *Store) DeleteMessage(id string, soft bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.state.Messages[id]
	if !ok {
		return
	}

	next := s.state
	next.Messages = maps.Clone(next.Messages)
	next.Pinned = maps.Clone(next.Pinned)

	if soft {
		msg.IsDeleted = true
		msg.DeletedAt = time.Now()
		msg.Text = models.DeletedPlaceholder
		next.Messages[id] = msg
	} else {
		delete(next.Messages, id)
		next.MessagesByRoom = maps.Clone(next.MessagesByRoom)
		next.MessagesByRoom[msg.RoomID] = slices.DeleteFunc(
			slices.Clone(next.MessagesByRoom[msg.RoomID]),
			func(mid string) bool { return mid == id },
		)
	}
	delete(next.Pinned, id)

	s.state = next
	observability.IncStoreAction("chat", "delete_message")
}

// ClearRoomMessages empties the room (the focused room when roomID is
// empty): its index, its messages, its unread counter and its user-presence
// set.
func (s *Store) ClearRoomMessages(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	if roomID == "" {
		roomID = next.CurrentRoomID
	}

	next.Messages = maps.Clone(next.Messages)
	next.Pinned = maps.Clone(next.Pinned)
	next.MessagesByRoom = maps.Clone(next.MessagesByRoom)
	next.UnreadCounts = maps.Clone(next.UnreadCounts)
	next.UsersByRoom = maps.Clone(next.UsersByRoom)

	for _, id := range s.state.MessagesByRoom[roomID] {
		delete(next.Messages, id)
		delete(next.Pinned, id)
	}
	next.MessagesByRoom[roomID] = []string{}
	next.UnreadCounts[roomID] = 0
	next.UsersByRoom[roomID] = map[string]bool{}

	s.state = next
	observability.IncStoreAction("chat", "clear_room_messages")
	observability.SetUnreadMessages(totalUnread(next))
}

// SetCurrentRoom moves the focus cursor, resets the target room's unread
// counter and stamps its last-read time.
func (s *Store) SetCurrentRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.CurrentRoomID = roomID
	next.UnreadCounts = maps.Clone(next.UnreadCounts)
	next.UnreadCounts[roomID] = 0
	next.LastReadAt = maps.Clone(next.LastReadAt)
	next.LastReadAt[roomID] = time.Now()

	s.state = next
	observability.IncStoreAction("chat", "set_current_room")
	observability.SetUnreadMessages(totalUnread(next))
}

// MarkAsRead resets the unread counter for the room (the focused room when
// roomID is empty) without moving focus.
func (s *Store) MarkAsRead(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	if roomID == "" {
		roomID = next.CurrentRoomID
	}
	next.UnreadCounts = maps.Clone(next.UnreadCounts)
	next.UnreadCounts[roomID] = 0
	next.LastReadAt = maps.Clone(next.LastReadAt)
	next.LastReadAt[roomID] = time.Now()

	s.state = next
	observability.IncStoreAction("chat", "mark_as_read")
	observability.SetUnreadMessages(totalUnread(next))
}

// AddReaction records userID's reaction under the emoji.
func (s *Store) AddReaction(messageID, emoji, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.state.Messages[messageID]
	if !ok {
		return
	}

	reactions := maps.Clone(msg.Reactions)
	if reactions == nil {
		reactions = map[string]map[string]bool{}
	}
	users := maps.Clone(reactions[emoji])
	if users == nil {
		users = map[string]bool{}
	}
	users[userID] = true
	reactions[emoji] = users
	msg.Reactions = reactions

	next := s.state
	next.Messages = maps.Clone(next.Messages)
	next.Messages[messageID] = msg
	s.state = next
	observability.IncStoreAction("chat", "add_reaction")
}

// RemoveReaction withdraws userID's reaction. When the last reactor for an
// emoji leaves, the emoji key is removed entirely.
func (s *Store) RemoveReaction(messageID, emoji, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.state.Messages[messageID]
	if !ok {
		return
	}
	if _, ok := msg.Reactions[emoji]; !ok {
		return
	}

	reactions := maps.Clone(msg.Reactions)
	users := maps.Clone(reactions[emoji])
	delete(users, userID)
	if len(users) == 0 {
		delete(reactions, emoji)
	} else {
		reactions[emoji] = users
	}
	msg.Reactions = reactions

	next := s.state
	next.Messages = maps.Clone(next.Messages)
	next.Messages[messageID] = msg
	s.state = next
	observability.IncStoreAction("chat", "remove_reaction")
}

// TogglePinMessage toggles the message's membership in the pinned set.
func (s *Store) TogglePinMessage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Pinned = maps.Clone(next.Pinned)
	if next.Pinned[id] {
		delete(next.Pinned, id)
	} else {
		next.Pinned[id] = true
	}
	s.state = next
	observability.IncStoreAction("chat", "toggle_pin_message")
}

// SetReplyingTo points the single reply slot at a message, last write wins.
func (s *Store) SetReplyingTo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.ReplyingTo = id
	s.state = next
	observability.IncStoreAction("chat", "set_replying_to")
}

// ClearReplyingTo empties the reply slot.
func (s *Store) ClearReplyingTo() {
	s.SetReplyingTo("")
}

// SetEditingMessage points the single edit slot at a message.
func (s *Store) SetEditingMessage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.EditingID = id
	s.state = next
	observability.IncStoreAction("chat", "set_editing_message")
}

// ClearEditingMessage empties the edit slot.
func (s *Store) ClearEditingMessage() {
	s.SetEditingMessage("")
}

// PerformSearch runs SearchMessages over the room and stores the result as
// the latest search snapshot, overwriting any previous one.
func (s *Store) PerformSearch(query, roomID string) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := SearchMessages(s.state, query, roomID)
	next := s.state
	next.SearchResults = results
	s.state = next
	observability.IncStoreAction("chat", "perform_search")
	return results
}

// ClearSearch empties the search-results snapshot.
func (s *Store) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.SearchResults = []models.ChatMessage{}
	s.state = next
	observability.IncStoreAction("chat", "clear_search")
}

// SetLoading flips the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.IsLoading = loading
	s.state = next
	observability.IncStoreAction("chat", "set_loading")
}

// AddToQueue appends a message to the optimistic send queue.
func (s *Store) AddToQueue(msg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Queue = append(slices.Clone(next.Queue), msg)
	s.state = next
	observability.IncStoreAction("chat", "add_to_queue")
}

// RemoveFromQueue drops a queued message by ID.
func (s *Store) RemoveFromQueue(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Queue = slices.DeleteFunc(slices.Clone(next.Queue), func(m models.ChatMessage) bool {
		return m.ID == id
	})
	s.state = next
	observability.IncStoreAction("chat", "remove_from_queue")
}

// ClearQueue empties the optimistic send queue.
func (s *Store) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Queue = []models.ChatMessage{}
	s.state = next
	observability.IncStoreAction("chat", "clear_queue")
}

// ClearAllMessages resets every chat structure, keeping only the focus
// cursor.
func (s *Store) ClearAllMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := NewState()
	next.CurrentRoomID = s.state.CurrentRoomID
	s.state = next
	observability.IncStoreAction("chat", "clear_all_messages")
	observability.SetUnreadMessages(0)
}
