package chat

import (
	"time"

	"homespace/internal/models"
)

// State is one immutable version of the chat store: the canonical message
// map plus the denormalized indices derived from it. Actions publish a
// replacement State with every touched map or slice copied; earlier
// snapshots never observe later mutations.
//
// UsersByRoom is the set of users who have ever sent a message in a room.
// It is a looser concept than room occupancy in the topology store and the
// two are intentionally never reconciled here.
type State struct {
	Messages       map[string]models.ChatMessage
	MessagesByRoom map[string][]string
	UsersByRoom    map[string]map[string]bool
	CurrentRoomID  string
	UnreadCounts   map[string]int
	LastReadAt     map[string]time.Time
	Queue          []models.ChatMessage
	IsLoading      bool
	SearchResults  []models.ChatMessage
	Pinned         map[string]bool
	ReplyingTo     string
	EditingID      string
}

// NewState returns an empty chat state with every index allocated.
func NewState() State {
	return State{
		Messages:       map[string]models.ChatMessage{},
		MessagesByRoom: map[string][]string{},
		UsersByRoom:    map[string]map[string]bool{},
		UnreadCounts:   map[string]int{},
		LastReadAt:     map[string]time.Time{},
		Queue:          []models.ChatMessage{},
		SearchResults:  []models.ChatMessage{},
		Pinned:         map[string]bool{},
	}
}

// withDefaults allocates any nil index so actions can assume non-nil maps.
func (s State) withDefaults() State {
	if s.Messages == nil {
		s.Messages = map[string]models.ChatMessage{}
	}
	if s.MessagesByRoom == nil {
		s.MessagesByRoom = map[string][]string{}
	}
	if s.UsersByRoom == nil {
		s.UsersByRoom = map[string]map[string]bool{}
	}
	if s.UnreadCounts == nil {
		s.UnreadCounts = map[string]int{}
	}
	if s.LastReadAt == nil {
		s.LastReadAt = map[string]time.Time{}
	}
	if s.Queue == nil {
		s.Queue = []models.ChatMessage{}
	}
	if s.SearchResults == nil {
		s.SearchResults = []models.ChatMessage{}
	}
	if s.Pinned == nil {
		s.Pinned = map[string]bool{}
	}
	return s
}

func totalUnread(s State) int {
	total := 0
	for _, n := range s.UnreadCounts {
		total += n
	}
	return total
}
