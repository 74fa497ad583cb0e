package presence

import (
	"time"

	"homespace/internal/models"
)

// State is one immutable version of the presence store: canonical user
// profiles plus the online/typing index sets derived from them. The online
// set never references an ID absent from the profile map.
type State struct {
	Users         map[string]models.UserProfile
	CurrentUserID string
	Online        map[string]bool
	Typing        map[string]bool
	Activities    map[string]models.ActivityEntry
	LastSeen      map[string]time.Time
}

// NewState returns an empty presence state with every index allocated.
func NewState() State {
	return State{
		Users:      map[string]models.UserProfile{},
		Online:     map[string]bool{},
		Typing:     map[string]bool{},
		Activities: map[string]models.ActivityEntry{},
		LastSeen:   map[string]time.Time{},
	}
}

// withDefaults allocates any nil index so actions can assume non-nil maps.
func (s State) withDefaults() State {
	if s.Users == nil {
		s.Users = map[string]models.UserProfile{}
	}
	if s.Online == nil {
		s.Online = map[string]bool{}
	}
	if s.Typing == nil {
		s.Typing = map[string]bool{}
	}
	if s.Activities == nil {
		s.Activities = map[string]models.ActivityEntry{}
	}
	if s.LastSeen == nil {
		s.LastSeen = map[string]time.Time{}
	}
	return s
}
