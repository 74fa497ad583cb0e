package presence

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"homespace/internal/models"
	"homespace/internal/observability"
)

// UserPatch carries optional field updates for a profile. Nil fields are
// left unchanged. A Status change re-derives online-set membership.
type UserPatch struct {
	Name     *string
	Avatar   *string
	Status   *models.UserStatus
	Activity *string
}

// UserUpdate pairs a user ID with a patch for bulk application.
type UserUpdate struct {
	ID    string
	Patch UserPatch
}

// BatchKind selects which aspect a BatchUpdate touches.
type BatchKind string

const (
	BatchStatus   BatchKind = "status"
	BatchTyping   BatchKind = "typing"
	BatchActivity BatchKind = "activity"
)

// BatchUpdate is one entry of a mixed status/typing/activity batch.
type BatchUpdate struct {
	UserID   string
	Kind     BatchKind
	Status   models.UserStatus
	Typing   bool
	Activity string
}

// Store owns the canonical presence snapshot. Every mutation replaces the
// snapshot wholesale; readers always observe a fully consistent version.
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
// a persisted snapshot. Online-set entries without a profile are dropped to
// hold the membership invariant.
func (s *Store) Replace(next State) {
	next = next.withDefaults()
	online := maps.Clone(next.Online)
	for id := range online {
		if _, ok := next.Users[id]; !ok {
			delete(online, id)
		}
	}
	next.Online = online

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	observability.IncStoreAction("presence", "replace")
	observability.SetOnlineUsers(len(next.Online))
}

// AddUser registers a profile, assigning an ID and defaults where absent,
// and returns the user ID. An online status places the user in the online
// set immediately.
func (s *Store) AddUser(profile models.UserProfile) string {
	now := time.Now()
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.Status == "" {
		profile.Status = models.UserOffline
	}
	if profile.Activity == "" {
		profile.Activity = "Idle"
	}
	if profile.JoinedAt.IsZero() {
		profile.JoinedAt = now
	}
	profile.LastActive = now

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Users = maps.Clone(next.Users)
	next.Users[profile.ID] = profile
	next.LastSeen = maps.Clone(next.LastSeen)
	next.LastSeen[profile.ID] = now
	if profile.Status == models.UserOnline {
		next.Online = maps.Clone(next.Online)
		next.Online[profile.ID] = true
	}
	s.state = next
	observability.IncStoreAction("presence", "add_user")
	observability.SetOnlineUsers(len(next.Online))
	return profile.ID
}

// UpdateUser merges the patch into the profile and stamps last-active.
// When the patch carries a status, online-set membership is re-derived:
// added only for exactly "online", removed for any other value. Unknown IDs
// are a no-op.
func (s *Store) UpdateUser(id string, patch UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.state.Users[id]
	if !ok {
		return
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.Activity != nil {
		user.Activity = *patch.Activity
	}
	next := s.state
	if patch.Status != nil {
		user.Status = *patch.Status
		next.Online = maps.Clone(next.Online)
		if *patch.Status == models.UserOnline {
			next.Online[id] = true
		} else {
			delete(next.Online, id)
		}
	}
	user.LastActive = time.Now()

	next.Users = maps.Clone(next.Users)
	next.Users[id] = user
	s.state = next
	observability.IncStoreAction("presence", "update_user")
	observability.SetOnlineUsers(len(next.Online))
}

// RemoveUser purges the user from every index: profiles, online set, typing
// set, activities and last-seen.
func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Users = maps.Clone(next.Users)
	next.Online = maps.Clone(next.Online)
	next.Typing = maps.Clone(next.Typing)
	next.Activities = maps.Clone(next.Activities)
	next.LastSeen = maps.Clone(next.LastSeen)
	delete(next.Users, id)
	delete(next.Online, id)
	delete(next.Typing, id)
	delete(next.Activities, id)
	delete(next.LastSeen, id)

	s.state = next
	observability.IncStoreAction("presence", "remove_user")
	observability.SetOnlineUsers(len(next.Online))
}

// BulkUpdateUsers applies patches to existing profiles in one transition.
// Unknown IDs are ignored, never created.
func (s *Store) BulkUpdateUsers(updates []UserUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	next := s.state
	next.Users = maps.Clone(next.Users)
	next.Online = maps.Clone(next.Online)
	for _, u := range updates {
		user, ok := next.Users[u.ID]
		if !ok {
			continue
		}
		if u.Patch.Name != nil {
			user.Name = *u.Patch.Name
		}
		if u.Patch.Avatar != nil {
			user.Avatar = *u.Patch.Avatar
		}
		if u.Patch.Activity != nil {
			user.Activity = *u.Patch.Activity
		}
		if u.Patch.Status != nil {
			user.Status = *u.Patch.Status
			if *u.Patch.Status == models.UserOnline {
				next.Online[u.ID] = true
			} else {
				delete(next.Online, u.ID)
			}
		}
		user.LastActive = now
		next.Users[u.ID] = user
	}

	s.state = next
	observability.IncStoreAction("presence", "bulk_update_users")
	observability.SetOnlineUsers(len(next.Online))
}

// SetUserStatus sets the profile status and re-derives online membership.
func (s *Store) SetUserStatus(id string, status models.UserStatus) {
	s.UpdateUser(id, UserPatch{Status: &status})
}

// SetUserActivity records the activity in the activity map and, when the
// profile exists, mirrors it onto the profile.
func (s *Store) SetUserActivity(id, activity string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Activities = maps.Clone(next.Activities)
	next.Activities[id] = models.ActivityEntry{Activity: activity, Timestamp: time.Now()}

	if user, ok := next.Users[id]; ok {
		user.Activity = activity
		user.LastActive = time.Now()
		next.Users = maps.Clone(next.Users)
		next.Users[id] = user
	}

	s.state = next
	observability.IncStoreAction("presence", "set_user_activity")
}

// SetUserTyping toggles the user's typing-set membership. Whenever the
// profile exists its activity is forced to "Typing..." or back to "Online".
func (s *Store) SetUserTyping(id string, isTyping bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Typing = maps.Clone(next.Typing)
	if isTyping {
		next.Typing[id] = true
	} else {
		delete(next.Typing, id)
	}

	if user, ok := next.Users[id]; ok {
		if isTyping {
			user.Activity = "Typing..."
		} else {
			user.Activity = "Online"
		}
		user.LastActive = time.Now()
		next.Users = maps.Clone(next.Users)
		next.Users[id] = user
	}

	s.state = next
	observability.IncStoreAction("presence", "set_user_typing")
}

// SetMultipleUsersOnline marks the users online in one transition.
func (s *Store) SetMultipleUsersOnline(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	next := s.state
	next.Users = maps.Clone(next.Users)
	next.Online = maps.Clone(next.Online)
	for _, id := range ids {
		if user, ok := next.Users[id]; ok {
			user.Status = models.UserOnline
			user.LastActive = now
			next.Users[id] = user
			next.Online[id] = true
		}
	}

	s.state = next
	observability.IncStoreAction("presence", "set_multiple_users_online")
	observability.SetOnlineUsers(len(next.Online))
}

// SetMultipleUsersOffline marks the users offline in one transition,
// clearing typing state and stamping last-seen.
func (s *Store) SetMultipleUsersOffline(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	next := s.state
	next.Users = maps.Clone(next.Users)
	next.Online = maps.Clone(next.Online)
	next.Typing = maps.Clone(next.Typing)
	next.LastSeen = maps.Clone(next.LastSeen)
	for _, id := range ids {
		delete(next.Online, id)
		delete(next.Typing, id)
		if user, ok := next.Users[id]; ok {
			user.Status = models.UserOffline
			user.Activity = "Offline"
			next.Users[id] = user
		}
		next.LastSeen[id] = now
	}

	s.state = next
	observability.IncStoreAction("presence", "set_multiple_users_offline")
	observability.SetOnlineUsers(len(next.Online))
}

// BatchUserUpdates applies a mixed batch of status, typing and activity
// updates in one transition.
func (s *Store) BatchUserUpdates(updates []BatchUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	next := s.state
	next.Users = maps.Clone(next.Users)
	next.Online = maps.Clone(next.Online)
	next.Typing = maps.Clone(next.Typing)
	next.Activities = maps.Clone(next.Activities)
	for _, u := range updates {
		switch u.Kind {
		case BatchStatus:
			if u.Status == models.UserOnline {
				next.Online[u.UserID] = true
			} else {
				delete(next.Online, u.UserID)
			}
		case BatchTyping:
			if u.Typing {
				next.Typing[u.UserID] = true
			} else {
				delete(next.Typing, u.UserID)
			}
		case BatchActivity:
			next.Activities[u.UserID] = models.ActivityEntry{Activity: u.Activity, Timestamp: now}
		}

		user, ok := next.Users[u.UserID]
		if !ok {
			continue
		}
		switch u.Kind {
		case BatchStatus:
			user.Status = u.Status
		case BatchActivity:
			user.Activity = u.Activity
		}
		user.LastActive = now
		next.Users[u.UserID] = user
	}

	// A status batch entry for an unknown profile could otherwise leave a
	// stale online entry behind.
	for id := range next.Online {
		if _, ok := next.Users[id]; !ok {
			delete(next.Online, id)
		}
	}

	s.state = next
	observability.IncStoreAction("presence", "batch_user_updates")
	observability.SetOnlineUsers(len(next.Online))
}

// SetCurrentUser points the current-user cursor at a profile.
func (s *Store) SetCurrentUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.CurrentUserID = id
	s.state = next
	observability.IncStoreAction("presence", "set_current_user")
}

// ClearAllUsers resets the store to an empty state.
func (s *Store) ClearAllUsers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = NewState()
	observability.IncStoreAction("presence", "clear_all_users")
	observability.SetOnlineUsers(0)
}
