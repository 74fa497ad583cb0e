package presence

import (
	"slices"
	"strings"

	"homespace/internal/models"
)

// Selectors are pure functions over a state snapshot.

// User looks up a profile by ID.
func User(s State, id string) (models.UserProfile, bool) {
	u, ok := s.Users[id]
	return u, ok
}

// CurrentUser resolves the current-user cursor to a profile.
func CurrentUser(s State) (models.UserProfile, bool) {
	if s.CurrentUserID == "" {
		return models.UserProfile{}, false
	}
	return User(s, s.CurrentUserID)
}

// AllUsers returns every profile, sorted by ID for determinism.
func AllUsers(s State) []models.UserProfile {
	out := make([]models.UserProfile, 0, len(s.Users))
	for _, u := range s.Users {
		out = append(out, u)
	}
	sortProfiles(out)
	return out
}

// OnlineUsers resolves the online set to profiles, skipping any stale IDs.
func OnlineUsers(s State) []models.UserProfile {
	out := make([]models.UserProfile, 0, len(s.Online))
	for id := range s.Online {
		if u, ok := s.Users[id]; ok {
			out = append(out, u)
		}
	}
	sortProfiles(out)
	return out
}

// UsersByStatus filters profiles by status.
func UsersByStatus(s State, status models.UserStatus) []models.UserProfile {
	var out []models.UserProfile
	for _, u := range AllUsers(s) {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out
}

// TypingUsers resolves the typing set to profiles, skipping any stale IDs.
func TypingUsers(s State) []models.UserProfile {
	out := make([]models.UserProfile, 0, len(s.Typing))
	for id := range s.Typing {
		if u, ok := s.Users[id]; ok {
			out = append(out, u)
		}
	}
	sortProfiles(out)
	return out
}

// UsersCount returns the number of known profiles.
func UsersCount(s State) int {
	return len(s.Users)
}

// OnlineCount returns the size of the online set.
func OnlineCount(s State) int {
	return len(s.Online)
}

func sortProfiles(profiles []models.UserProfile) {
	slices.SortFunc(profiles, func(a, b models.UserProfile) int {
		return strings.Compare(a.ID, b.ID)
	})
}
