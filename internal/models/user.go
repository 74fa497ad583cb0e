package models

import "time"

// UserStatus is a user's availability.
type UserStatus string

const (
	UserOnline  UserStatus = "online"
	UserAway    UserStatus = "away"
	UserBusy    UserStatus = "busy"
	UserOffline UserStatus = "offline"
)

// UserProfile is the canonical user record owned by the presence store.
type UserProfile struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Avatar     string     `json:"avatar,omitempty"`
	Status     UserStatus `json:"status"`
	Activity   string     `json:"activity"`
	JoinedAt   time.Time  `json:"joined_at"`
	LastActive time.Time  `json:"last_active"`
}

// ActivityEntry records what a user was last doing and when.
type ActivityEntry struct {
	Activity  string    `json:"activity"`
	Timestamp time.Time `json:"timestamp"`
}

// Toast is the payload handed to the notification layer by action call sites.
type Toast struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
}
