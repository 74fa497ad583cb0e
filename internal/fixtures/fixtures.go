// Package fixtures holds the built-in seed state every store falls back to
// when no persisted snapshot is restorable.
package fixtures

import (
	"time"

	"homespace/internal/chat"
	"homespace/internal/models"
	"homespace/internal/presence"
	"homespace/internal/topology"
)

// Topology returns the seed house layout: the local user's house plus two
// neighbour houses, with the cursor parked in the Living Room.
func Topology() topology.State {
	return topology.State{
		Houses: []models.House{
			{
				ID:     "house1",
				Name:   "My House",
				Owners: []string{"1"},
				Rooms: []models.Room{
					{
						ID:           "living-room",
						Name:         "Living Room",
						Description:  "Chill and talk here",
						MaxOccupants: 10,
						Status:       models.RoomOpen,
						Activity:     "Chatting",
						Users: []models.UserRef{
							{ID: "1", Name: "Alice"},
							{ID: "3", Name: "Charlie"},
						},
					},
					{
						ID:           "gaming-room",
						Name:         "Gaming Room",
						Description:  "Play and stream games",
						MaxOccupants: 10,
						Status:       models.RoomOpen,
						Activity:     "Gaming",
						Users: []models.UserRef{
							{ID: "2", Name: "Bob", Avatar: "https://example.com/bob.jpg"},
						},
					},
					{
						ID:           "study-room",
						Name:         "Study Room",
						Description:  "Focus & learn together",
						MaxOccupants: 10,
						Status:       models.RoomLocked,
						Activity:     "Studying",
						IsPrivate:    true,
						Users:        []models.UserRef{},
					},
				},
			},
			{
				ID:     "abc123",
				Name:   "Alice's House",
				Owners: []string{"alice_user_id"},
				Rooms: []models.Room{
					{
						ID:           "main-hall",
						Name:         "Main Hall",
						Description:  "Welcome area",
						MaxOccupants: 20,
						Status:       models.RoomOpen,
						Activity:     "Socializing",
						Users: []models.UserRef{
							{ID: "alice_user_id", Name: "Alice", Activity: "In Main Hall"},
							{ID: "4", Name: "David", Activity: "In Living Room"},
						},
					},
				},
			},
			{
				ID:     "def456",
				Name:   "Bob's Place",
				Owners: []string{"bob_user_id"},
				Rooms: []models.Room{
					{
						ID:           "workshop",
						Name:         "Workshop",
						Description:  "Creative space",
						MaxOccupants: 8,
						Status:       models.RoomOpen,
						Activity:     "Building",
						Users: []models.UserRef{
							{ID: "bob_user_id", Name: "Bob", Avatar: "https://example.com/bob.jpg"},
						},
					},
				},
			},
		},
		Neighbours: []models.Neighbour{
			{ID: "abc123", Name: "Alice's House", Owner: "Alice", HouseID: "abc123"},
			{ID: "def456", Name: "Bob's Place", Owner: "Bob", HouseID: "def456"},
			{ID: "ghi789", Name: "Carol's Home", Owner: "Carol", HouseID: "ghi789"},
		},
		CurrentHouseID: "house1",
		CurrentRoomID:  "living-room",
	}
}

// Chat returns the seed conversation in the Living Room.
func Chat() chat.State {
	now := time.Now()
	samples := []models.ChatMessage{
		{
			ID:        "1",
			Text:      "Welcome to the Living Room! 🎉",
			User:      models.UserRef{ID: "1", Name: "Alice"},
			Timestamp: now.Add(-5 * time.Minute),
			Type:      models.MessageSystem,
		},
		{
			ID:        "2",
			Text:      "Hey everyone! How is your day going?",
			User:      models.UserRef{ID: "2", Name: "Bob"},
			Timestamp: now.Add(-4 * time.Minute),
			Type:      models.MessageText,
		},
		{
			ID:        "3",
			Text:      "Great! Just finished a big project. Ready to relax 😌",
			User:      models.UserRef{ID: "3", Name: "Carol"},
			Timestamp: now.Add(-3 * time.Minute),
			Type:      models.MessageText,
		},
		{
			ID:        "4",
			Text:      "That sounds amazing Carol! What kind of project was it?",
			User:      models.UserRef{ID: "1", Name: "Alice"},
			Timestamp: now.Add(-2 * time.Minute),
			Type:      models.MessageText,
			IsOwn:     true,
		},
		{
			ID:        "5",
			Text:      "It was a web application with some cool animations!",
			User:      models.UserRef{ID: "3", Name: "Carol"},
			Timestamp: now.Add(-1 * time.Minute),
			Type:      models.MessageText,
		},
	}

	st := chat.NewState()
	st.CurrentRoomID = "living-room"
	st.MessagesByRoom["living-room"] = []string{}
	st.UsersByRoom["living-room"] = map[string]bool{}
	for _, msg := range samples {
		msg.RoomID = "living-room"
		msg.Reactions = map[string]map[string]bool{}
		msg.Mentions = []string{}
		msg.Attachments = []models.Attachment{}
		msg.Metadata = map[string]string{}
		st.Messages[msg.ID] = msg
		st.MessagesByRoom["living-room"] = append(st.MessagesByRoom["living-room"], msg.ID)
		st.UsersByRoom["living-room"][msg.User.ID] = true
	}
	st.UnreadCounts["living-room"] = 0
	st.LastReadAt["living-room"] = now
	return st
}

// Presence returns the seed user directory with the local user selected.
func Presence() presence.State {
	now := time.Now()
	samples := []models.UserProfile{
		{ID: "1", Name: "Alice", Status: models.UserOnline, Activity: "Here"},
		{ID: "2", Name: "Bob", Status: models.UserBusy, Activity: "In a meeting"},
		{ID: "3", Name: "Carol", Status: models.UserOnline, Activity: "Listening"},
		{ID: "4", Name: "Dave", Status: models.UserAway, Activity: "Away"},
		{ID: "5", Name: "Eve", Status: models.UserOnline, Activity: "Active"},
	}

	st := presence.NewState()
	st.CurrentUserID = "1"
	for _, u := range samples {
		u.JoinedAt = now
		u.LastActive = now
		st.Users[u.ID] = u
		st.LastSeen[u.ID] = now
		if u.Status == models.UserOnline {
			st.Online[u.ID] = true
		}
	}
	return st
}
