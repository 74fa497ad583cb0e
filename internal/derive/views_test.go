package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homespace/internal/chat"
	"homespace/internal/fixtures"
	"homespace/internal/models"
	"homespace/internal/presence"
	"homespace/internal/topology"
)

func TestRoomOverviewJoinsStores(t *testing.T) {
	ts := fixtures.Topology()
	cs := fixtures.Chat()
	ps := fixtures.Presence()

	view, ok := RoomOverview(ts, cs, ps, "house1", "living-room", 3)
	require.True(t, ok)

	assert.Equal(t, "Living Room", view.Room.Name)
	assert.Equal(t, "My House", view.House.Name)
	assert.Len(t, view.Recent, 3)
	assert.Equal(t, "5", view.Recent[len(view.Recent)-1].ID)

	require.Len(t, view.Occupants, len(view.Room.Users))
	for _, occ := range view.Occupants {
		assert.NotEmpty(t, occ.Name)
	}
}

func TestRoomOverviewSynthesizesUnknownOccupants(t *testing.T) {
	ts := fixtures.Topology()
	houses := topology.NewStore(ts)
	houses.AddUserToRoom("house1", "living-room", models.UserRef{ID: "ghost", Name: "Ghost"})

	view, ok := RoomOverview(houses.Snapshot(), fixtures.Chat(), fixtures.Presence(), "house1", "living-room", 0)
	require.True(t, ok)

	var ghost *models.UserProfile
	for i := range view.Occupants {
		if view.Occupants[i].ID == "ghost" {
			ghost = &view.Occupants[i]
		}
	}
	require.NotNil(t, ghost)
	assert.Equal(t, models.UserOffline, ghost.Status)
}

func TestRoomOverviewUnknownRoom(t *testing.T) {
	_, ok := RoomOverview(fixtures.Topology(), fixtures.Chat(), fixtures.Presence(), "house1", "nope", 0)
	assert.False(t, ok)

	_, ok = RoomOverview(fixtures.Topology(), fixtures.Chat(), fixtures.Presence(), "nope", "living-room", 0)
	assert.False(t, ok)
}

func TestRoomOverviewUnreadCount(t *testing.T) {
	messages := chat.NewStore(fixtures.Chat())
	messages.SetCurrentRoom("gaming-room")
	messages.AddMessage(models.ChatMessage{Text: "psst"}, "living-room")
	messages.AddMessage(models.ChatMessage{Text: "over here"}, "living-room")

	view, ok := RoomOverview(fixtures.Topology(), messages.Snapshot(), fixtures.Presence(), "house1", "living-room", 0)
	require.True(t, ok)
	assert.Equal(t, 2, view.Unread)
}

func TestNeighbourDirectoryOccupancy(t *testing.T) {
	cards := NeighbourDirectory(fixtures.Topology())
	require.Len(t, cards, 3)

	byHouse := make(map[string]int)
	for _, c := range cards {
		byHouse[c.HouseID] = c.Occupancy
	}
	assert.Equal(t, 2, byHouse["abc123"])
	assert.Equal(t, 1, byHouse["def456"])
}

func TestHouseOccupancyUnknownHouse(t *testing.T) {
	assert.Zero(t, HouseOccupancy(fixtures.Topology(), "missing"))
}

func TestTypingBanner(t *testing.T) {
	users := presence.NewStore(fixtures.Presence())
	assert.Empty(t, TypingBanner(users.Snapshot()))

	users.SetUserTyping("1", true)
	assert.Equal(t, "Alice is typing...", TypingBanner(users.Snapshot()))

	users.SetUserTyping("2", true)
	assert.Equal(t, "Alice and Bob are typing...", TypingBanner(users.Snapshot()))

	users.SetUserTyping("3", true)
	assert.Equal(t, "Several people are typing...", TypingBanner(users.Snapshot()))
}
