package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"homespace/internal/chat"
	"homespace/internal/fixtures"
	"homespace/internal/mocks"
	"homespace/internal/models"
	"homespace/internal/presence"
	"homespace/internal/topology"
)

func occupantIDs(ts topology.State, houseID, roomID string) []string {
	refs := topology.RoomUsers(ts, houseID, roomID)
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

func newTestSession(notifier *mocks.NotifierMock) (*Session, *topology.Store, *chat.Store, *presence.Store) {
	houses := topology.NewStore(fixtures.Topology())
	messages := chat.NewStore(fixtures.Chat())
	users := presence.NewStore(fixtures.Presence())
	return New(houses, messages, users, notifier, nil), houses, messages, users
}

func TestJoinRoomMovesUserAndCursors(t *testing.T) {
	notifier := new(mocks.NotifierMock)
	notifier.On("Notify", mock.Anything).Return()
	sess, houses, messages, users := newTestSession(notifier)

	err := sess.JoinRoom("house1", "gaming-room")
	require.NoError(t, err)

	ts := houses.Snapshot()
	assert.Equal(t, "gaming-room", ts.CurrentRoomID)
	assert.NotContains(t, occupantIDs(ts, "house1", "living-room"), "1")
	assert.Contains(t, occupantIDs(ts, "house1", "gaming-room"), "1")

	assert.Equal(t, "gaming-room", messages.Snapshot().CurrentRoomID)

	alice, ok := presence.User(users.Snapshot(), "1")
	require.True(t, ok)
	assert.Equal(t, "In Gaming Room", alice.Activity)

	notifier.AssertCalled(t, "Notify", mock.MatchedBy(func(toast models.Toast) bool {
		return toast.Type == "info" && toast.Message == "Joined Gaming Room"
	}))
}

func TestJoinRoomUnknownRoom(t *testing.T) {
	notifier := new(mocks.NotifierMock)
	notifier.On("Notify", mock.Anything).Return()
	sess, houses, _, _ := newTestSession(notifier)

	before := houses.Snapshot()
	err := sess.JoinRoom("house1", "basement")
	require.Error(t, err)

	assert.Equal(t, before.CurrentRoomID, houses.Snapshot().CurrentRoomID)
	notifier.AssertCalled(t, "Notify", mock.MatchedBy(func(toast models.Toast) bool {
		return toast.Type == "error"
	}))
}

func TestJoinRoomLocked(t *testing.T) {
	notifier := new(mocks.NotifierMock)
	notifier.On("Notify", mock.Anything).Return()
	sess, houses, _, _ := newTestSession(notifier)

	err := sess.JoinRoom("house1", "study-room")
	require.Error(t, err)
	assert.NotContains(t, occupantIDs(houses.Snapshot(), "house1", "study-room"), "1")
}

func TestSendMessagePostsToFocusedRoom(t *testing.T) {
	notifier := new(mocks.NotifierMock)
	sess, _, messages, users := newTestSession(notifier)
	users.SetUserTyping("1", true)

	id, err := sess.SendMessage("hello from me")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	cs := messages.Snapshot()
	msg, ok := chat.Message(cs, id)
	require.True(t, ok)
	assert.Equal(t, "living-room", msg.RoomID)
	assert.Equal(t, "1", msg.User.ID)
	assert.True(t, msg.IsOwn)

	assert.Empty(t, presence.TypingUsers(users.Snapshot()))
}

func TestSendMessageWithoutCurrentUser(t *testing.T) {
	notifier := new(mocks.NotifierMock)
	houses := topology.NewStore(fixtures.Topology())
	messages := chat.NewStore(fixtures.Chat())
	users := presence.NewStore(presence.NewState())
	sess := New(houses, messages, users, notifier, nil)

	_, err := sess.SendMessage("nobody home")
	assert.Error(t, err)
}

func TestSetStatusAnnounces(t *testing.T) {
	notifier := new(mocks.NotifierMock)
	notifier.On("Notify", mock.Anything).Return()
	sess, _, _, users := newTestSession(notifier)

	require.NoError(t, sess.SetStatus(models.UserBusy))

	alice, ok := presence.User(users.Snapshot(), "1")
	require.True(t, ok)
	assert.Equal(t, models.UserBusy, alice.Status)
	assert.NotContains(t, users.Snapshot().Online, "1")

	notifier.AssertCalled(t, "Notify", mock.MatchedBy(func(toast models.Toast) bool {
		return toast.Message == "Alice is now busy"
	}))
}

func TestLeaveRoom(t *testing.T) {
	notifier := new(mocks.NotifierMock)
	sess, houses, _, users := newTestSession(notifier)

	require.NoError(t, sess.LeaveRoom())

	assert.NotContains(t, occupantIDs(houses.Snapshot(), "house1", "living-room"), "1")
	alice, _ := presence.User(users.Snapshot(), "1")
	assert.Equal(t, "Idle", alice.Activity)
}
