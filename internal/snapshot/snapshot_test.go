package snapshot

import (
	"os"
	"path/filepath"
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

func TestCaptureAndMergeRoundTrip(t *testing.T) {
	ts := fixtures.Topology()
	cs := fixtures.Chat()
	ps := fixtures.Presence()

	snap := Capture(ts, cs, ps)

	ts2 := snap.TopologyState(topology.NewState())
	cs2 := snap.ChatState(chat.NewState())
	ps2 := snap.PresenceState(presence.NewState())

	assert.Equal(t, ts.Houses, ts2.Houses)
	assert.Equal(t, ts.CurrentRoomID, ts2.CurrentRoomID)
	assert.Equal(t, cs.Messages, cs2.Messages)
	assert.Equal(t, cs.MessagesByRoom, cs2.MessagesByRoom)
	assert.Equal(t, cs.UsersByRoom, cs2.UsersByRoom)
	assert.Equal(t, ps.Users, ps2.Users)
	assert.Equal(t, ps.Online, ps2.Online)
	assert.Equal(t, "1", ps2.CurrentUserID)
}

func TestMissingSectionsFallBackToBase(t *testing.T) {
	base := fixtures.Chat()

	merged := Snapshot{}.ChatState(base)

	assert.Equal(t, base.Messages, merged.Messages)
	assert.Equal(t, "living-room", merged.CurrentRoomID)
}

func TestFileSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	m := NewManager(NewFileSink(path), nil)

	m.Persist(Capture(fixtures.Topology(), fixtures.Chat(), fixtures.Presence()))

	restored, ok := m.Restore()
	require.True(t, ok)
	require.NotNil(t, restored.Topology)
	assert.Len(t, restored.Topology.Houses, 3)
	require.NotNil(t, restored.Chat)
	assert.Len(t, restored.Chat.Messages, 5)
	require.NotNil(t, restored.Presence)
	assert.Contains(t, restored.Presence.Online, "1")
}

func TestRestoreMissingFileFallsBack(t *testing.T) {
	m := NewManager(NewFileSink(filepath.Join(t.TempDir(), "absent.json")), nil)

	_, ok := m.Restore()

	assert.False(t, ok)
}

func TestRestoreCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	m := NewManager(NewFileSink(path), nil)

	_, ok := m.Restore()

	assert.False(t, ok)
}

func TestPersistSwallowsSinkErrors(t *testing.T) {
	sink := new(mocks.SinkMock)
	sink.On("Save", mock.Anything).Return(assert.AnError).Once()
	m := NewManager(sink, nil)

	// Must not panic or propagate the failure.
	m.Persist(Capture(topology.NewState(), chat.NewState(), presence.NewState()))

	sink.AssertExpectations(t)
}

func TestMergePreservesUnknownRoomsFromBase(t *testing.T) {
	base := chat.NewState()
	base.CurrentRoomID = "living-room"
	base.Messages["m1"] = models.ChatMessage{ID: "m1", Text: "seed", RoomID: "living-room"}
	base.MessagesByRoom["living-room"] = []string{"m1"}

	snap := Snapshot{Chat: &ChatSection{CurrentRoomID: "workshop"}}
	merged := snap.ChatState(base)

	// Only the fields the snapshot carries are overridden.
	assert.Equal(t, "workshop", merged.CurrentRoomID)
	assert.Len(t, merged.Messages, 1)
}
