package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homespace/internal/models"
)

func newTestStore() (*Store, string, string) {
	s := NewStore(NewState())
	houseID := s.CreateHouse(models.House{Name: "Test House", Owners: []string{"u1"}})
	roomID := s.AddRoom(houseID, models.Room{Name: "Test Room"})
	return s, houseID, roomID
}

func TestCreateHouseAssignsIDAndDefaults(t *testing.T) {
	s := NewStore(NewState())

	id := s.CreateHouse(models.House{})
	require.NotEmpty(t, id)

	h, ok := FindHouse(s.Snapshot(), id)
	require.True(t, ok)
	assert.Equal(t, "Untitled House", h.Name)
	assert.Empty(t, h.Rooms)
	assert.Empty(t, h.Owners)
}

func TestRemoveHouse(t *testing.T) {
	s, houseID, _ := newTestStore()

	s.RemoveHouse(houseID)

	_, ok := FindHouse(s.Snapshot(), houseID)
	assert.False(t, ok)
}

func TestRemoveHouseUnknownIDIsNoop(t *testing.T) {
	s, _, _ := newTestStore()
	before := s.Snapshot()

	s.RemoveHouse("nope")

	assert.Equal(t, before.Houses, s.Snapshot().Houses)
}

func TestUpdateHousePatchesOnlyGivenFields(t *testing.T) {
	s, houseID, _ := newTestStore()

	name := "Renamed"
	s.UpdateHouse(houseID, HousePatch{Name: &name})

	h, ok := FindHouse(s.Snapshot(), houseID)
	require.True(t, ok)
	assert.Equal(t, "Renamed", h.Name)
	assert.Equal(t, []string{"u1"}, h.Owners)
}

func TestAddOwnerIsIdempotent(t *testing.T) {
	s, houseID, _ := newTestStore()

	s.AddOwner(houseID, "u2")
	s.AddOwner(houseID, "u2")

	h, _ := FindHouse(s.Snapshot(), houseID)
	assert.Equal(t, []string{"u1", "u2"}, h.Owners)

	s.RemoveOwner(houseID, "u1")
	h, _ = FindHouse(s.Snapshot(), houseID)
	assert.Equal(t, []string{"u2"}, h.Owners)
}

func TestAddRoomFillsDefaults(t *testing.T) {
	s, houseID, _ := newTestStore()

	roomID := s.AddRoom(houseID, models.Room{Name: "Den"})
	require.NotEmpty(t, roomID)

	r, ok := FindRoom(s.Snapshot(), houseID, roomID)
	require.True(t, ok)
	assert.Equal(t, models.RoomOpen, r.Status)
	assert.Equal(t, 10, r.MaxOccupants)
	assert.Empty(t, r.Users)
}

func TestRemoveRoom(t *testing.T) {
	s, houseID, roomID := newTestStore()

	s.RemoveRoom(houseID, roomID)

	_, ok := FindRoom(s.Snapshot(), houseID, roomID)
	assert.False(t, ok)
}

func TestUpdateRoom(t *testing.T) {
	s, houseID, roomID := newTestStore()

	locked := models.RoomLocked
	private := true
	s.UpdateRoom(houseID, roomID, RoomPatch{Status: &locked, IsPrivate: &private})

	r, _ := FindRoom(s.Snapshot(), houseID, roomID)
	assert.Equal(t, models.RoomLocked, r.Status)
	assert.True(t, r.IsPrivate)
}

func TestAddUserToRoomIsIdempotent(t *testing.T) {
	s, houseID, roomID := newTestStore()
	alice := models.UserRef{ID: "u1", Name: "Alice"}

	s.AddUserToRoom(houseID, roomID, alice)
	s.AddUserToRoom(houseID, roomID, alice)

	users := RoomUsers(s.Snapshot(), houseID, roomID)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
}

func TestRemoveUserFromRoom(t *testing.T) {
	s, houseID, roomID := newTestStore()
	s.AddUserToRoom(houseID, roomID, models.UserRef{ID: "u1", Name: "Alice"})

	s.RemoveUserFromRoom(houseID, roomID, "u1")

	assert.Equal(t, 0, UserCount(s.Snapshot(), houseID, roomID))
}

func TestMoveUserToRoom(t *testing.T) {
	s, houseID, roomID := newTestStore()
	otherRoom := s.AddRoom(houseID, models.Room{Name: "Other"})
	bob := models.UserRef{ID: "u2", Name: "Bob"}
	s.AddUserToRoom(houseID, roomID, bob)

	s.MoveUserToRoom(houseID, roomID, houseID, otherRoom, bob)

	assert.Equal(t, 0, UserCount(s.Snapshot(), houseID, roomID))
	assert.Equal(t, 1, UserCount(s.Snapshot(), houseID, otherRoom))
}

func TestMoveUserToRoomDegeneratesToAdd(t *testing.T) {
	s, houseID, roomID := newTestStore()
	bob := models.UserRef{ID: "u2", Name: "Bob"}

	// Bob was never in the source room; the removal half is a no-op.
	s.MoveUserToRoom(houseID, "elsewhere", houseID, roomID, bob)

	assert.Equal(t, 1, UserCount(s.Snapshot(), houseID, roomID))
}

func TestOccupancyIsNotCapped(t *testing.T) {
	s := NewStore(NewState())
	houseID := s.CreateHouse(models.House{Name: "H"})
	roomID := s.AddRoom(houseID, models.Room{Name: "R", MaxOccupants: 2})

	s.AddUserToRoom(houseID, roomID, models.UserRef{ID: "u1"})
	s.AddUserToRoom(houseID, roomID, models.UserRef{ID: "u2"})
	require.Equal(t, 2, UserCount(s.Snapshot(), houseID, roomID))

	// The store accepts occupants beyond MaxOccupants; capping is a
	// presentation-layer decision.
	s.AddUserToRoom(houseID, roomID, models.UserRef{ID: "u3"})
	assert.Equal(t, 3, UserCount(s.Snapshot(), houseID, roomID))
}

func TestCurrentRoomRequiresValidCursor(t *testing.T) {
	s, houseID, roomID := newTestStore()

	s.SetCurrentHouse(houseID)
	s.SetCurrentRoom(roomID)
	_, ok := CurrentRoom(s.Snapshot())
	require.True(t, ok)

	// Cursor pointing at a room outside the current house yields no room.
	s.SetCurrentRoom("not-in-this-house")
	_, ok = CurrentRoom(s.Snapshot())
	assert.False(t, ok)

	s.SetCurrentHouse("gone")
	_, ok = CurrentHouse(s.Snapshot())
	assert.False(t, ok)
}

func TestRoomUsersUnknownIDsAreSafe(t *testing.T) {
	s, houseID, _ := newTestStore()

	assert.Empty(t, RoomUsers(s.Snapshot(), "nope", "nope"))
	assert.Empty(t, RoomUsers(s.Snapshot(), houseID, "nope"))
	assert.Equal(t, 0, UserCount(s.Snapshot(), "nope", "nope"))
}

func TestUpdateCurrentRoomDescription(t *testing.T) {
	s, houseID, roomID := newTestStore()
	s.SetCurrentHouse(houseID)
	s.SetCurrentRoom(roomID)

	s.UpdateCurrentRoomDescription("new description")

	r, _ := FindRoom(s.Snapshot(), houseID, roomID)
	assert.Equal(t, "new description", r.Description)
}

func TestNeighbourDirectory(t *testing.T) {
	s := NewStore(NewState())

	s.AddNeighbour(models.Neighbour{ID: "n1", Name: "Alice's House", Owner: "Alice", HouseID: "h-alice"})
	s.AddNeighbour(models.Neighbour{Name: "Bob's Place", Owner: "Bob", HouseID: "h-bob"})

	snap := s.Snapshot()
	require.Len(t, snap.Neighbours, 2)
	assert.NotEmpty(t, snap.Neighbours[1].ID)

	s.RemoveNeighbour("n1")
	assert.Len(t, s.Snapshot().Neighbours, 1)
}

func TestSnapshotsAreCopyOnWrite(t *testing.T) {
	s, houseID, roomID := newTestStore()
	before := s.Snapshot()

	s.AddUserToRoom(houseID, roomID, models.UserRef{ID: "u9", Name: "Zoe"})

	// The earlier snapshot must not see the mutation.
	if got := UserCount(before, houseID, roomID); got != 0 {
		t.Fatalf("old snapshot observed mutation, user count = %d", got)
	}
	assert.Equal(t, 1, UserCount(s.Snapshot(), houseID, roomID))
}
