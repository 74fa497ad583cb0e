package appstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homespace/internal/models"
)

func TestModalRegistry(t *testing.T) {
	s := NewStore()

	s.OpenModal("create-room", map[string]any{"houseId": "h1"})

	snap := s.Snapshot()
	require.Contains(t, snap.Modals, "create-room")
	assert.True(t, snap.Modals["create-room"].Open)
	assert.Equal(t, "h1", snap.Modals["create-room"].Props["houseId"])

	s.CloseModal("create-room")
	assert.NotContains(t, s.Snapshot().Modals, "create-room")
}

func TestToastQueue(t *testing.T) {
	s := NewStore()

	id := s.AddToast("success", "Room created")
	require.NotEmpty(t, id)
	s.AddToast("error", "Something went wrong")

	toasts := s.Snapshot().Toasts
	require.Len(t, toasts, 2)
	assert.Equal(t, "Room created", toasts[0].Message)

	s.RemoveToast(id)
	toasts = s.Snapshot().Toasts
	require.Len(t, toasts, 1)
	assert.Equal(t, "error", toasts[0].Type)
}

func TestNotifyQueuesToast(t *testing.T) {
	s := NewStore()

	s.Notify(models.Toast{Type: "info", Message: "Alice joined"})

	toasts := s.Snapshot().Toasts
	require.Len(t, toasts, 1)
	assert.NotEmpty(t, toasts[0].ID)
	assert.Equal(t, "Alice joined", toasts[0].Message)
}

func TestDialogSlotIsLastWriteWins(t *testing.T) {
	s := NewStore()

	s.OpenDialog(Dialog{Title: "First"})
	s.OpenDialog(Dialog{Title: "Second", Kind: "confirm"})

	d := s.Snapshot().Dialog
	require.NotNil(t, d)
	assert.Equal(t, "Second", d.Title)

	s.CloseDialog()
	assert.Nil(t, s.Snapshot().Dialog)
}

func TestLoadingFlag(t *testing.T) {
	s := NewStore()

	s.SetLoading(true)
	assert.True(t, s.Snapshot().IsLoading)
	s.SetLoading(false)
	assert.False(t, s.Snapshot().IsLoading)
}
