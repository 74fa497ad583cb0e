package appstate

import (
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"homespace/internal/models"
	"homespace/internal/observability"
)

// Notifier receives toast payloads from action call sites. The app store is
// the default implementation; tests substitute a mock.
type Notifier interface {
	Notify(toast models.Toast)
}

// Modal is one open modal and the props it was opened with.
type Modal struct {
	Open  bool
	Props map[string]any
}

// Dialog is the single confirm/alert slot.
type Dialog struct {
	Title   string
	Message string
	Kind    string
}

// State is one immutable version of the UI-chrome store: modals, toasts,
// the dialog slot and the global loading flag.
type State struct {
	Modals    map[string]Modal
	Toasts    []models.Toast
	Dialog    *Dialog
	IsLoading bool
}

// NewState returns an empty app state.
func NewState() State {
	return State{
		Modals: map[string]Modal{},
		Toasts: []models.Toast{},
	}
}

// Store owns the UI-chrome snapshot, mutated copy-on-write like the data
// stores.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates an empty app store.
func NewStore() *Store {
	return &Store{state: NewState()}
}

// Snapshot returns the current state version.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OpenModal registers a modal as open with the given props.
func (s *Store) OpenModal(id string, props map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Modals = maps.Clone(next.Modals)
	next.Modals[id] = Modal{Open: true, Props: props}
	s.state = next
	observability.IncStoreAction("app", "open_modal")
}

// CloseModal drops the modal from the registry.
func (s *Store) CloseModal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Modals = maps.Clone(next.Modals)
	delete(next.Modals, id)
	s.state = next
	observability.IncStoreAction("app", "close_modal")
}

// AddToast queues a toast and returns its assigned ID.
func (s *Store) AddToast(toastType, message string) string {
	toast := models.Toast{ID: uuid.NewString(), Type: toastType, Message: message}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Toasts = append(slices.Clone(next.Toasts), toast)
	s.state = next
	observability.IncStoreAction("app", "add_toast")
	return toast.ID
}

// Notify implements Notifier by queueing the toast.
func (s *Store) Notify(toast models.Toast) {
	if toast.ID == "" {
		toast.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Toasts = append(slices.Clone(next.Toasts), toast)
	s.state = next
	observability.IncStoreAction("app", "add_toast")
}

// RemoveToast drops a toast by ID.
func (s *Store) RemoveToast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Toasts = slices.DeleteFunc(slices.Clone(next.Toasts), func(t models.Toast) bool {
		return t.ID == id
	})
	s.state = next
	observability.IncStoreAction("app", "remove_toast")
}

// SetLoading flips the global loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.IsLoading = loading
	s.state = next
	observability.IncStoreAction("app", "set_loading")
}

// OpenDialog fills the single dialog slot, last write wins.
func (s *Store) OpenDialog(d Dialog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Dialog = &d
	s.state = next
	observability.IncStoreAction("app", "open_dialog")
}

// CloseDialog empties the dialog slot.
func (s *Store) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Dialog = nil
	s.state = next
	observability.IncStoreAction("app", "close_dialog")
}
