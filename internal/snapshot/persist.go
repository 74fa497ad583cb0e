package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"homespace/internal/observability"
)

// Sink is where an encoded snapshot is persisted. The file sink is the
// default; tests substitute a mock.
type Sink interface {
	Save(data []byte) error
	Load() ([]byte, error)
}

// FileSink persists the snapshot as a single JSON file.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Save writes the snapshot file, creating parent directories as needed.
func (f *FileSink) Save(data []byte) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot file.
func (f *FileSink) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

// Manager serializes snapshots to a sink and restores them on startup.
// Errors never propagate past this boundary: a failed save is logged and
// dropped, a failed load degrades to in-memory-only operation.
type Manager struct {
	sink Sink
	log  *zap.Logger
}

// NewManager creates a manager over the sink.
func NewManager(sink Sink, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{sink: sink, log: log}
}

// Persist encodes and saves the snapshot, fire-and-forget.
func (m *Manager) Persist(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		m.log.Warn("snapshot encode failed", zap.Error(err))
		observability.IncSnapshotOp("save", "error")
		return
	}
	if err := m.sink.Save(data); err != nil {
		m.log.Warn("snapshot save failed", zap.Error(err))
		observability.IncSnapshotOp("save", "error")
		return
	}
	observability.IncSnapshotOp("save", "ok")
}

// Restore loads and decodes the latest snapshot. The second return value is
// false when nothing usable was persisted.
func (m *Manager) Restore() (Snapshot, bool) {
	data, err := m.sink.Load()
	if err != nil {
		m.log.Debug("no snapshot restored", zap.Error(err))
		observability.IncSnapshotOp("load", "miss")
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		m.log.Warn("snapshot decode failed, using defaults", zap.Error(err))
		observability.IncSnapshotOp("load", "error")
		return Snapshot{}, false
	}
	observability.IncSnapshotOp("load", "ok")
	return snap, true
}
