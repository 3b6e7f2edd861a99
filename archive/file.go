package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes one JSON file per session, overwritten at each milestone so
// the file always holds the latest complete record.
type FileSink struct {
	dir string
}

// NewFileSink creates a sink writing under dir, creating it if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// Path returns the file a session's snapshots are written to.
func (s *FileSink) Path(sessionID string) string {
	return filepath.Join(s.dir, "interview-"+sessionID+".json")
}

// Write implements Sink. The file is written atomically via a temp file rename
// so a crash mid-write never truncates the previous snapshot.
func (s *FileSink) Write(_ context.Context, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "interview-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path(snap.SessionID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}
	return nil
}
