package leaderboard

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists a ranked board.
type Store interface {
	// Load returns the ranked board. A store that has never been written
	// yields an empty board.
	Load() ([]Entry, error)
	// Save replaces the stored board with entries.
	Save(entries []Entry) error
	// Reset deletes every entry.
	Reset() error
	// Close releases the store's resources.
	Close() error
}

// FileStore keeps the board in a flat text file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the board file. A missing file is an empty board.
func (s *FileStore) Load() ([]Entry, error) {
	return Load(s.Path)
}

// Save rewrites the board file.
func (s *FileStore) Save(entries []Entry) error {
	return Save(s.Path, entries)
}

// Reset deletes the board file.
func (s *FileStore) Reset() error {
	return Reset(s.Path)
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}

// Load reads and ranks the board at path. A missing file is an empty board;
// malformed lines are dropped.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot read %s: %w", path, err)
	}
	entries, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot parse %s: %w", path, err)
	}
	return entries, nil
}

// Save overwrites the file at path with one "name;score" line per entry,
// creating the parent directory if needed.
func Save(path string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
		}
	}

	var buf bytes.Buffer
	if err := Format(&buf, entries); err != nil {
		return fmt.Errorf("leaderboard: cannot format entries: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("leaderboard: cannot write %s: %w", path, err)
	}
	return nil
}

// Reset removes the board file. Removing a missing file is not an error.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("leaderboard: cannot reset %s: %w", path, err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
