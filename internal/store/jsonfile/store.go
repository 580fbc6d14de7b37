// Package jsonfile writes chat transcripts as JSON files.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/foliochat/folio/internal/core/chat"
)

// TranscriptFile is the root JSON structure written to disk.
type TranscriptFile struct {
	ExportedAt time.Time      `json:"exported_at"`
	BaseURL    string         `json:"base_url,omitempty"`
	Messages   []chat.Message `json:"messages"`
}

// Store exports transcripts to a single JSON file. Exports are write-only,
// nothing reads a transcript back into a session.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New creates a transcript store at the given path.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the export file path.
func (s *Store) Path() string {
	return s.path
}

// Export replaces the file with msgs.
func (s *Store) Export(baseURL string, msgs []chat.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msgs == nil {
		msgs = []chat.Message{}
	}

	return s.save(TranscriptFile{
		ExportedAt: s.now(),
		BaseURL:    baseURL,
		Messages:   msgs,
	})
}

// save writes the transcript file to disk atomically.
// Uses write-to-temp-then-rename to prevent corruption from interrupted writes.
func (s *Store) save(file TranscriptFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create transcript directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
