// Package store persists pipeline results as a JSON array of records keyed
// by a stable identity, so that a later run can skip work that already
// succeeded. The file is human-inspectable and fully reloaded on open.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Status tags the outcome of processing one item.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusSkipped  Status = "skipped"
	StatusFiltered Status = "filtered"
	StatusError    Status = "error"
)

// Record is one persisted result. Only success and error records are
// written to disk; skipped and filtered are per-run statuses.
type Record[A any] struct {
	Key       string    `json:"key"`
	Status    Status    `json:"status"`
	Artifact  A         `json:"artifact,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is an identity-keyed collection of records backed by a JSON file.
// It keeps first-insertion order so repeated runs produce stable diffs.
// Not safe for concurrent use; the pipeline's single collector owns it.
type Store[A any] struct {
	path    string
	records map[string]Record[A]
	order   []string
}

// Open loads the store at path. A missing file yields an empty store; a
// present but unreadable file is an error (silently starting fresh would
// reprocess everything).
func Open[A any](path string) (*Store[A], error) {
	s := &Store[A]{
		path:    path,
		records: make(map[string]Record[A]),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read result store: %w", err)
	}

	var recs []Record[A]
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode result store %s: %w", path, err)
	}
	for _, r := range recs {
		s.Put(r)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store[A]) Path() string { return s.path }

// Len returns the number of stored records.
func (s *Store[A]) Len() int { return len(s.records) }

// Get returns the record for key, if present.
func (s *Store[A]) Get(key string) (Record[A], bool) {
	r, ok := s.records[key]
	return r, ok
}

// HasSuccess reports whether key already has a success record.
func (s *Store[A]) HasSuccess(key string) bool {
	r, ok := s.records[key]
	return ok && r.Status == StatusSuccess
}

// Put inserts or overwrites the record for its key.
func (s *Store[A]) Put(r Record[A]) {
	if _, seen := s.records[r.Key]; !seen {
		s.order = append(s.order, r.Key)
	}
	s.records[r.Key] = r
}

// Remove deletes the record for key, if present.
func (s *Store[A]) Remove(key string) {
	if _, ok := s.records[key]; !ok {
		return
	}
	delete(s.records, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Records returns all records in first-insertion order.
func (s *Store[A]) Records() []Record[A] {
	out := make([]Record[A], 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.records[k])
	}
	return out
}

// Artifacts returns the artifacts of all success records, in order.
func (s *Store[A]) Artifacts() []A {
	var out []A
	for _, k := range s.order {
		if r := s.records[k]; r.Status == StatusSuccess {
			out = append(out, r.Artifact)
		}
	}
	return out
}

// Persist writes the store to disk. It writes to a temp file in the same
// directory and renames it over the target, so a reader never observes a
// partially written store.
func (s *Store[A]) Persist() error {
	data, err := json.MarshalIndent(s.Records(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write result store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace result store: %w", err)
	}
	return nil
}
