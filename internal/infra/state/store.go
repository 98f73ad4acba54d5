package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/skinsentry/skinsentry/internal/domain"
)

// Store persists the state document as a single JSON file. One mutex guards
// the whole load-mutate-save cycle; both watch loops and the command surface
// share it, which is the only concurrency control the document gets.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) View(ctx context.Context, fn func(doc domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update runs fn under the lock and rewrites the file afterwards, whether or
// not fn changed anything. A failed save is returned to the caller; the
// in-memory changes are considered lost at that point.
func (s *Store) Update(ctx context.Context, fn func(doc *domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *Store) load() (domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Document{}, nil
		}
		return domain.Document{}, fmt.Errorf("read state file: %w", err)
	}

	var model documentModel
	if err := json.Unmarshal(data, &model); err != nil {
		return domain.Document{}, fmt.Errorf("decode state file: %w", err)
	}
	return mapDocumentToDomain(model), nil
}

func (s *Store) save(doc domain.Document) error {
	data, err := json.MarshalIndent(mapDocumentToModel(doc), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	// Write to a sibling temp file and rename so a partial write never
	// clobbers the previous document.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
