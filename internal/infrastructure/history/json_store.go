package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/pkg/filesystem"
	"github.com/doeshing/imagegen/internal/pkg/logger"
	"github.com/doeshing/imagegen/internal/ports"
)

// JSONStore keeps the whole history as one JSON array in a single slot file.
// Every mutation rewrites the slot wholesale.
type JSONStore struct {
	path    string
	logger  ports.Logger
	mu      sync.Mutex
	loaded  bool
	records []domain.HistoryRecord
}

// DefaultJSONPath is ~/.imagegen/history/generatedImages.json.
func DefaultJSONPath() string {
	return filesystem.DataDir("history", domain.HistorySlotName+".json")
}

// NewJSONStore creates a store backed by path. Nothing is read until Load.
func NewJSONStore(path string, log ports.Logger) *JSONStore {
	if path == "" {
		path = DefaultJSONPath()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &JSONStore{path: path, logger: log}
}

// Load reads the slot. A missing slot is an empty history; a corrupt one is
// also treated as empty and left on disk until the next write replaces it.
func (s *JSONStore) Load(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		s.logger.Warn("history slot unreadable, starting empty", map[string]interface{}{"path": s.path, "error": err.Error()})
		return nil
	}

	var records []domain.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("history slot corrupt, starting empty", map[string]interface{}{"path": s.path, "error": err.Error()})
		return nil
	}
	s.records = records
	return nil
}

// Append implements ports.HistoryRepository.
func (s *JSONStore) Append(record domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.ErrStoreNotLoaded
	}
	for _, existing := range s.records {
		if existing.ID == record.ID {
			return fmt.Errorf("append %s: %w", record.ID, domain.ErrDuplicateRecord)
		}
	}

	next := append(cloneRecords(s.records), record)
	if err := s.persist(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// List returns matching records in insertion order.
func (s *JSONStore) List(filter string) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, domain.ErrStoreNotLoaded
	}
	return domain.FilterRecords(s.records, filter), nil
}

// Remove deletes the record with id. Unknown ids are a no-op.
func (s *JSONStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.ErrStoreNotLoaded
	}

	next := make([]domain.HistoryRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec.ID != id {
			next = append(next, rec)
		}
	}
	if len(next) == len(s.records) {
		return nil
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.records = next
	return nil
}

// Clear empties the history and persists the empty slot.
func (s *JSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.ErrStoreNotLoaded
	}

	if err := s.persist([]domain.HistoryRecord{}); err != nil {
		return err
	}
	s.records = nil
	return nil
}

// Path returns the backing slot file path.
func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) persist(records []domain.HistoryRecord) error {
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return filesystem.WriteFileAtomic(s.path, data, domain.FilePermissions)
}

func cloneRecords(records []domain.HistoryRecord) []domain.HistoryRecord {
	out := make([]domain.HistoryRecord, len(records), len(records)+1)
	copy(out, records)
	return out
}

var _ ports.HistoryRepository = (*JSONStore)(nil)
