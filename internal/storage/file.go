package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/eventscout/eventscout/internal/logger"
)

// FileStore keeps seen ids in a JSON array on disk. Ids are held in
// memory during a run and flushed by Save.
type FileStore struct {
	mu   sync.Mutex
	path string
	ids  map[string]struct{}
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		ids:  make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("seen file not found, starting empty", "path", path)
			return s, nil
		}
		return nil, fmt.Errorf("read seen file: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parse seen file %s: %w", path, err)
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	logger.Debug("loaded seen store", "path", path, "ids", len(s.ids))
	return s, nil
}

func (s *FileStore) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *FileStore) Add(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
	return nil
}

// Save writes the full id set as a sorted JSON array, so the file is
// diff-friendly and deterministic for the same set.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("encode seen ids: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create seen dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write seen file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return s.Save()
}
