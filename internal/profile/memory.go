package profile

import (
	"context"
	"sync"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// MemoryStore is the in-process Store backend. User saves live in a guarded
// map; built-in profiles are overlaid at read time so they are always
// enumerable and never lost to a delete.
type MemoryStore struct {
	mu    sync.RWMutex
	saved map[string]model.WeightConfig
}

// NewMemory returns an empty in-memory profile store. The four built-in
// profiles are immediately available.
func NewMemory() *MemoryStore {
	return &MemoryStore{saved: make(map[string]model.WeightConfig)}
}

func (s *MemoryStore) Save(_ context.Context, name string, w model.WeightConfig) error {
	name, normalized, err := prepareForSave(name, w)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[name] = normalized
	return nil
}

func (s *MemoryStore) Load(_ context.Context, name string) (*model.WeightConfig, error) {
	s.mu.RLock()
	w, ok := s.saved[name]
	s.mu.RUnlock()
	if ok {
		return &w, nil
	}

	if builtin, ok := BuiltinProfiles()[name]; ok {
		return &builtin, nil
	}
	return nil, nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	saved := make([]string, 0, len(s.saved))
	for name := range s.saved {
		saved = append(saved, name)
	}
	s.mu.RUnlock()

	return mergeNames(saved), nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.saved[name]; !ok {
		return false, nil
	}
	delete(s.saved, name)
	return true, nil
}

func (s *MemoryStore) Close() error { return nil }
