package storage

import (
	"context"
	"sort"
	"sync"

	"synaptogen/internal/model"
)

type MemoryStore struct {
	mu           sync.RWMutex
	initialized  bool
	configs      map[string]model.RunConfig
	summaries    map[string]model.RunSummary
	connectivity map[string][]model.ConnectivityRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.configs = make(map[string]model.RunConfig)
	s.summaries = make(map[string]model.RunSummary)
	s.connectivity = make(map[string][]model.ConnectivityRecord)
	return nil
}

func (s *MemoryStore) SaveRunConfig(_ context.Context, cfg model.RunConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs[cfg.RunID] = cfg
	return nil
}

func (s *MemoryStore) GetRunConfig(_ context.Context, runID string) (model.RunConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[runID]
	return cfg, ok, nil
}

func (s *MemoryStore) SaveRunSummary(_ context.Context, summary model.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[summary.RunID] = summary
	return nil
}

func (s *MemoryStore) GetRunSummary(_ context.Context, runID string) (model.RunSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.summaries[runID]
	return summary, ok, nil
}

func (s *MemoryStore) ListRunIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.configs))
	for id := range s.configs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) SaveConnectivity(_ context.Context, runID string, records []model.ConnectivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := append([]model.ConnectivityRecord(nil), records...)
	s.connectivity[runID] = copied
	return nil
}

func (s *MemoryStore) GetConnectivity(_ context.Context, runID string) ([]model.ConnectivityRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.connectivity[runID]
	if !ok {
		return nil, false, nil
	}
	copied := append([]model.ConnectivityRecord(nil), records...)
	return copied, true, nil
}
