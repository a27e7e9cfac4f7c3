package store

import (
	"context"
	"sync"
)

// InMemoryStore is a ProjectStore backed by a map. It is used in tests and
// examples, and as the seed target for `showmcp serve --fixtures`.
type InMemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*ProjectRecord
}

var _ ProjectStore = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		projects: make(map[string]*ProjectRecord),
	}
}

// Put inserts or replaces a project record.
func (s *InMemoryStore) Put(record *ProjectRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[record.ID] = record
}

// Delete removes a project record.
func (s *InMemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
}

// FetchByID implements ProjectStore.
func (s *InMemoryStore) FetchByID(_ context.Context, id string) (*ProjectRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// FetchSummary implements ProjectStore.
func (s *InMemoryStore) FetchSummary(_ context.Context, id string) (*SummaryProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &SummaryProjection{
		Title:         record.Title,
		BriefOverview: record.BriefOverview,
		Description:   record.Description,
		Tags:          record.Tags,
	}, nil
}

// IDs returns all project ids currently in the store.
func (s *InMemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	return ids
}

// Close implements ProjectStore.
func (s *InMemoryStore) Close() error {
	return nil
}
