package mem

import (
	"context"
	"sync"

	"github.com/weegigs/wee-views-go/views"
)

var (
	_ views.ConditionalStore = (*ViewStore)(nil)
	_ views.Incrementer      = (*ViewStore)(nil)
)

// ViewStore keeps records in process memory. It is safe for concurrent use.
type ViewStore struct {
	mu      sync.Mutex
	records map[string]int64
}

func NewViewStore() *ViewStore {
	return &ViewStore{records: map[string]int64{}}
}

// Seed stores record unless a record with the same id already exists.
func (s *ViewStore) Seed(_ context.Context, record views.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.ID]; !ok {
		s.records[record.ID] = record.Views
	}

	return nil
}

func (s *ViewStore) Get(_ context.Context, id string) (views.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, ok := s.records[id]
	if !ok {
		return views.Record{}, views.ErrNotFound
	}

	return views.Record{ID: id, Views: count}, nil
}

func (s *ViewStore) Put(_ context.Context, record views.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.ID] = record.Views
	return nil
}

func (s *ViewStore) PutIf(_ context.Context, record views.Record, expected int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count, ok := s.records[record.ID]; !ok || count != expected {
		return views.ErrConflict
	}

	s.records[record.ID] = record.Views
	return nil
}

func (s *ViewStore) Add(_ context.Context, id string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, ok := s.records[id]
	if !ok {
		return 0, views.ErrNotFound
	}

	count += amount
	s.records[id] = count
	return count, nil
}
