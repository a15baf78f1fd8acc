package views

import (
	"context"
	"sync"
)

type fakeStore struct {
	mu sync.Mutex

	records map[string]Record
	getErr  error
	putErr  error

	gets      int
	puts      int
	conflicts int
	panics    any
}

func newFakeStore(records ...Record) *fakeStore {
	store := &fakeStore{records: map[string]Record{}}
	for _, record := range records {
		store.records[record.ID] = record
	}

	return store
}

func (s *fakeStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.panics != nil {
		panic(s.panics)
	}

	s.gets++
	if s.getErr != nil {
		return Record{}, s.getErr
	}

	record, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}

	return record, nil
}

func (s *fakeStore) Put(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.puts++
	if s.putErr != nil {
		return s.putErr
	}

	s.records[record.ID] = record
	return nil
}

func (s *fakeStore) record(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	return record, ok
}

// conditionalStore reports a conflict for the first conflicts writes.
type conditionalStore struct {
	*fakeStore
}

func (s conditionalStore) PutIf(_ context.Context, record Record, expected int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.puts++
	if s.putErr != nil {
		return s.putErr
	}

	if s.conflicts > 0 {
		s.conflicts--
		current := s.records[record.ID]
		current.Views++
		s.records[record.ID] = current
		return ErrConflict
	}

	if s.records[record.ID].Views != expected {
		return ErrConflict
	}

	s.records[record.ID] = record
	return nil
}

type incrementingStore struct {
	*fakeStore
}

func (s incrementingStore) Add(_ context.Context, id string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.puts++
	if s.putErr != nil {
		return 0, s.putErr
	}

	record, ok := s.records[id]
	if !ok {
		return 0, ErrNotFound
	}

	record.Views += amount
	s.records[id] = record
	return record.Views, nil
}
