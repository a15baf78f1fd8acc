package views

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/jaswdr/faker"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

// StoreValidationSuite checks the behaviour every Store implementation shares.
// It writes records under fresh ids and leaves the counter record alone.
func NewStoreValidationSuite(ctx context.Context, store Store) *StoreValidationSuite {
	return &StoreValidationSuite{
		store: store,
		ctx:   ctx,
		faker: faker.New(),
	}
}

type StoreValidationSuite struct {
	store Store
	ctx   context.Context
	faker faker.Faker
}

func (s *StoreValidationSuite) Run(t *testing.T) {
	t.Run("reports a missing record", s.MissingRecord)
	t.Run("reads a written record", s.ReadsWrittenRecord)
	t.Run("put overwrites a record", s.PutOverwrites)

	if _, ok := s.store.(ConditionalStore); ok {
		t.Run("conditional put checks the stored count", s.ConditionalPut)
	}

	if _, ok := s.store.(Incrementer); ok {
		t.Run("adds to the stored count", s.Add)
		t.Run("does not add to a missing record", s.AddMissing)
	}
}

func (s *StoreValidationSuite) MakeTestId() string {
	return "go-test-" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

func (s *StoreValidationSuite) MakeTestRecord() Record {
	return Record{ID: s.MakeTestId(), Views: int64(s.faker.IntBetween(0, 1000000))}
}

func (s *StoreValidationSuite) MissingRecord(t *testing.T) {
	_, err := s.store.Get(s.ctx, s.MakeTestId())
	assert.ErrorIs(t, err, ErrNotFound)
}

func (s *StoreValidationSuite) ReadsWrittenRecord(t *testing.T) {
	record := s.MakeTestRecord()
	require.NoError(t, s.store.Put(s.ctx, record))

	loaded, err := s.store.Get(s.ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, loaded)
}

func (s *StoreValidationSuite) PutOverwrites(t *testing.T) {
	record := s.MakeTestRecord()
	require.NoError(t, s.store.Put(s.ctx, record))

	record.Views++
	require.NoError(t, s.store.Put(s.ctx, record))

	loaded, err := s.store.Get(s.ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Views, loaded.Views)
}

func (s *StoreValidationSuite) ConditionalPut(t *testing.T) {
	store := s.store.(ConditionalStore)

	record := s.MakeTestRecord()
	require.NoError(t, store.Put(s.ctx, record))

	stale := Record{ID: record.ID, Views: record.Views + 2}
	assert.ErrorIs(t, store.PutIf(s.ctx, stale, record.Views+1), ErrConflict)

	next := Record{ID: record.ID, Views: record.Views + 1}
	require.NoError(t, store.PutIf(s.ctx, next, record.Views))

	loaded, err := store.Get(s.ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, next, loaded)
}

func (s *StoreValidationSuite) Add(t *testing.T) {
	store := s.store.(Incrementer)

	record := s.MakeTestRecord()
	require.NoError(t, store.Put(s.ctx, record))

	count, err := store.Add(s.ctx, record.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, record.Views+1, count)
}

func (s *StoreValidationSuite) AddMissing(t *testing.T) {
	store := s.store.(Incrementer)
	id := s.MakeTestId()

	_, err := store.Add(s.ctx, id, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(s.ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
