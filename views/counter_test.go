package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterFor(t *testing.T, store Store, strategy Strategy) *Counter {
	counter, err := NewCounter(store, Config{Strategy: strategy})
	require.NoError(t, err)

	return counter
}

func TestLastWriterWins(t *testing.T) {
	ctx := context.Background()

	t.Run("increments the stored count", func(t *testing.T) {
		store := newFakeStore(NewRecord(0))
		result := counterFor(t, store, LastWriterWins).Increment(ctx)

		assert.True(t, result.Ok())
		assert.Equal(t, int64(1), result.Views)

		record, ok := store.record(CounterID)
		assert.True(t, ok)
		assert.Equal(t, NewRecord(1), record)
	})

	t.Run("sequential increments count every call", func(t *testing.T) {
		store := newFakeStore(NewRecord(0))
		counter := counterFor(t, store, LastWriterWins)

		var result Result
		for i := 0; i < 25; i++ {
			result = counter.Increment(ctx)
			require.True(t, result.Ok())
		}

		assert.Equal(t, int64(25), result.Views)
	})

	t.Run("missing record fails without writing", func(t *testing.T) {
		store := newFakeStore()
		result := counterFor(t, store, LastWriterWins).Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, RecordNotFound, result.Failure.Kind)
		assert.NotEmpty(t, result.Failure.Error())
		assert.Equal(t, 0, store.puts)

		_, ok := store.record(CounterID)
		assert.False(t, ok)
	})

	t.Run("read failure skips the write", func(t *testing.T) {
		store := newFakeStore(NewRecord(3))
		store.getErr = errors.New("connection refused")

		result := counterFor(t, store, LastWriterWins).Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, StoreReadFailure, result.Failure.Kind)
		assert.Contains(t, result.Failure.Error(), "connection refused")
		assert.Equal(t, 0, store.puts)
	})

	t.Run("write failure is reported", func(t *testing.T) {
		store := newFakeStore(NewRecord(3))
		store.putErr = errors.New("throughput exceeded")

		result := counterFor(t, store, LastWriterWins).Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, StoreWriteFailure, result.Failure.Kind)
		assert.Contains(t, result.Failure.Error(), "throughput exceeded")
		assert.Equal(t, 1, store.puts)
	})

	t.Run("panics become unexpected failures", func(t *testing.T) {
		store := newFakeStore(NewRecord(3))
		store.panics = "malformed item"

		result := counterFor(t, store, LastWriterWins).Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, UnexpectedFailure, result.Failure.Kind)
		assert.Equal(t, "malformed item", result.Failure.Error())
	})

	t.Run("malformed records are unexpected failures", func(t *testing.T) {
		store := newFakeStore()
		store.getErr = errors.Join(ErrMalformed, errors.New("views attribute is a string"))

		result := counterFor(t, store, LastWriterWins).Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, UnexpectedFailure, result.Failure.Kind)
		assert.Equal(t, 0, store.puts)
	})

	t.Run("negative counts are rejected", func(t *testing.T) {
		store := newFakeStore(NewRecord(-4))

		result := counterFor(t, store, LastWriterWins).Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, UnexpectedFailure, result.Failure.Kind)
		assert.Equal(t, 0, store.puts)
	})
}

func TestOptimistic(t *testing.T) {
	ctx := context.Background()

	t.Run("retries after a conflict", func(t *testing.T) {
		store := conditionalStore{newFakeStore(NewRecord(10))}
		store.conflicts = 1

		result := counterFor(t, store, Optimistic).Increment(ctx)

		require.True(t, result.Ok())
		assert.Equal(t, int64(12), result.Views)
		assert.Equal(t, 2, store.gets)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		store := conditionalStore{newFakeStore(NewRecord(10))}
		store.conflicts = 10

		counter, err := NewCounter(store, Config{Strategy: Optimistic, MaxAttempts: 2})
		require.NoError(t, err)

		result := counter.Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, StoreWriteFailure, result.Failure.Kind)
		assert.ErrorIs(t, result.Failure, ErrConflict)
		assert.Equal(t, 2, store.gets)
	})

	t.Run("missing record is not retried", func(t *testing.T) {
		store := conditionalStore{newFakeStore()}

		result := counterFor(t, store, Optimistic).Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, RecordNotFound, result.Failure.Kind)
		assert.Equal(t, 1, store.gets)
		assert.Equal(t, 0, store.puts)
	})

	t.Run("requires a conditional store", func(t *testing.T) {
		_, err := NewCounter(newFakeStore(), Config{Strategy: Optimistic})
		assert.Error(t, err)
	})
}

func TestAtomic(t *testing.T) {
	ctx := context.Background()

	t.Run("adds in the store", func(t *testing.T) {
		store := incrementingStore{newFakeStore(NewRecord(41))}

		result := counterFor(t, store, Atomic).Increment(ctx)

		require.True(t, result.Ok())
		assert.Equal(t, int64(42), result.Views)
		assert.Equal(t, 0, store.gets)
	})

	t.Run("missing record", func(t *testing.T) {
		store := incrementingStore{newFakeStore()}

		result := counterFor(t, store, Atomic).Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, RecordNotFound, result.Failure.Kind)
	})

	t.Run("store failure", func(t *testing.T) {
		store := incrementingStore{newFakeStore(NewRecord(1))}
		store.putErr = errors.New("access denied")

		result := counterFor(t, store, Atomic).Increment(ctx)

		require.False(t, result.Ok())
		assert.Equal(t, StoreWriteFailure, result.Failure.Kind)
	})

	t.Run("requires an incrementer", func(t *testing.T) {
		_, err := NewCounter(newFakeStore(), Config{Strategy: Atomic})
		assert.Error(t, err)
	})
}

func TestParseStrategy(t *testing.T) {
	strategy, err := ParseStrategy("")
	assert.NoError(t, err)
	assert.Equal(t, LastWriterWins, strategy)

	strategy, err = ParseStrategy("atomic")
	assert.NoError(t, err)
	assert.Equal(t, Atomic, strategy)

	_, err = ParseStrategy("eventual")
	assert.Error(t, err)
}
