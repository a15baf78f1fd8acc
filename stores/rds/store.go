package rds

import (
	"context"
	"errors"
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/weegigs/wee-views-go/views"
)

var (
	_ views.ConditionalStore = (*RedisViewStore)(nil)
	_ views.Incrementer      = (*RedisViewStore)(nil)
)

const viewsField = "views"

var putIfScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'views')
if current ~= ARGV[1] then
  return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[3], 'views', ARGV[2])
return 1
`)

var addScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return false
end
return redis.call('HINCRBY', KEYS[1], 'views', ARGV[1])
`)

// KeyPrefix namespaces the hash keys holding counter records.
type KeyPrefix string

// RedisViewStore keeps each record in a hash with id and views fields.
type RedisViewStore struct {
	client redis.UniversalClient
	prefix string
}

func NewViewStore(client redis.UniversalClient, prefix KeyPrefix) *RedisViewStore {
	return &RedisViewStore{client: client, prefix: string(prefix)}
}

func (s *RedisViewStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisViewStore) Get(ctx context.Context, id string) (views.Record, error) {
	fields, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return views.Record{}, err
	}

	if len(fields) == 0 {
		return views.Record{}, views.ErrNotFound
	}

	value, ok := fields[viewsField]
	if !ok {
		return views.Record{}, pkgerrors.Wrapf(views.ErrMalformed, "record %s has no views field", id)
	}

	count, err := views.DecodeViews(value)
	if err != nil {
		return views.Record{}, err
	}

	return views.Record{ID: id, Views: count}, nil
}

func (s *RedisViewStore) Put(ctx context.Context, record views.Record) error {
	return s.client.HSet(ctx, s.key(record.ID), "id", record.ID, viewsField, record.Views).Err()
}

func (s *RedisViewStore) PutIf(ctx context.Context, record views.Record, expected int64) error {
	written, err := putIfScript.Run(
		ctx, s.client, []string{s.key(record.ID)},
		views.EncodeViews(expected), views.EncodeViews(record.Views), record.ID,
	).Int()
	if err != nil {
		return err
	}

	if written == 0 {
		return views.ErrConflict
	}

	return nil
}

func (s *RedisViewStore) Add(ctx context.Context, id string, amount int64) (int64, error) {
	count, err := addScript.Run(ctx, s.client, []string{s.key(id)}, strconv.FormatInt(amount, 10)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, views.ErrNotFound
	}

	return count, err
}

// Seed writes record only when no record exists for its id.
func (s *RedisViewStore) Seed(ctx context.Context, record views.Record) error {
	key := s.key(record.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, viewsField, record.Views)
		pipe.HSetNX(ctx, key, "id", record.ID)
		return nil
	})

	return err
}
