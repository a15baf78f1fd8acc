package rds

import (
	"context"
	"os"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	"github.com/weegigs/wee-views-go/views"
)

var Live = wire.NewSet(
	LiveAddress,
	Client,
	DefaultKeyPrefix,
	ProvisionedStore,
	wire.Bind(new(views.Store), new(*RedisViewStore)),
)

type Address string

func LiveAddress() Address {
	address := os.Getenv("REDIS_ADDR")
	if len(address) == 0 {
		return Address("localhost:6379")
	}

	return Address(address)
}

func DefaultKeyPrefix() KeyPrefix {
	return KeyPrefix("wee-views:")
}

func Client(address Address) (redis.UniversalClient, func(), error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs: []string{string(address)},
	})

	return client, func() { _ = client.Close() }, nil
}

// ProvisionedStore seeds the counter record at zero when it is missing.
func ProvisionedStore(ctx context.Context, client redis.UniversalClient, prefix KeyPrefix) (*RedisViewStore, error) {
	store := NewViewStore(client, prefix)
	if err := store.Seed(ctx, views.NewRecord(0)); err != nil {
		return nil, err
	}

	return store, nil
}
