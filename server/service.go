package main

import (
	"context"

	"github.com/google/wire"
	"github.com/pkg/errors"

	"github.com/weegigs/wee-views-go/stores/ds"
	"github.com/weegigs/wee-views-go/stores/gds"
	"github.com/weegigs/wee-views-go/stores/mem"
	"github.com/weegigs/wee-views-go/stores/rds"
	"github.com/weegigs/wee-views-go/support"
	"github.com/weegigs/wee-views-go/views"
)

var counterSet = wire.NewSet(
	support.CounterConfig,
	views.NewCounter,
)

var Live = wire.NewSet(counterSet, ds.Live)

var Local = wire.NewSet(counterSet, ds.Local)

var Test = wire.NewSet(counterSet, ds.Test)

var Redis = wire.NewSet(counterSet, rds.Live)

var Datastore = wire.NewSet(counterSet, gds.Live)

var Memory = wire.NewSet(
	counterSet,
	MemoryStore,
	wire.Bind(new(views.Store), new(*mem.ViewStore)),
)

// MemoryStore returns a process local store seeded at zero.
func MemoryStore(ctx context.Context) (*mem.ViewStore, error) {
	store := mem.NewViewStore()
	if err := store.Seed(ctx, views.NewRecord(0)); err != nil {
		return nil, err
	}

	return store, nil
}

func NewCounter(ctx context.Context, settings support.Settings) (*views.Counter, func(), error) {
	switch settings.Store {
	case support.DynamoStore:
		return live(ctx, settings)
	case support.LocalStore:
		return local(ctx, settings)
	case support.RedisStore:
		return redis(ctx, settings)
	case support.DatastoreStore:
		return datastore(ctx, settings)
	case support.MemoryStore:
		return memory(ctx, settings)
	default:
		return nil, nil, errors.Errorf("unsupported store %q", settings.Store)
	}
}
