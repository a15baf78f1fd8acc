//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/weegigs/wee-views-go/support"
	"github.com/weegigs/wee-views-go/views"
)

func live(ctx context.Context, settings support.Settings) (*views.Counter, func(), error) {
	panic(wire.Build(Live))
}

func local(ctx context.Context, settings support.Settings) (*views.Counter, func(), error) {
	panic(wire.Build(Local))
}

func dynamoTest(ctx context.Context, settings support.Settings) (*views.Counter, func(), error) {
	panic(wire.Build(Test))
}

func redis(ctx context.Context, settings support.Settings) (*views.Counter, func(), error) {
	panic(wire.Build(Redis))
}

func datastore(ctx context.Context, settings support.Settings) (*views.Counter, func(), error) {
	panic(wire.Build(Datastore))
}

func memory(ctx context.Context, settings support.Settings) (*views.Counter, func(), error) {
	panic(wire.Build(Memory))
}
