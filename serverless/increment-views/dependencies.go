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
