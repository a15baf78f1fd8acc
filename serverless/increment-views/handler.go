package main

import (
	"github.com/google/wire"

	"github.com/weegigs/wee-views-go/stores/ds"
	"github.com/weegigs/wee-views-go/support"
	"github.com/weegigs/wee-views-go/views"
)

var Live = wire.NewSet(support.CounterConfig, views.NewCounter, ds.Live)
