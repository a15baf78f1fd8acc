package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-views-go/connectors/wehttp"
	"github.com/weegigs/wee-views-go/support"
)

func run() error {
	_ = godotenv.Load()

	settings, err := support.LoadSettings()
	if err != nil {
		return err
	}

	logger, err := support.Logger(settings)
	if err != nil {
		return err
	}

	ctx := context.Background()
	stopTracing, err := support.Tracing(ctx, "views-server", settings)
	if err != nil {
		return err
	}
	defer stopTracing()

	counter, cleanup, err := NewCounter(ctx, settings)
	if err != nil {
		return err
	}
	defer cleanup()

	handler := wehttp.NewHandler(counter, wehttp.Logger(logger))

	logger.Info().
		Str("store", string(settings.Store)).
		Str("strategy", string(counter.Strategy())).
		Msgf("listening on :%s", settings.Port)
	return http.ListenAndServe(":"+settings.Port, handler)
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
