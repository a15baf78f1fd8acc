package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-views-go/connectors/welambda"
	"github.com/weegigs/wee-views-go/support"
)

func main() {
	_ = godotenv.Load()

	settings, err := support.LoadSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	logger, err := support.Logger(settings)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	ctx := context.Background()
	stopTracing, err := support.Tracing(ctx, "increment-views", settings)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure tracing")
	}
	defer stopTracing()

	counter, cleanup, err := live(ctx, settings)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure counter")
	}
	defer cleanup()

	switch settings.ResponseFormat {
	case support.GatewayResponse:
		lambda.Start(welambda.NewGatewayHandler(counter, welambda.Logger(logger)))
	default:
		lambda.Start(welambda.NewHandler(counter, welambda.Logger(logger)))
	}
}
