package welambda

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-views-go/views"
)

// Incrementer is the part of views.Counter the handlers need.
type Incrementer interface {
	Increment(ctx context.Context) views.Result
}

// Handler receives any event; its contents do not affect the increment.
type Handler = func(ctx context.Context, event json.RawMessage) (views.Response, error)

type GatewayHandler = func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

type HandlerOption func(options *handlerOptions)

type handlerOptions struct {
	log *zerolog.Logger
}

func Logger(log *zerolog.Logger) HandlerOption {
	return func(options *handlerOptions) {
		options.log = log
	}
}

func NewHandler(counter Incrementer, options ...HandlerOption) Handler {
	opts := configure(options)

	return func(ctx context.Context, _ json.RawMessage) (views.Response, error) {
		return increment(ctx, opts.log, counter), nil
	}
}

// NewGatewayHandler answers API Gateway HTTP events with the response body
// encoded as JSON text.
func NewGatewayHandler(counter Incrementer, options ...HandlerOption) GatewayHandler {
	opts := configure(options)

	return func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logger := opts.log.With().Str("request_id", event.RequestContext.RequestID).Logger()
		response := increment(ctx, &logger, counter)

		body, err := response.EncodedBody()
		if err != nil {
			logger.Error().Err(err).Msg("failed to encode response body")
			response = views.Response{StatusCode: 500}
			body = views.EncodeError(err.Error())
		}

		return events.APIGatewayV2HTTPResponse{
			StatusCode: response.StatusCode,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       body,
		}, nil
	}
}

func configure(options []HandlerOption) handlerOptions {
	opts := handlerOptions{}
	for _, option := range options {
		option(&opts)
	}
	if opts.log == nil {
		opts.log = &log.Logger
	}

	return opts
}

func increment(ctx context.Context, logger *zerolog.Logger, counter Incrementer) views.Response {
	l := logger.With().Logger()
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		l = l.With().Str("aws_request_id", lc.AwsRequestID).Logger()
	}

	return views.Respond(counter.Increment(l.WithContext(ctx)))
}
