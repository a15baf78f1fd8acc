package views

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "views-service"

type Strategy string

const (
	LastWriterWins Strategy = "last-writer-wins"
	Optimistic     Strategy = "optimistic"
	Atomic         Strategy = "atomic"
)

func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case "", LastWriterWins:
		return LastWriterWins, nil
	case Optimistic:
		return Optimistic, nil
	case Atomic:
		return Atomic, nil
	default:
		return "", errors.Errorf("unknown increment strategy %q", value)
	}
}

type Config struct {
	Strategy Strategy
	// MaxAttempts bounds the read/write cycles of the optimistic strategy.
	MaxAttempts uint
}

func DefaultConfig() Config {
	return Config{Strategy: LastWriterWins, MaxAttempts: 3}
}

// Counter increments the visit count held by a Store. It keeps no state
// between calls beyond the store handle, so one Counter serves every
// invocation of a process.
type Counter struct {
	store  Store
	config Config
}

func NewCounter(store Store, config Config) (*Counter, error) {
	if store == nil {
		return nil, errors.New("counter store is required")
	}

	if config.Strategy == "" {
		config.Strategy = LastWriterWins
	}

	if config.MaxAttempts == 0 {
		config.MaxAttempts = DefaultConfig().MaxAttempts
	}

	switch config.Strategy {
	case LastWriterWins:
	case Optimistic:
		if _, ok := store.(ConditionalStore); !ok {
			return nil, errors.Errorf("store %T does not support conditional writes", store)
		}
	case Atomic:
		if _, ok := store.(Incrementer); !ok {
			return nil, errors.Errorf("store %T does not support atomic increments", store)
		}
	default:
		return nil, errors.Errorf("unknown increment strategy %q", config.Strategy)
	}

	return &Counter{store: store, config: config}, nil
}

func (c *Counter) Strategy() Strategy {
	return c.config.Strategy
}

// Increment adds one to the stored count. Every failure, including a panic in
// the store, is returned in the Result.
func (c *Counter) Increment(ctx context.Context) (result Result) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "increment views")
	defer span.End()

	defer func() {
		if value := recover(); value != nil {
			result = recovered(value)
		}
		report(ctx, span, c.config.Strategy, result)
	}()

	switch c.config.Strategy {
	case Optimistic:
		return c.optimistic(ctx)
	case Atomic:
		return c.atomic(ctx)
	default:
		return c.lastWriterWins(ctx)
	}
}

func (c *Counter) lastWriterWins(ctx context.Context) Result {
	record, failure := c.read(ctx)
	if failure != nil {
		return Result{Failure: failure}
	}

	views := record.Views + 1
	if err := c.write(ctx, func(ctx context.Context) error {
		return c.store.Put(ctx, NewRecord(views))
	}); err != nil {
		return fail(StoreWriteFailure, errors.Wrap(err, "failed to write views"))
	}

	return Result{Views: views}
}

func (c *Counter) optimistic(ctx context.Context) Result {
	store := c.store.(ConditionalStore)

	var views int64
	err := retry.Do(
		func() error {
			record, failure := c.read(ctx)
			if failure != nil {
				return failure
			}

			next := record.Views + 1
			if err := c.write(ctx, func(ctx context.Context) error {
				return store.PutIf(ctx, NewRecord(next), record.Views)
			}); err != nil {
				return err
			}

			views = next
			return nil
		},
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, ErrConflict)
		}),
		retry.Attempts(c.config.MaxAttempts),
		retry.Delay(10*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)

	if err != nil {
		var failure *Failure
		if errors.As(err, &failure) {
			return Result{Failure: failure}
		}

		return fail(StoreWriteFailure, errors.Wrap(err, "failed to write views"))
	}

	return Result{Views: views}
}

func (c *Counter) atomic(ctx context.Context) Result {
	store := c.store.(Incrementer)

	var views int64
	err := c.write(ctx, func(ctx context.Context) error {
		var err error
		views, err = store.Add(ctx, CounterID, 1)
		return err
	})

	if errors.Is(err, ErrNotFound) {
		return fail(RecordNotFound, notFound())
	}

	if errors.Is(err, ErrMalformed) {
		return fail(UnexpectedFailure, err)
	}

	if err != nil {
		return fail(StoreWriteFailure, errors.Wrap(err, "failed to add views"))
	}

	return Result{Views: views}
}

func (c *Counter) read(ctx context.Context) (Record, *Failure) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "read views")
	defer span.End()

	record, err := c.store.Get(ctx, CounterID)
	if errors.Is(err, ErrNotFound) {
		return Record{}, &Failure{Kind: RecordNotFound, Err: notFound()}
	}

	if errors.Is(err, ErrMalformed) {
		return Record{}, &Failure{Kind: UnexpectedFailure, Err: err}
	}

	if err != nil {
		span.RecordError(err)
		return Record{}, &Failure{Kind: StoreReadFailure, Err: errors.Wrap(err, "failed to read views")}
	}

	if record.Views < 0 {
		return Record{}, &Failure{Kind: UnexpectedFailure, Err: errors.Errorf("views value %d is negative", record.Views)}
	}

	return record, nil
}

func (c *Counter) write(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "write views")
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
	}

	return err
}

func notFound() error {
	return errors.Errorf("record with id '%s' not found", CounterID)
}

func report(ctx context.Context, span trace.Span, strategy Strategy, result Result) {
	logger := zerolog.Ctx(ctx)

	if result.Ok() {
		span.SetAttributes(attribute.Int64("views", result.Views))
		logger.Info().Int64("views", result.Views).Str("strategy", string(strategy)).Msg("views incremented")
		return
	}

	span.SetStatus(codes.Error, result.Failure.Kind.String())
	logger.Error().
		Err(result.Failure.Err).
		Str("kind", result.Failure.Kind.String()).
		Str("strategy", string(strategy)).
		Msg("failed to increment views")
}
