package support

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/weegigs/wee-views-go/views"
)

type Store string

const (
	DynamoStore    Store = "dynamodb"
	LocalStore     Store = "local"
	RedisStore     Store = "redis"
	DatastoreStore Store = "datastore"
	MemoryStore    Store = "memory"
)

type ResponseFormat string

const (
	RawResponse     ResponseFormat = "raw"
	GatewayResponse ResponseFormat = "gateway"
)

// Settings holds the environment driven options shared by the entry points.
type Settings struct {
	Store          Store
	Counter        views.Config
	ResponseFormat ResponseFormat
	TraceExporter  string
	LogLevel       string
	LogFormat      string
	Port           string
}

func LoadSettings() (Settings, error) {
	strategy, err := views.ParseStrategy(os.Getenv("VIEWS_STRATEGY"))
	if err != nil {
		return Settings{}, err
	}

	counter := views.DefaultConfig()
	counter.Strategy = strategy

	if value := os.Getenv("VIEWS_MAX_ATTEMPTS"); value != "" {
		attempts, err := strconv.ParseUint(value, 10, 32)
		if err != nil || attempts == 0 {
			return Settings{}, errors.Errorf("VIEWS_MAX_ATTEMPTS must be a positive integer, got %q", value)
		}
		counter.MaxAttempts = uint(attempts)
	}

	store := Store(env("VIEWS_STORE", string(LocalStore)))
	switch store {
	case DynamoStore, LocalStore, RedisStore, DatastoreStore, MemoryStore:
	default:
		return Settings{}, errors.Errorf("unknown VIEWS_STORE %q", store)
	}

	format := ResponseFormat(env("VIEWS_RESPONSE_FORMAT", string(RawResponse)))
	switch format {
	case RawResponse, GatewayResponse:
	default:
		return Settings{}, errors.Errorf("unknown VIEWS_RESPONSE_FORMAT %q", format)
	}

	return Settings{
		Store:          store,
		Counter:        counter,
		ResponseFormat: format,
		TraceExporter:  env("VIEWS_TRACE_EXPORTER", "none"),
		LogLevel:       env("LOG_LEVEL", "info"),
		LogFormat:      env("LOG_FORMAT", "json"),
		Port:           env("PORT", "9080"),
	}, nil
}

func CounterConfig(settings Settings) views.Config {
	return settings.Counter
}

func env(name string, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	return fallback
}
