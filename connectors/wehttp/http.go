package wehttp

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/weegigs/wee-views-go/views"
)

type Incrementer interface {
	Increment(ctx context.Context) views.Result
}

type HandlerOption func(service *httpService)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(service *httpService) {
		service.log = log
	}
}

func NewHandler(counter Incrementer, options ...HandlerOption) http.Handler {
	service := &httpService{counter: counter}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	r := chi.NewRouter()

	r.Use(service.withLogging)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Method("GET", "/healthz", healthz())
	r.Method("GET", "/views", service.increment())
	r.Method("POST", "/views", service.increment())

	return otelhttp.NewHandler(r, "wee-views-http")
}

type httpService struct {
	log     *zerolog.Logger
	counter Incrementer
}

func (service *httpService) increment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := views.Respond(service.counter.Increment(service.log.WithContext(r.Context())))

		if message, ok := response.Body.(string); ok {
			// failure bodies are already encoded
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(response.StatusCode)
			_, _ = w.Write([]byte(message))
			return
		}

		render.Status(r, response.StatusCode)
		render.JSON(w, r, response.Body)
	}
}

func healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

func (service *httpService) withLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)

		service.log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}
