package welambda

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weegigs/wee-views-go/stores/mem"
	"github.com/weegigs/wee-views-go/views"
)

type failingStore struct {
	getErr error
	putErr error
	puts   int
}

func (s *failingStore) Get(context.Context, string) (views.Record, error) {
	if s.getErr != nil {
		return views.Record{}, s.getErr
	}

	return views.NewRecord(3), nil
}

func (s *failingStore) Put(context.Context, views.Record) error {
	s.puts++
	return s.putErr
}

func seededCounter(t *testing.T) (*views.Counter, *mem.ViewStore) {
	ctx := context.Background()
	store := mem.NewViewStore()
	require.NoError(t, store.Seed(ctx, views.NewRecord(0)))

	counter, err := views.NewCounter(store, views.DefaultConfig())
	require.NoError(t, err)

	return counter, store
}

func errorMessage(t *testing.T, response views.Response) string {
	body, ok := response.Body.(string)
	require.True(t, ok, "failure body is encoded text")

	var decoded views.ErrorBody
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))

	return decoded.ErrorMessage
}

func TestHandler(t *testing.T) {
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "test-request"})
	event := json.RawMessage(`{}`)

	t.Run("happy path", func(t *testing.T) {
		counter, store := seededCounter(t)

		response, err := NewHandler(counter)(ctx, event)
		require.NoError(t, err)

		assert.Equal(t, 200, response.StatusCode)
		assert.Equal(t, views.ViewsBody{Views: 1}, response.Body)

		record, err := store.Get(ctx, views.CounterID)
		require.NoError(t, err)
		assert.Equal(t, views.NewRecord(1), record)
	})

	t.Run("sequential increments", func(t *testing.T) {
		counter, _ := seededCounter(t)
		handler := NewHandler(counter)

		var response views.Response
		for i := 0; i < 7; i++ {
			var err error
			response, err = handler(ctx, event)
			require.NoError(t, err)
		}

		assert.Equal(t, views.ViewsBody{Views: 7}, response.Body)
	})

	t.Run("missing record", func(t *testing.T) {
		store := mem.NewViewStore()
		counter, err := views.NewCounter(store, views.DefaultConfig())
		require.NoError(t, err)

		response, err := NewHandler(counter)(ctx, event)
		require.NoError(t, err)

		assert.Equal(t, 500, response.StatusCode)
		assert.NotEmpty(t, errorMessage(t, response))

		_, err = store.Get(ctx, views.CounterID)
		assert.ErrorIs(t, err, views.ErrNotFound)
	})

	t.Run("read failure", func(t *testing.T) {
		store := &failingStore{getErr: errors.New("unable to reach dynamodb")}
		counter, err := views.NewCounter(store, views.DefaultConfig())
		require.NoError(t, err)

		response, err := NewHandler(counter)(ctx, event)
		require.NoError(t, err)

		assert.Equal(t, 500, response.StatusCode)
		assert.Contains(t, errorMessage(t, response), "unable to reach dynamodb")
		assert.Zero(t, store.puts)
	})

	t.Run("write failure", func(t *testing.T) {
		store := &failingStore{putErr: errors.New("provisioned throughput exceeded")}
		counter, err := views.NewCounter(store, views.DefaultConfig())
		require.NoError(t, err)

		response, err := NewHandler(counter)(ctx, event)
		require.NoError(t, err)

		assert.Equal(t, 500, response.StatusCode)
		assert.Contains(t, errorMessage(t, response), "provisioned throughput exceeded")
	})
}

func TestGatewayHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		counter, _ := seededCounter(t)

		response, err := NewGatewayHandler(counter)(ctx, events.APIGatewayV2HTTPRequest{})
		require.NoError(t, err)

		assert.Equal(t, 200, response.StatusCode)
		assert.JSONEq(t, `{"views":1}`, response.Body)
		assert.Equal(t, "application/json", response.Headers["Content-Type"])
	})

	t.Run("failure", func(t *testing.T) {
		counter, err := views.NewCounter(mem.NewViewStore(), views.DefaultConfig())
		require.NoError(t, err)

		response, err := NewGatewayHandler(counter)(ctx, events.APIGatewayV2HTTPRequest{})
		require.NoError(t, err)

		assert.Equal(t, 500, response.StatusCode)
		assert.JSONEq(t, `{"errorMessage":"record with id '0' not found"}`, response.Body)
	})
}
