package ds

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

// DynamoTestStore starts DynamoDB Local in a container and provisions a
// uniquely named views table in it.
func DynamoTestStore(ctx context.Context) (*DynamoViewStore, func(), error) {
	db, err := testcontainers.GenericContainer(
		ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "amazon/dynamodb-local",
				ExposedPorts: []string{"8000/tcp"},
				WaitingFor:   wait.ForListeningPort("8000"),
			},
			Started: true,
		},
	)
	if err != nil {
		return nil, nil, err
	}

	teardown := func() {
		if err := db.Terminate(ctx); err != nil {
			panic(err)
		}
	}

	host, err := db.Host(ctx)
	if err != nil {
		teardown()
		return nil, nil, err
	}

	port, err := db.MappedPort(ctx, "8000")
	if err != nil {
		teardown()
		return nil, nil, err
	}

	cfg, err := staticConfig(ctx, "ap-southeast-2")
	if err != nil {
		teardown()
		return nil, nil, err
	}

	client := endpointClient(cfg, fmt.Sprintf("http://%s:%s", host, port.Port()))
	table := ViewsTableName("test-views-" + strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()))

	store, err := Provision(ctx, client, table)
	if err != nil {
		teardown()
		return nil, nil, err
	}

	return store, teardown, nil
}
