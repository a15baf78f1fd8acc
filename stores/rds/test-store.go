package rds

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func RedisTestStore(ctx context.Context) (*RedisViewStore, func(), error) {
	db, err := testcontainers.GenericContainer(
		ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForListeningPort("6379"),
			},
			Started: true,
		},
	)
	if err != nil {
		return nil, nil, err
	}

	terminate := func() {
		if err := db.Terminate(ctx); err != nil {
			panic(err)
		}
	}

	host, err := db.Host(ctx)
	if err != nil {
		terminate()
		return nil, nil, err
	}

	port, err := db.MappedPort(ctx, "6379")
	if err != nil {
		terminate()
		return nil, nil, err
	}

	client, closeClient, err := Client(Address(fmt.Sprintf("%s:%s", host, port.Port())))
	if err != nil {
		terminate()
		return nil, nil, err
	}

	store, err := ProvisionedStore(ctx, client, KeyPrefix("test-views:"))
	if err != nil {
		closeClient()
		terminate()
		return nil, nil, err
	}

	return store, func() {
		closeClient()
		terminate()
	}, nil
}
