package gds

import (
	"context"
	"errors"
	"os"

	"cloud.google.com/go/datastore"
	"github.com/google/wire"

	"github.com/weegigs/wee-views-go/views"
)

var Live = wire.NewSet(
	LiveProjectID,
	Client,
	DefaultKind,
	ProvisionedStore,
	wire.Bind(new(views.Store), new(*DatastoreViewStore)),
)

type ProjectID string

func LiveProjectID() (ProjectID, error) {
	project := os.Getenv("DATASTORE_PROJECT_ID")
	if len(project) == 0 {
		return "", errors.New("DATASTORE_PROJECT_ID is not set")
	}

	return ProjectID(project), nil
}

func DefaultKind() Kind {
	return Kind("Counter")
}

func Client(ctx context.Context, project ProjectID) (*datastore.Client, func(), error) {
	client, err := datastore.NewClient(ctx, string(project))
	if err != nil {
		return nil, nil, err
	}

	return client, func() { _ = client.Close() }, nil
}

// ProvisionedStore seeds the counter record at zero when it is missing.
func ProvisionedStore(ctx context.Context, client *datastore.Client, kind Kind) (*DatastoreViewStore, error) {
	store := NewViewStore(client, kind)
	if err := store.Seed(ctx, views.NewRecord(0)); err != nil {
		return nil, err
	}

	return store, nil
}
