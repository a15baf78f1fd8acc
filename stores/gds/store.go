package gds

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/datastore"
	pkgerrors "github.com/pkg/errors"

	"github.com/weegigs/wee-views-go/views"
)

var (
	_ views.ConditionalStore = (*DatastoreViewStore)(nil)
	_ views.Incrementer      = (*DatastoreViewStore)(nil)
)

type Kind string

// DatastoreViewStore keeps each record as an entity named by the record id.
type DatastoreViewStore struct {
	client *datastore.Client
	kind   string
}

func NewViewStore(client *datastore.Client, kind Kind) *DatastoreViewStore {
	return &DatastoreViewStore{client: client, kind: string(kind)}
}

func (s *DatastoreViewStore) key(id string) *datastore.Key {
	return datastore.NameKey(s.kind, id, nil)
}

func (s *DatastoreViewStore) Get(ctx context.Context, id string) (views.Record, error) {
	return s.load(id, func(key *datastore.Key, dst interface{}) error {
		return s.client.Get(ctx, key, dst)
	})
}

func (s *DatastoreViewStore) Put(ctx context.Context, record views.Record) error {
	_, err := s.client.Put(ctx, s.key(record.ID), &entity{Record: record})
	return err
}

func (s *DatastoreViewStore) PutIf(ctx context.Context, record views.Record, expected int64) error {
	_, err := s.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		current, err := s.load(record.ID, tx.Get)
		if errors.Is(err, views.ErrNotFound) {
			return views.ErrConflict
		}

		if err != nil {
			return err
		}

		if current.Views != expected {
			return views.ErrConflict
		}

		_, err = tx.Put(s.key(record.ID), &entity{Record: record})
		return err
	})

	return err
}

func (s *DatastoreViewStore) Add(ctx context.Context, id string, amount int64) (int64, error) {
	var count int64
	_, err := s.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		current, err := s.load(id, tx.Get)
		if err != nil {
			return err
		}

		count = current.Views + amount
		_, err = tx.Put(s.key(id), &entity{Record: views.Record{ID: id, Views: count}})
		return err
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Seed writes record only when no record exists for its id.
func (s *DatastoreViewStore) Seed(ctx context.Context, record views.Record) error {
	_, err := s.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		_, err := s.load(record.ID, tx.Get)
		if !errors.Is(err, views.ErrNotFound) {
			return err
		}

		_, err = tx.Put(s.key(record.ID), &entity{Record: record})
		return err
	})

	return err
}

func (s *DatastoreViewStore) load(id string, get func(key *datastore.Key, dst interface{}) error) (views.Record, error) {
	var e entity
	err := get(s.key(id), &e)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return views.Record{}, views.ErrNotFound
	}

	if err != nil {
		return views.Record{}, err
	}

	e.Record.ID = id
	return e.Record, nil
}

// entity accepts views stored as an integer, a float or a decimal string.
type entity struct {
	views.Record
}

func (e *entity) Load(properties []datastore.Property) error {
	for _, property := range properties {
		if property.Name != "views" {
			continue
		}

		var text string
		switch value := property.Value.(type) {
		case int64:
			text = fmt.Sprint(value)
		case float64:
			text = fmt.Sprint(value)
		case string:
			text = value
		default:
			return pkgerrors.Wrapf(views.ErrMalformed, "views has unsupported type %T", property.Value)
		}

		count, err := views.DecodeViews(text)
		if err != nil {
			return err
		}

		e.Views = count
		return nil
	}

	return pkgerrors.Wrap(views.ErrMalformed, "record has no views property")
}

func (e *entity) Save() ([]datastore.Property, error) {
	return []datastore.Property{
		{Name: "id", Value: e.ID},
		{Name: "views", Value: e.Views},
	}, nil
}
