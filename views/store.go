package views

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record changed since it was read")
	// ErrMalformed marks a stored record whose fields cannot be decoded.
	ErrMalformed = errors.New("malformed record")
)

// Store reads and writes whole counter records. Get returns ErrNotFound when no
// record exists for the id.
type Store interface {
	Get(ctx context.Context, id string) (Record, error)
	Put(ctx context.Context, record Record) error
}

// ConditionalStore writes a record only while the stored count still equals
// expected, returning ErrConflict otherwise.
type ConditionalStore interface {
	Store
	PutIf(ctx context.Context, record Record, expected int64) error
}

// Incrementer adds to the stored count in a single store operation and returns
// the new count. It returns ErrNotFound rather than creating a record.
type Incrementer interface {
	Store
	Add(ctx context.Context, id string, amount int64) (int64, error)
}
