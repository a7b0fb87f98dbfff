package repository

import (
	"context"
	"errors"
	"time"
)

// ErrStateNotFound is returned by Load when no record exists for a key.
var ErrStateNotFound = errors.New("state not found")

// StateRecord is one serialized application state, stored under a fixed key.
type StateRecord struct {
	Key           string
	SchemaVersion int
	Payload       []byte
	UpdatedAt     time.Time
}

// StateRepo is a durable medium for state records.
type StateRepo interface {
	Load(ctx context.Context, key string) (*StateRecord, error)
	Save(ctx context.Context, rec *StateRecord) error
	Delete(ctx context.Context, key string) error
}
