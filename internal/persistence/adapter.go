// Package persistence saves and restores the serialized dashboard
// snapshot under a single storage key.
package persistence

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("persistence: no snapshot stored")

type Adapter interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
