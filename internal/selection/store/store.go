// Package store persists selection id lists between sessions.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing was saved under the key.
var ErrNotFound = errors.New("selection not found")

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store

// Store saves and loads the full id list under a key. Save replaces any
// previous list; saving an empty list clears the key.
type Store interface {
	Save(ctx context.Context, key string, ids []string) error
	Load(ctx context.Context, key string) ([]string, error)
}
