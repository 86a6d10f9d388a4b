// Package persist provides the durable key-value backing store used by the
// stores. Each store owns one key and rewrites its whole serialized snapshot
// on every mutation; there is no read-modify-write atomicity across
// processes, so concurrent writers race and the last snapshot wins.
package persist

import (
	"context"
	"errors"
)

// Store keys. Authentication state and the recipe collection are persisted
// as two independently keyed records.
const (
	RecipeStoreKey = "cocktail-lab:recipes"
	AuthStoreKey   = "cocktail-lab:auth"
)

// ErrNotFound is returned by Load when a key has never been written.
var ErrNotFound = errors.New("persist: key not found")

// Adapter is the persistence contract injected into the stores. Tests supply
// the in-memory implementation instead of real durable storage.
type Adapter interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
