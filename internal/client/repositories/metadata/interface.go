// Package metadata is the raw key/value medium underneath the credential
// store. Values are opaque bytes; sealing happens one layer up.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get on a missing key returns
// (nil, nil); Delete on a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
