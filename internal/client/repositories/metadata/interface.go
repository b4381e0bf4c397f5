// Package metadata is the CLI's local key/value store. The session manager
// keeps the bearer token, its expiry and the remembered email here.
package metadata

import "context"

type Repository interface {
	// Get reports ok=false for an absent key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
