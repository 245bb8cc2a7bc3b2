// Package cachestore is a small string cache used for hot read paths.
// A miss is not an error: Get returns "" and a nil error.
package cachestore

import (
	"context"
)

type CacheStore interface {
	Get(ctx context.Context, name, key string) (string, error)
	Set(ctx context.Context, name, key string, val string) error
	Purge(ctx context.Context, name, key string) error
}

func cacheKey(name, key string) string {
	return "cache/" + name + "/" + key
}
