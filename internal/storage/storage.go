// Package storage persists session tokens in two tiers: an expiring
// cookie jar (primary) and a legacy key/value store that older clients
// wrote to. Tokens found only in the legacy store are migrated into the
// cookie jar once and then removed from the legacy store.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned by a store that cannot serve the call in the
// current context.
var ErrUnavailable = errors.New("storage unavailable")

type Cookie struct {
	Name     string
	Value    string
	Path     string
	SameSite string
	Secure   bool
	Expires  time.Time
}

// Expired reports whether the cookie is no longer valid at now.
func (c Cookie) Expired(now time.Time) bool {
	return !c.Expires.After(now)
}

type CookieJar interface {
	// Get returns the value of a live cookie.
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, c Cookie) error
	Delete(ctx context.Context, name string) error
}

type LocalStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
