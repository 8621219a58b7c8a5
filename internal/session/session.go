package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Session is a staff login, keyed by the token's jti.
type Session struct {
	ID       string
	Username string
}

// Store keeps live staff sessions. An expired session is indistinguishable
// from a revoked one.
type Store interface {
	Create(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Revoke(ctx context.Context, id string) error
}
