// Package tokenstore persists the current session so it survives a
// process restart. Only the session manager writes here; every API
// client reads through it.
package tokenstore

import (
	"context"

	"github.com/rentafleet/fleetapi-go/internal/client/models"
)

// Store is the durable session storage. Get immediately after Set must
// observe the new value; Set writes all session fields atomically.
type Store interface {
	// Get returns the persisted session, or nil when none exists.
	Get(ctx context.Context) (*models.Session, error)
	Set(ctx context.Context, sess *models.Session) error
	Clear(ctx context.Context) error
}
