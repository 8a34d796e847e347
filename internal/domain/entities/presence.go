package entities

import (
	"time"

	"github.com/google/uuid"
)

// PresenceRecord is the ephemeral per-team, per-user location broadcast.
// It lives only in the realtime channel and client caches, never in the
// durable store.
type PresenceRecord struct {
	UserID    uuid.UUID `json:"userId"`
	Path      string    `json:"path"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WellFormed reports whether a presence entry received from a peer carries
// the fields a sync is allowed to accept. Malformed entries are dropped,
// not errored; presence is best-effort.
func (p PresenceRecord) WellFormed() bool {
	return p.UserID != uuid.Nil && p.Path != "" && !p.UpdatedAt.IsZero()
}
