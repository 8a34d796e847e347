package repositories

import (
	"context"

	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
)

type SnapshotRepository interface {
	// Upsert replaces the (team, user) snapshot of the given kind wholesale.
	Upsert(ctx context.Context, snap *entities.Snapshot) error
	// Get returns nil, nil when no snapshot exists.
	Get(ctx context.Context, teamID, userID uuid.UUID, kind entities.SnapshotKind) (*entities.Snapshot, error)
}
