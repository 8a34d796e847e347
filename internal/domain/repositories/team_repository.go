package repositories

import (
	"context"

	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	// GetByCode resolves a team by either its team code or its invite code.
	GetByCode(ctx context.Context, code string) (*entities.Team, error)
	// ListByUser returns the teams the user belongs to, most recently
	// joined first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error)
	Update(ctx context.Context, team *entities.Team) error
	// Delete hard-deletes a team; members, messages and snapshots cascade
	// at the store level.
	Delete(ctx context.Context, id uuid.UUID) error
}
