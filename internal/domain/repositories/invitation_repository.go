package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
)

type InvitationRepository interface {
	Create(ctx context.Context, inv *entities.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Invitation, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Invitation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvitationStatus) error
	// DeleteStalePending removes pending invitations created before the
	// cutoff. Used by the background sweep job.
	DeleteStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}
