package repositories

import (
	"context"

	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
)

type TeamMemberRepository interface {
	// Create inserts a membership row. A duplicate (team, user) pair must
	// surface as domain ErrAlreadyMember, mapped from the store's
	// uniqueness constraint.
	Create(ctx context.Context, member *entities.TeamMember) error
	Get(ctx context.Context, teamID, userID uuid.UUID) (*entities.TeamMember, error)
	// ListByTeam returns members joined with their display profile.
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error)
	Delete(ctx context.Context, teamID, userID uuid.UUID) error
	CountAdmins(ctx context.Context, teamID uuid.UUID) (int64, error)
}
