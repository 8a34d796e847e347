package repositories

import (
	"context"

	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
)

type ChatRepository interface {
	Create(ctx context.Context, msg *entities.ChatMessage) error
	// ListByTeam returns all messages for a team joined with the author's
	// display profile, ascending by creation time.
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.ChatMessage, error)
}
