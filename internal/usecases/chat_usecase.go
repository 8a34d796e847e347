package usecases

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/domain/repositories"
	"team-hub.backend/internal/realtime"
	"team-hub.backend/pkg/logger"
	"team-hub.backend/pkg/utils"
)

// ChatUsecase handles the per-team append-only message channel.
type ChatUsecase struct {
	chatRepo   repositories.ChatRepository
	memberRepo repositories.TeamMemberRepository
	bus        realtime.Bus
}

// NewChatUsecase creates a new chat usecase
func NewChatUsecase(
	chatRepo repositories.ChatRepository,
	memberRepo repositories.TeamMemberRepository,
	bus realtime.Bus,
) *ChatUsecase {
	return &ChatUsecase{
		chatRepo:   chatRepo,
		memberRepo: memberRepo,
		bus:        bus,
	}
}

// FetchMessages returns a team's messages ascending by creation time, each
// joined with the author's display profile. A zero team id yields an empty
// result without error.
func (u *ChatUsecase) FetchMessages(ctx context.Context, userID, teamID uuid.UUID) ([]*entities.ChatMessage, error) {
	if teamID == uuid.Nil {
		return []*entities.ChatMessage{}, nil
	}
	if _, err := u.memberRepo.Get(ctx, teamID, userID); err != nil {
		return nil, err
	}
	return u.chatRepo.ListByTeam(ctx, teamID)
}

// SendMessage appends a message to the team channel. Blank text or a zero
// team id is a silent no-op. There is no optimistic echo: the sender sees
// the message only via the realtime event, which preserves single-source
// ordering.
func (u *ChatUsecase) SendMessage(ctx context.Context, userID, teamID uuid.UUID, text string) error {
	if userID == uuid.Nil {
		return domainerrors.ErrUnauthorized
	}
	body := strings.TrimSpace(text)
	if body == "" || teamID == uuid.Nil {
		return nil
	}
	if utf8.RuneCountInString(body) > entities.MaxMessageLength {
		return domainerrors.BadRequest("message too long")
	}

	if _, err := u.memberRepo.Get(ctx, teamID, userID); err != nil {
		return err
	}

	msg := &entities.ChatMessage{
		ID:     utils.GenerateUUIDv7(),
		TeamID: teamID,
		UserID: userID,
		Body:   body,
	}
	if err := u.chatRepo.Create(ctx, msg); err != nil {
		return err
	}

	if err := u.bus.Publish(ctx, realtime.ChangeEvent{
		Table:  realtime.TableTeamChats,
		Action: realtime.ActionInsert,
		TeamID: teamID,
		UserID: userID,
	}); err != nil {
		logger.Warn(ctx, "failed to publish chat event",
			zap.String("team_id", teamID.String()),
			zap.Error(err))
	}
	return nil
}
