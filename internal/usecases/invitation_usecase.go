package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/domain/repositories"
	"team-hub.backend/pkg/crypto"
	"team-hub.backend/pkg/utils"
)

// InvitationUsecase records team invitations. Write-mostly: invitations are
// created and can be marked accepted, but nothing else consumes them yet.
type InvitationUsecase struct {
	invitationRepo repositories.InvitationRepository
	memberRepo     repositories.TeamMemberRepository
}

// NewInvitationUsecase creates a new invitation usecase
func NewInvitationUsecase(
	invitationRepo repositories.InvitationRepository,
	memberRepo repositories.TeamMemberRepository,
) *InvitationUsecase {
	return &InvitationUsecase{
		invitationRepo: invitationRepo,
		memberRepo:     memberRepo,
	}
}

type CreateInvitationInput struct {
	Email        string `json:"email,omitempty"`
	GithubHandle string `json:"githubHandle,omitempty"`
}

// CreateInvitation records a pending invitation from a team member.
func (u *InvitationUsecase) CreateInvitation(ctx context.Context, inviterID, teamID uuid.UUID, input *CreateInvitationInput) (*entities.Invitation, error) {
	if input.Email == "" && input.GithubHandle == "" {
		return nil, domainerrors.BadRequest("an email or a GitHub handle is required")
	}
	if _, err := u.memberRepo.Get(ctx, teamID, inviterID); err != nil {
		return nil, err
	}

	code, err := crypto.GenerateJoinCode()
	if err != nil {
		return nil, err
	}

	inv := &entities.Invitation{
		ID:        utils.GenerateUUIDv7(),
		TeamID:    teamID,
		InvitedBy: inviterID,
		Status:    entities.InvitationPending,
		Code:      null.StringFrom(code),
	}
	if input.Email != "" {
		inv.Email = null.StringFrom(input.Email)
	}
	if input.GithubHandle != "" {
		inv.GithubHandle = null.StringFrom(input.GithubHandle)
	}

	if err := u.invitationRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvitations returns a team's invitations, newest first.
func (u *InvitationUsecase) ListInvitations(ctx context.Context, callerID, teamID uuid.UUID) ([]*entities.Invitation, error) {
	if _, err := u.memberRepo.Get(ctx, teamID, callerID); err != nil {
		return nil, err
	}
	return u.invitationRepo.ListByTeam(ctx, teamID)
}

// AcceptInvitation marks an invitation accepted.
func (u *InvitationUsecase) AcceptInvitation(ctx context.Context, id uuid.UUID) error {
	inv, err := u.invitationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status == entities.InvitationAccepted {
		return domainerrors.Conflict("invitation already accepted")
	}
	return u.invitationRepo.UpdateStatus(ctx, id, entities.InvitationAccepted)
}
