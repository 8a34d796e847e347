package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/domain/repositories"
	"team-hub.backend/internal/realtime"
	"team-hub.backend/pkg/crypto"
	"team-hub.backend/pkg/logger"
	"team-hub.backend/pkg/utils"
)

// maxCodeAttempts bounds regeneration retries when a generated join code
// collides with an existing one.
const maxCodeAttempts = 5

// TeamUsecase handles team registry business logic: creation, joining,
// deletion and membership.
type TeamUsecase struct {
	teamRepo   repositories.TeamRepository
	memberRepo repositories.TeamMemberRepository
	uow        repositories.UnitOfWork
	bus        realtime.Bus
}

// NewTeamUsecase creates a new team usecase
func NewTeamUsecase(
	teamRepo repositories.TeamRepository,
	memberRepo repositories.TeamMemberRepository,
	uow repositories.UnitOfWork,
	bus realtime.Bus,
) *TeamUsecase {
	return &TeamUsecase{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		uow:        uow,
		bus:        bus,
	}
}

// CreateTeam creates a team and its creator's admin membership in one
// transaction, so a team can never exist without at least one member.
// Generated codes are inserted under a uniqueness constraint; a collision
// regenerates and retries the whole transaction.
func (u *TeamUsecase) CreateTeam(ctx context.Context, userID uuid.UUID, input *entities.CreateTeamInput) (*entities.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("team name is required")
	}

	var passwordHash null.String
	if input.Password != "" {
		hash, err := crypto.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = null.StringFrom(hash)
	}

	var team *entities.Team
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		teamCode, err := crypto.GenerateJoinCode()
		if err != nil {
			return nil, err
		}
		inviteCode, err := crypto.GenerateJoinCode()
		if err != nil {
			return nil, err
		}

		candidate := &entities.Team{
			ID:           utils.GenerateUUIDv7(),
			Name:         name,
			Description:  strings.TrimSpace(input.Description),
			TeamCode:     teamCode,
			InviteCode:   inviteCode,
			PasswordHash: passwordHash,
			CreatedBy:    userID,
		}

		err = u.uow.Do(ctx, func(txCtx context.Context) error {
			if err := u.teamRepo.Create(txCtx, candidate); err != nil {
				return err
			}
			return u.memberRepo.Create(txCtx, &entities.TeamMember{
				TeamID:   candidate.ID,
				UserID:   userID,
				Role:     entities.RoleAdmin,
				JoinedAt: time.Now(),
			})
		})
		if errors.Is(err, domainerrors.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		team = candidate
		break
	}
	if team == nil {
		return nil, domainerrors.Conflict("could not generate a unique team code")
	}

	u.publish(ctx, realtime.ChangeEvent{Table: realtime.TableTeams, Action: realtime.ActionInsert, TeamID: team.ID})
	u.publish(ctx, realtime.ChangeEvent{Table: realtime.TableTeamMembers, Action: realtime.ActionInsert, TeamID: team.ID, UserID: userID})
	return team, nil
}

// JoinTeam adds the user as a viewer of the team resolved by either entry
// code. A password argument is ignored when the team has none set; a second
// join by the same user fails with ErrAlreadyMember.
func (u *TeamUsecase) JoinTeam(ctx context.Context, userID uuid.UUID, input *entities.JoinTeamInput) (*entities.Team, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, domainerrors.BadRequest("join code is required")
	}

	team, err := u.teamRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if team.HasPassword() && !crypto.CheckPassword(input.Password, team.PasswordHash.String) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := u.memberRepo.Create(ctx, &entities.TeamMember{
		TeamID:   team.ID,
		UserID:   userID,
		Role:     entities.RoleViewer,
		JoinedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	u.publish(ctx, realtime.ChangeEvent{Table: realtime.TableTeamMembers, Action: realtime.ActionInsert, TeamID: team.ID, UserID: userID})
	return team, nil
}

// DeleteTeam removes a team; only its creator may. Dependent rows cascade
// at the store level, so one cascading membership-deletion event per member
// goes out alongside the team deletion itself.
func (u *TeamUsecase) DeleteTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if !team.CanDelete(userID) {
		return domainerrors.Forbidden("only the team creator can delete the team")
	}

	members, err := u.memberRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return err
	}

	if err := u.teamRepo.Delete(ctx, teamID); err != nil {
		return err
	}

	u.publish(ctx, realtime.ChangeEvent{Table: realtime.TableTeams, Action: realtime.ActionDelete, TeamID: teamID})
	for _, m := range members {
		u.publish(ctx, realtime.ChangeEvent{Table: realtime.TableTeamMembers, Action: realtime.ActionDelete, TeamID: teamID, UserID: m.UserID})
	}
	return nil
}

// LeaveTeam removes the caller's own membership. A sole admin may leave,
// locking the team's admin functions; no replacement promotion happens.
func (u *TeamUsecase) LeaveTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	member, err := u.memberRepo.Get(ctx, teamID, userID)
	if err != nil {
		return err
	}

	if member.Role == entities.RoleAdmin {
		admins, err := u.memberRepo.CountAdmins(ctx, teamID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			logger.Warn(ctx, "sole admin leaving team; team has no admin left",
				zap.String("team_id", teamID.String()),
				zap.String("user_id", userID.String()))
		}
	}

	if err := u.memberRepo.Delete(ctx, teamID, userID); err != nil {
		return err
	}

	u.publish(ctx, realtime.ChangeEvent{Table: realtime.TableTeamMembers, Action: realtime.ActionDelete, TeamID: teamID, UserID: userID})
	return nil
}

// RegenerateCodes replaces both join codes. Admin only. Concurrent
// regenerations race last-write-wins at the store; each still lands unique
// codes via the constraint-and-retry loop.
func (u *TeamUsecase) RegenerateCodes(ctx context.Context, userID, teamID uuid.UUID) (*entities.Team, error) {
	team, err := u.requireAdmin(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		teamCode, err := crypto.GenerateJoinCode()
		if err != nil {
			return nil, err
		}
		inviteCode, err := crypto.GenerateJoinCode()
		if err != nil {
			return nil, err
		}
		team.TeamCode = teamCode
		team.InviteCode = inviteCode

		err = u.teamRepo.Update(ctx, team)
		if errors.Is(err, domainerrors.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		u.publish(ctx, realtime.ChangeEvent{Table: realtime.TableTeams, Action: realtime.ActionUpdate, TeamID: teamID})
		return team, nil
	}
	return nil, domainerrors.Conflict("could not generate a unique team code")
}

// SetPassword sets or clears the team join password. Admin only.
func (u *TeamUsecase) SetPassword(ctx context.Context, userID, teamID uuid.UUID, password string) error {
	team, err := u.requireAdmin(ctx, userID, teamID)
	if err != nil {
		return err
	}

	if password == "" {
		team.PasswordHash = null.String{}
	} else {
		hash, err := crypto.HashPassword(password)
		if err != nil {
			return err
		}
		team.PasswordHash = null.StringFrom(hash)
	}

	if err := u.teamRepo.Update(ctx, team); err != nil {
		return err
	}

	u.publish(ctx, realtime.ChangeEvent{Table: realtime.TableTeams, Action: realtime.ActionUpdate, TeamID: teamID})
	return nil
}

// GetTeam returns a team the user belongs to.
func (u *TeamUsecase) GetTeam(ctx context.Context, userID, teamID uuid.UUID) (*entities.Team, error) {
	if _, err := u.memberRepo.Get(ctx, teamID, userID); err != nil {
		return nil, err
	}
	return u.teamRepo.GetByID(ctx, teamID)
}

// ListTeams returns the user's teams, most recently joined first.
func (u *TeamUsecase) ListTeams(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error) {
	return u.teamRepo.ListByUser(ctx, userID)
}

// ListMembers returns a team's members joined with display profiles.
func (u *TeamUsecase) ListMembers(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	return u.memberRepo.ListByTeam(ctx, teamID)
}

// IsMember reports whether the user belongs to the team.
func (u *TeamUsecase) IsMember(ctx context.Context, userID, teamID uuid.UUID) (bool, error) {
	_, err := u.memberRepo.Get(ctx, teamID, userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (u *TeamUsecase) requireAdmin(ctx context.Context, userID, teamID uuid.UUID) (*entities.Team, error) {
	member, err := u.memberRepo.Get(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role != entities.RoleAdmin {
		return nil, domainerrors.Forbidden("admin role required")
	}
	return u.teamRepo.GetByID(ctx, teamID)
}

// publish pushes a change event. The mutation is already committed when we
// get here; a publish failure is logged and the clients catch up on their
// next full fetch.
func (u *TeamUsecase) publish(ctx context.Context, ev realtime.ChangeEvent) {
	if err := u.bus.Publish(ctx, ev); err != nil {
		logger.Warn(ctx, "failed to publish change event",
			zap.String("table", ev.Table),
			zap.String("action", string(ev.Action)),
			zap.Error(err))
	}
}
