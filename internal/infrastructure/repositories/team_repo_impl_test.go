package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
)

func TestTeamRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createTeamTable(t, db)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	team := &entities.Team{
		ID:         uuid.New(),
		Name:       "Platform",
		TeamCode:   "AAAA1111",
		InviteCode: "BBBB2222",
		CreatedBy:  uuid.New(),
	}
	require.NoError(t, repo.Create(ctx, team))
	require.False(t, team.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, "Platform", got.Name)
	require.False(t, got.HasPassword())

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTeamRepository_GetByCode_EitherCode(t *testing.T) {
	db := newTestDB(t)
	createTeamTable(t, db)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	team := &entities.Team{
		ID:         uuid.New(),
		Name:       "Platform",
		TeamCode:   "AAAA1111",
		InviteCode: "BBBB2222",
		CreatedBy:  uuid.New(),
	}
	require.NoError(t, repo.Create(ctx, team))

	byTeamCode, err := repo.GetByCode(ctx, "AAAA1111")
	require.NoError(t, err)
	require.Equal(t, team.ID, byTeamCode.ID)

	byInviteCode, err := repo.GetByCode(ctx, "BBBB2222")
	require.NoError(t, err)
	require.Equal(t, team.ID, byInviteCode.ID)

	_, err = repo.GetByCode(ctx, "ZZZZ9999")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTeamRepository_Create_DuplicateCodeConflicts(t *testing.T) {
	db := newTestDB(t)
	createTeamTable(t, db)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	first := &entities.Team{
		ID:         uuid.New(),
		Name:       "First",
		TeamCode:   "AAAA1111",
		InviteCode: "BBBB2222",
		CreatedBy:  uuid.New(),
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &entities.Team{
		ID:         uuid.New(),
		Name:       "Second",
		TeamCode:   "AAAA1111",
		InviteCode: "CCCC3333",
		CreatedBy:  uuid.New(),
	}
	require.ErrorIs(t, repo.Create(ctx, second), domainerrors.ErrConflict)
}

func TestTeamRepository_ListByUser_OrderedByJoin(t *testing.T) {
	db := newTestDB(t)
	createTeamTable(t, db)
	createTeamMemberTable(t, db)
	repo := NewTeamRepository(db)
	memberRepo := NewTeamMemberRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	older := &entities.Team{ID: uuid.New(), Name: "Older", TeamCode: "AAAA1111", InviteCode: "BBBB2222", CreatedBy: userID}
	newer := &entities.Team{ID: uuid.New(), Name: "Newer", TeamCode: "CCCC3333", InviteCode: "DDDD4444", CreatedBy: userID}
	other := &entities.Team{ID: uuid.New(), Name: "Other", TeamCode: "EEEE5555", InviteCode: "FFFF6666", CreatedBy: uuid.New()}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, other))

	now := time.Now()
	require.NoError(t, memberRepo.Create(ctx, &entities.TeamMember{TeamID: older.ID, UserID: userID, Role: entities.RoleAdmin, JoinedAt: now.Add(-time.Hour)}))
	require.NoError(t, memberRepo.Create(ctx, &entities.TeamMember{TeamID: newer.ID, UserID: userID, Role: entities.RoleViewer, JoinedAt: now}))

	teams, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Equal(t, newer.ID, teams[0].ID)
	require.Equal(t, older.ID, teams[1].ID)
}

func TestTeamRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	createTeamTable(t, db)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	team := &entities.Team{
		ID:         uuid.New(),
		Name:       "Platform",
		TeamCode:   "AAAA1111",
		InviteCode: "BBBB2222",
		CreatedBy:  uuid.New(),
	}
	require.NoError(t, repo.Create(ctx, team))

	team.TeamCode = "GGGG7777"
	team.InviteCode = "HHHH8888"
	team.PasswordHash = null.StringFrom("$2a$12$hash")
	require.NoError(t, repo.Update(ctx, team))

	got, err := repo.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, "GGGG7777", got.TeamCode)
	require.True(t, got.HasPassword())

	missing := &entities.Team{ID: uuid.New(), Name: "Nope", TeamCode: "IIII9999", InviteCode: "JJJJ0000"}
	require.ErrorIs(t, repo.Update(ctx, missing), domainerrors.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, team.ID))
	require.ErrorIs(t, repo.Delete(ctx, team.ID), domainerrors.ErrNotFound)
}

func TestTeamRepository_Update_DuplicateCodeConflicts(t *testing.T) {
	db := newTestDB(t)
	createTeamTable(t, db)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	first := &entities.Team{ID: uuid.New(), Name: "First", TeamCode: "AAAA1111", InviteCode: "BBBB2222", CreatedBy: uuid.New()}
	second := &entities.Team{ID: uuid.New(), Name: "Second", TeamCode: "CCCC3333", InviteCode: "DDDD4444", CreatedBy: uuid.New()}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	second.TeamCode = "AAAA1111"
	require.ErrorIs(t, repo.Update(ctx, second), domainerrors.ErrConflict)
}
