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

func TestInvitationRepository_CreateGetList(t *testing.T) {
	db := newTestDB(t)
	createInvitationTable(t, db)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	teamID := uuid.New()
	inviter := uuid.New()
	now := time.Now()

	older := &entities.Invitation{
		ID:        uuid.New(),
		TeamID:    teamID,
		Email:     null.StringFrom("a@example.com"),
		InvitedBy: inviter,
		Status:    entities.InvitationPending,
		Code:      null.StringFrom("AAAA1111"),
		CreatedAt: now.Add(-time.Hour),
	}
	newer := &entities.Invitation{
		ID:           uuid.New(),
		TeamID:       teamID,
		GithubHandle: null.StringFrom("octocat"),
		InvitedBy:    inviter,
		Status:       entities.InvitationPending,
		Code:         null.StringFrom("BBBB2222"),
		CreatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	require.Equal(t, "a@example.com", got.Email.String)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	items, err := repo.ListByTeam(ctx, teamID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, newer.ID, items[0].ID)
	require.Equal(t, older.ID, items[1].ID)
}

func TestInvitationRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	createInvitationTable(t, db)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	inv := &entities.Invitation{
		ID:        uuid.New(),
		TeamID:    uuid.New(),
		Email:     null.StringFrom("a@example.com"),
		InvitedBy: uuid.New(),
		Status:    entities.InvitationPending,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, inv))

	require.NoError(t, repo.UpdateStatus(ctx, inv.ID, entities.InvitationAccepted))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, entities.InvitationAccepted, got.Status)
	require.True(t, got.AcceptedAt.Valid)

	require.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), entities.InvitationAccepted), domainerrors.ErrNotFound)
}

func TestInvitationRepository_DeleteStalePending(t *testing.T) {
	db := newTestDB(t)
	createInvitationTable(t, db)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	teamID := uuid.New()
	inviter := uuid.New()
	now := time.Now()

	stale := &entities.Invitation{
		ID: uuid.New(), TeamID: teamID, InvitedBy: inviter,
		Email: null.StringFrom("stale@example.com"), Status: entities.InvitationPending,
		CreatedAt: now.Add(-48 * time.Hour),
	}
	fresh := &entities.Invitation{
		ID: uuid.New(), TeamID: teamID, InvitedBy: inviter,
		Email: null.StringFrom("fresh@example.com"), Status: entities.InvitationPending,
		CreatedAt: now,
	}
	acceptedOld := &entities.Invitation{
		ID: uuid.New(), TeamID: teamID, InvitedBy: inviter,
		Email: null.StringFrom("done@example.com"), Status: entities.InvitationAccepted,
		CreatedAt: now.Add(-48 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, stale))
	require.NoError(t, repo.Create(ctx, fresh))
	require.NoError(t, repo.Create(ctx, acceptedOld))

	deleted, err := repo.DeleteStalePending(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	items, err := repo.ListByTeam(ctx, teamID)
	require.NoError(t, err)
	require.Len(t, items, 2)
}
