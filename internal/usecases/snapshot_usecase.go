package usecases

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/domain/repositories"
)

// SnapshotUsecase stores and serves the per-user chat/todo state blobs that
// teammates can view. Writes are last-write-wins; debouncing happens on the
// client before calling in.
type SnapshotUsecase struct {
	snapshotRepo repositories.SnapshotRepository
	memberRepo   repositories.TeamMemberRepository
}

// NewSnapshotUsecase creates a new snapshot usecase
func NewSnapshotUsecase(
	snapshotRepo repositories.SnapshotRepository,
	memberRepo repositories.TeamMemberRepository,
) *SnapshotUsecase {
	return &SnapshotUsecase{
		snapshotRepo: snapshotRepo,
		memberRepo:   memberRepo,
	}
}

// UpsertSnapshot overwrites the caller's snapshot of the given kind.
func (u *SnapshotUsecase) UpsertSnapshot(ctx context.Context, userID, teamID uuid.UUID, kind entities.SnapshotKind, state json.RawMessage) (*entities.Snapshot, error) {
	if !kind.Valid() {
		return nil, domainerrors.BadRequest("unknown snapshot kind")
	}
	if !json.Valid(state) {
		return nil, domainerrors.BadRequest("snapshot state must be valid JSON")
	}
	if _, err := u.memberRepo.Get(ctx, teamID, userID); err != nil {
		return nil, err
	}

	snap := &entities.Snapshot{
		TeamID: teamID,
		UserID: userID,
		Kind:   kind,
		State:  state,
	}
	if err := u.snapshotRepo.Upsert(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// FetchSnapshot returns a teammate's snapshot, or nil when none exists.
// The caller must share the team with the snapshot owner.
func (u *SnapshotUsecase) FetchSnapshot(ctx context.Context, callerID, teamID, ownerID uuid.UUID, kind entities.SnapshotKind) (*entities.Snapshot, error) {
	if !kind.Valid() {
		return nil, domainerrors.BadRequest("unknown snapshot kind")
	}
	if _, err := u.memberRepo.Get(ctx, teamID, callerID); err != nil {
		return nil, err
	}
	return u.snapshotRepo.Get(ctx, teamID, ownerID, kind)
}
