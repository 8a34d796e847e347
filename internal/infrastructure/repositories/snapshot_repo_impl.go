package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/infrastructure/models"
)

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert writes the snapshot with an on-conflict overwrite on (team, user).
// Last write wins; no history is retained.
func (r *SnapshotRepository) Upsert(ctx context.Context, snap *entities.Snapshot) error {
	if !snap.Kind.Valid() {
		return domainerrors.ErrInvalidInput
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}
	now := time.Now()

	db := GetDB(ctx, r.db).WithContext(ctx).Clauses(onConflict)
	var err error
	switch snap.Kind {
	case entities.SnapshotChat:
		err = db.Create(&models.ChatSnapshot{
			TeamID:    snap.TeamID,
			UserID:    snap.UserID,
			State:     snap.State,
			UpdatedAt: now,
		}).Error
	case entities.SnapshotTodo:
		err = db.Create(&models.TodoSnapshot{
			TeamID:    snap.TeamID,
			UserID:    snap.UserID,
			State:     snap.State,
			UpdatedAt: now,
		}).Error
	}
	if err != nil {
		return err
	}
	snap.UpdatedAt = now
	return nil
}

// Get returns nil, nil for a missing snapshot; absence is not an error.
func (r *SnapshotRepository) Get(ctx context.Context, teamID, userID uuid.UUID, kind entities.SnapshotKind) (*entities.Snapshot, error) {
	if !kind.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}

	db := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID)

	var state []byte
	var updatedAt time.Time
	switch kind {
	case entities.SnapshotChat:
		var m models.ChatSnapshot
		if err := db.First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		state, updatedAt = m.State, m.UpdatedAt
	case entities.SnapshotTodo:
		var m models.TodoSnapshot
		if err := db.First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		state, updatedAt = m.State, m.UpdatedAt
	}

	return &entities.Snapshot{
		TeamID:    teamID,
		UserID:    userID,
		Kind:      kind,
		State:     state,
		UpdatedAt: updatedAt,
	}, nil
}
