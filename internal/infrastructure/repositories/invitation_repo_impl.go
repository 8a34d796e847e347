package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/infrastructure/models"
)

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, inv *entities.Invitation) error {
	m := r.toModel(inv)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	inv.ID = m.ID
	inv.CreatedAt = m.CreatedAt
	return nil
}

func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Invitation, error) {
	var m models.Invitation
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *InvitationRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Invitation, error) {
	var ms []models.Invitation
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Invitation, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *InvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvitationStatus) error {
	updates := map[string]interface{}{
		"status": string(status),
	}
	if status == entities.InvitationAccepted {
		updates["accepted_at"] = null.TimeFrom(time.Now())
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Invitation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *InvitationRepository) DeleteStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ? AND created_at < ?", string(entities.InvitationPending), cutoff).
		Delete(&models.Invitation{})
	return result.RowsAffected, result.Error
}

func (r *InvitationRepository) toEntity(m *models.Invitation) *entities.Invitation {
	return &entities.Invitation{
		ID:           m.ID,
		TeamID:       m.TeamID,
		Email:        m.Email,
		GithubHandle: m.GithubHandle,
		InvitedBy:    m.InvitedBy,
		Status:       entities.InvitationStatus(m.Status),
		Code:         m.Code,
		CreatedAt:    m.CreatedAt,
		AcceptedAt:   m.AcceptedAt,
	}
}

func (r *InvitationRepository) toModel(e *entities.Invitation) *models.Invitation {
	return &models.Invitation{
		ID:           e.ID,
		TeamID:       e.TeamID,
		Email:        e.Email,
		GithubHandle: e.GithubHandle,
		InvitedBy:    e.InvitedBy,
		Status:       string(e.Status),
		Code:         e.Code,
		CreatedAt:    e.CreatedAt,
		AcceptedAt:   e.AcceptedAt,
	}
}
