package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/infrastructure/models"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	m := r.toModel(team)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrConflict
		}
		return err
	}
	team.ID = m.ID
	team.CreatedAt = m.CreatedAt
	team.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByCode resolves a team by either code column. Two valid entry codes
// map to one team.
func (r *TeamRepository) GetByCode(ctx context.Context, code string) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_code = ? OR invite_code = ?", code, code).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error) {
	var ms []models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("team_members.joined_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Team, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *entities.Team) error {
	updates := map[string]interface{}{
		"name":          team.Name,
		"description":   team.Description,
		"team_code":     team.TeamCode,
		"invite_code":   team.InviteCode,
		"password_hash": team.PasswordHash,
		"updated_at":    time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", team.ID).
		Updates(updates)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerrors.ErrConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) toEntity(m *models.Team) *entities.Team {
	return &entities.Team{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		TeamCode:     m.TeamCode,
		InviteCode:   m.InviteCode,
		PasswordHash: m.PasswordHash,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *TeamRepository) toModel(e *entities.Team) *models.Team {
	return &models.Team{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		TeamCode:     e.TeamCode,
		InviteCode:   e.InviteCode,
		PasswordHash: e.PasswordHash,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
