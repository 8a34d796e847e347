package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/infrastructure/models"
)

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

func (r *TeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	m := &models.TeamMember{
		TeamID:   member.TeamID,
		UserID:   member.UserID,
		Role:     string(member.Role),
		Status:   member.Status,
		JoinedAt: member.JoinedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *TeamMemberRepository) Get(ctx context.Context, teamID, userID uuid.UUID) (*entities.TeamMember, error) {
	var m models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.TeamMember{
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     entities.MemberRole(m.Role),
		Status:   m.Status,
		JoinedAt: m.JoinedAt,
	}, nil
}

// memberRow carries the membership columns plus the joined profile fields.
type memberRow struct {
	models.TeamMember
	DisplayName string
	AvatarURL   null.String
}

// ListByTeam always joins the display profile so callers never render a
// member without a name.
func (r *TeamMemberRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	var rows []memberRow
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Table("team_members").
		Select("team_members.*, profiles.display_name, profiles.avatar_url").
		Joins("JOIN profiles ON profiles.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.joined_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.TeamMember, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		items = append(items, &entities.TeamMember{
			TeamID:   row.TeamID,
			UserID:   row.UserID,
			Role:     entities.MemberRole(row.Role),
			Status:   row.Status,
			JoinedAt: row.JoinedAt,
			Profile: &entities.Profile{
				UserID:      row.UserID,
				DisplayName: row.DisplayName,
				AvatarURL:   row.AvatarURL,
			},
		})
	}
	return items, nil
}

func (r *TeamMemberRepository) Delete(ctx context.Context, teamID, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamMemberRepository) CountAdmins(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_id = ? AND role = ?", teamID, string(entities.RoleAdmin)).
		Count(&count).Error
	return count, err
}
