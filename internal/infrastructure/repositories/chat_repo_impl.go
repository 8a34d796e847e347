package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"team-hub.backend/internal/domain/entities"
	"team-hub.backend/internal/infrastructure/models"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(ctx context.Context, msg *entities.ChatMessage) error {
	m := &models.ChatMessage{
		ID:        msg.ID,
		TeamID:    msg.TeamID,
		UserID:    msg.UserID,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	msg.ID = m.ID
	msg.CreatedAt = m.CreatedAt
	return nil
}

type chatRow struct {
	models.ChatMessage
	DisplayName string
	AvatarURL   null.String
}

func (r *ChatRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.ChatMessage, error) {
	var rows []chatRow
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Table("team_chats").
		Select("team_chats.*, profiles.display_name, profiles.avatar_url").
		Joins("JOIN profiles ON profiles.id = team_chats.user_id").
		Where("team_chats.team_id = ?", teamID).
		Order("team_chats.created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.ChatMessage, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		items = append(items, &entities.ChatMessage{
			ID:        row.ID,
			TeamID:    row.TeamID,
			UserID:    row.UserID,
			Body:      row.Body,
			CreatedAt: row.CreatedAt,
			Author: &entities.Profile{
				UserID:      row.UserID,
				DisplayName: row.DisplayName,
				AvatarURL:   row.AvatarURL,
			},
		})
	}
	return items, nil
}
