package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Body      string    `gorm:"type:varchar(2000);not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "team_chats"
}
