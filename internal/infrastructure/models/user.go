package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type User struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Email        string      `gorm:"type:varchar(255);not null;uniqueIndex"`
	DisplayName  string      `gorm:"type:varchar(120);not null"`
	AvatarURL    null.String `gorm:"type:text"`
	PasswordHash string      `gorm:"type:text;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "profiles"
}
