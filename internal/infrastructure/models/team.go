package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Team struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Name         string      `gorm:"type:varchar(120);not null"`
	Description  string      `gorm:"type:text;not null;default:''"`
	TeamCode     string      `gorm:"type:varchar(8);not null;uniqueIndex"`
	InviteCode   string      `gorm:"type:varchar(8);not null;uniqueIndex"`
	PasswordHash null.String `gorm:"type:text"`
	CreatedBy    uuid.UUID   `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Team) TableName() string {
	return "teams"
}
