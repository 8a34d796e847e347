package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Invitation struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	TeamID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	Email        null.String `gorm:"type:varchar(255)"`
	GithubHandle null.String `gorm:"type:varchar(120)"`
	InvitedBy    uuid.UUID   `gorm:"type:uuid;not null"`
	Status       string      `gorm:"type:varchar(16);not null;default:'pending'"`
	Code         null.String `gorm:"type:varchar(16)"`
	CreatedAt    time.Time
	AcceptedAt   null.Time
}

func (Invitation) TableName() string {
	return "team_invitations"
}
