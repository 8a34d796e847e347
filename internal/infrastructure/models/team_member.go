package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type TeamMember struct {
	TeamID   uuid.UUID   `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Role     string      `gorm:"type:varchar(16);not null;default:'viewer'"`
	Status   null.String `gorm:"type:varchar(64)"`
	JoinedAt time.Time   `gorm:"not null"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
