package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatSnapshot and TodoSnapshot share a layout but live in separate tables,
// each with a uniqueness constraint on (team, user).

type ChatSnapshot struct {
	TeamID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	State     []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (ChatSnapshot) TableName() string {
	return "team_chat_snapshots"
}

type TodoSnapshot struct {
	TeamID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	State     []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (TodoSnapshot) TableName() string {
	return "team_todo_snapshots"
}
