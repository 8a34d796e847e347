package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SnapshotKind selects which per-user state blob a snapshot holds.
type SnapshotKind string

const (
	SnapshotChat SnapshotKind = "chat"
	SnapshotTodo SnapshotKind = "todo"
)

func (k SnapshotKind) Valid() bool {
	return k == SnapshotChat || k == SnapshotTodo
}

// Snapshot is the last-known serialized copy of a user's private chat or
// todo state, shareable with teammates. At most one exists per
// (team, user, kind); each save overwrites the previous blob wholesale.
type Snapshot struct {
	TeamID    uuid.UUID       `json:"teamId"`
	UserID    uuid.UUID       `json:"userId"`
	Kind      SnapshotKind    `json:"kind"`
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
