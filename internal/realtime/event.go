package realtime

import (
	"context"

	"github.com/google/uuid"
)

// Action is a row-level change kind.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Change-feed table names.
const (
	TableTeams       = "teams"
	TableTeamMembers = "team_members"
	TableTeamChats   = "team_chats"
)

// ChangeEvent describes one row-level change on a watched table. Events are
// delivered in commit order per table; no cross-table ordering is assumed.
type ChangeEvent struct {
	Table  string    `json:"table"`
	Action Action    `json:"action"`
	TeamID uuid.UUID `json:"teamId,omitempty"`
	UserID uuid.UUID `json:"userId,omitempty"`
}

// Bus is the realtime change-feed. Writers publish after every mutation;
// the hub subscribes and fans events out to connected clients.
type Bus interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	// Subscribe returns a receive channel and a cancel function that
	// synchronously tears the subscription down.
	Subscribe(ctx context.Context) (<-chan ChangeEvent, func(), error)
}
