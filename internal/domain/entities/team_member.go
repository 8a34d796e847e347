package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MemberRole is the access level of a team member.
type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleEditor MemberRole = "editor"
	RoleViewer MemberRole = "viewer"
)

func (r MemberRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// TeamMember is the (team, user) relation. At most one row exists per pair.
type TeamMember struct {
	TeamID   uuid.UUID   `json:"teamId"`
	UserID   uuid.UUID   `json:"userId"`
	Role     MemberRole  `json:"role"`
	Status   null.String `json:"status,omitempty"`
	JoinedAt time.Time   `json:"joinedAt"`

	// Display profile joined from the users table on member listings.
	Profile *Profile `json:"profile,omitempty"`
}
