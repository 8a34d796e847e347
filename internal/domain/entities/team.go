package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Team struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	// TeamCode and InviteCode are both accepted on join. The two fields are
	// functionally redundant; kept separate for compatibility with existing
	// clients.
	TeamCode     string      `json:"teamCode"`
	InviteCode   string      `json:"inviteCode"`
	PasswordHash null.String `json:"-"`
	CreatedBy    uuid.UUID   `json:"createdBy"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// HasPassword reports whether joining the team requires a password.
func (t *Team) HasPassword() bool {
	return t.PasswordHash.Valid && t.PasswordHash.String != ""
}

// CanDelete reports whether the given user may delete the team.
// Only the creator can.
func (t *Team) CanDelete(userID uuid.UUID) bool {
	return t.CreatedBy == userID
}

type CreateTeamInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Password    string `json:"password,omitempty"`
}

type JoinTeamInput struct {
	Code     string `json:"code"`
	Password string `json:"password,omitempty"`
}
