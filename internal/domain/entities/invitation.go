package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// Invitation records that a user invited someone to a team. Write-mostly:
// no in-app workflow consumes invitations beyond a status update.
type Invitation struct {
	ID           uuid.UUID        `json:"id"`
	TeamID       uuid.UUID        `json:"teamId"`
	Email        null.String      `json:"email,omitempty"`
	GithubHandle null.String      `json:"githubHandle,omitempty"`
	InvitedBy    uuid.UUID        `json:"invitedBy"`
	Status       InvitationStatus `json:"status"`
	Code         null.String      `json:"code,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	AcceptedAt   null.Time        `json:"acceptedAt,omitempty"`
}
