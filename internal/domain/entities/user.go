package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"displayName"`
	AvatarURL    null.String `json:"avatarUrl,omitempty"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Profile is the public display projection of a user, joined into member
// and chat listings.
type Profile struct {
	UserID      uuid.UUID   `json:"userId"`
	DisplayName string      `json:"displayName"`
	AvatarURL   null.String `json:"avatarUrl,omitempty"`
}

type RegisterInput struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}
