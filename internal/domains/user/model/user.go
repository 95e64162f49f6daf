package model

import (
	"time"

	"github.com/google/uuid"

	"publishing-backend/internal/shared/identity"
)

// User maps 1:1 to the users table.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DisplayName  string    `db:"display_name" json:"displayName"`

	Roles []identity.Role `json:"roles"` // loaded from user_roles

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Profile is the optional public profile attached to a user.
// A user without one is a valid state, not an error.
type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	Bio       *string   `db:"bio" json:"bio,omitempty"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Principal converts the stored user into a request principal.
func (u *User) Principal() identity.Principal {
	return identity.Principal{UserID: u.ID, Roles: u.Roles}
}

// RoleNames returns the role set as strings for token claims.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.String())
	}
	return names
}

// UserSummary is the embedded author shape used by article and
// comment payloads. Profile stays nil when the user never created one.
type UserSummary struct {
	ID          uuid.UUID       `json:"id"`
	DisplayName string          `json:"displayName"`
	Profile     *ProfileSummary `json:"profile"`
}

type ProfileSummary struct {
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}
