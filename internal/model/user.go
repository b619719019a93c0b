package model

import (
	"strings"
	"time"
)

// Role names a back-office permission level.
type Role string

const (
	RoleUser      Role = "User"
	RoleAdmin     Role = "Admin"
	RoleModerator Role = "Moderator"
)

// UserStatus controls whether a user may sign in.
type UserStatus string

const (
	UserActive    UserStatus = "Active"
	UserInactive  UserStatus = "Inactive"
	UserSuspended UserStatus = "Suspended"
)

// User represents a back-office account as stored in the `users`
// table / collection.  The password is only ever held as a bcrypt hash
// and neither it nor the session token are serialized to clients.
//
// Fields:
//
//	ID           – generated UUID.
//	Name         – display name.
//	Email        – unique, lower-cased login.
//	PasswordHash – bcrypt hash of the password.
//	Role         – User, Admin or Moderator.
//	Status       – Active, Inactive or Suspended.
//	AllowedURLs  – dashboard pages the user may open.
//	Token        – ID of the most recently issued access token.
type User struct {
	ID           string     `json:"id" bson:"_id"`
	Name         string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email        string     `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string     `json:"-" bson:"passwordHash"`
	Role         Role       `json:"role" bson:"role" validate:"required,oneof=User Admin Moderator"`
	Status       UserStatus `json:"status" bson:"status" validate:"required,oneof=Active Inactive Suspended"`
	AllowedURLs  []string   `json:"allowedUrls" bson:"allowedUrls" validate:"dive,required"`
	Token        *string    `json:"-" bson:"token,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// NewUser returns an active user with the default role.
func NewUser() *User {
	return &User{Role: RoleUser, Status: UserActive, AllowedURLs: []string{}}
}

// Normalize trims the name and URLs and lower-cases the email.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for i, s := range u.AllowedURLs {
		u.AllowedURLs[i] = strings.TrimSpace(s)
	}
	if u.AllowedURLs == nil {
		u.AllowedURLs = []string{}
	}
}

// UserPatch carries the admin-editable fields of a user.  Password is
// handled by the caller because it must be hashed first.
type UserPatch struct {
	Name        *string     `json:"name"`
	Email       *string     `json:"email"`
	Password    *string     `json:"password"`
	Role        *Role       `json:"role"`
	Status      *UserStatus `json:"status"`
	AllowedURLs *[]string   `json:"allowedUrls"`
}

// Apply merges the non-nil patch fields other than Password into u.
func (up UserPatch) Apply(u *User) {
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Email != nil {
		u.Email = *up.Email
	}
	if up.Role != nil {
		u.Role = *up.Role
	}
	if up.Status != nil {
		u.Status = *up.Status
	}
	if up.AllowedURLs != nil {
		u.AllowedURLs = append([]string(nil), (*up.AllowedURLs)...)
	}
}

// RefreshToken models an entry in the `refresh_tokens` store.  Only the
// SHA-256 hash of the raw token is kept.
//
// Fields:
//
//	UserID    – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp of the token.
//	RevokedAt – when the token was revoked (nil while active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	UserID    string     `bson:"userId"`
	TokenHash string     `bson:"_id"`
	ExpiresAt time.Time  `bson:"expiresAt"`
	RevokedAt *time.Time `bson:"revokedAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt"`
}
