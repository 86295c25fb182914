package models

import (
	"time"

	"github.com/google/uuid"
)

// Role defines the user role type
type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleFaculty   Role = "FACULTY"
	RoleAuthority Role = "AUTHORITY"
	RoleAdmin     Role = "ADMIN"
)

// ParseRole converts a string into a Role, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleFaculty, RoleAuthority, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role is one of the known constants.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User defines the user model based on the 'users' table
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" example:"b21001@students.iitmandi.ac.in"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role" example:"STUDENT"`
	DisplayName  string    `json:"displayName" db:"display_name" example:"Asha Verma"`
	Department   *string   `json:"department,omitempty" db:"department"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
