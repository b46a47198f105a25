package model

import (
	"strings"
	"time"
)

// RoleAdmin is the default role assigned at registration. Roles are a
// reserved tag for future authorization levels; nothing branches on them yet.
const RoleAdmin = "admin"

// AdminUser is an administrator account stored in the "adminuser" collection.
// Passwords are stored as bcrypt hashes and never serialized in responses.
type AdminUser struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Role         string     `json:"role" bson:"role"`
	Name         string     `json:"name" bson:"name"`
	LastLogin    *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

// DisplayNameFor derives a display name from the local part of an email
// address, used when registration omits an explicit name.
func DisplayNameFor(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
