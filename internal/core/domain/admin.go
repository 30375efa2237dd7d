package domain

import "time"

// Admin is a back-office principal. IsAdmin is the super flag: when set the
// permission gate admits the admin regardless of any route allow-list.
//
// RoleID is a weak reference to a Role; RoleName is resolved from it at
// lookup time so authorization never touches storage. A deleted role leaves
// RoleName empty, which denies every restricted route except to super admins.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	RoleID       string    `json:"roleId,omitempty"`
	RoleName     string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
