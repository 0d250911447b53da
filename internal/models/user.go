package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants
const (
	RoleMaster  = "master"
	RoleEditor  = "editor"
	RoleViewer  = "viewer"
	RolePending = "pending"
)

// Capability names what a role is allowed to do. Handlers check capabilities
// at the request boundary instead of comparing role strings inline.
type Capability string

const (
	CapManageUsers      Capability = "manage_users"
	CapManageProperties Capability = "manage_properties"
	CapDeleteProperties Capability = "delete_properties"
	CapViewProperties   Capability = "view_properties"
)

// roleCapabilities is the fixed role -> capability mapping.
var roleCapabilities = map[string][]Capability{
	RoleMaster:  {CapManageUsers, CapManageProperties, CapDeleteProperties, CapViewProperties},
	RoleEditor:  {CapManageProperties, CapViewProperties},
	RoleViewer:  {CapViewProperties},
	RolePending: {},
}

// RoleHas reports whether a role grants a capability.
func RoleHas(role string, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}

// User represents a user authenticated via OIDC.
type User struct {
	ID        uuid.UUID `json:"id"`
	Sub       string    `json:"sub"` // OIDC subject identifier
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	Role      string    `json:"role"` // master, editor, viewer, pending
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Can reports whether the user's role grants a capability.
func (u *User) Can(cap Capability) bool {
	return RoleHas(u.Role, cap)
}

// IsMaster returns true if the user has the master role.
func (u *User) IsMaster() bool {
	return u.Role == RoleMaster
}
