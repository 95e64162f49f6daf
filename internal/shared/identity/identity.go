package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the closed set of roles a caller may hold.
// Ordering matters: a higher value means more privilege.
type Role int

const (
	RoleUser Role = iota + 1
	RoleAuthor
	RoleAdmin
	RoleSuperAdmin
)

var roleNames = map[Role]string{
	RoleUser:       "user",
	RoleAuthor:     "author",
	RoleAdmin:      "admin",
	RoleSuperAdmin: "superadmin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Privileged reports whether the role is exempt from ownership and
// publish-state restrictions. ADMIN and SUPERADMIN are equivalent here.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// ParseRole maps a stored role name to a Role.
// Unknown names yield (0, false) so callers fall back to the most
// restrictive behavior instead of an open one.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, true
	case "author":
		return RoleAuthor, true
	case "admin":
		return RoleAdmin, true
	case "superadmin":
		return RoleSuperAdmin, true
	default:
		return 0, false
	}
}

// ParseRoles converts a list of role names, dropping unknown entries.
func ParseRoles(names []string) []Role {
	roles := make([]Role, 0, len(names))
	for _, name := range names {
		if r, ok := ParseRole(name); ok {
			roles = append(roles, r)
		}
	}
	return roles
}

// Highest returns the most privileged role in the set.
// An empty or all-unknown set collapses to RoleUser: absent or
// unrecognized roles never grant more than published-only access.
func Highest(roles []Role) Role {
	highest := RoleUser
	for _, r := range roles {
		if _, ok := roleNames[r]; !ok {
			continue
		}
		if r > highest {
			highest = r
		}
	}
	return highest
}

// Principal identifies the caller of a request.
// Anonymous principals come from public read paths with no credential.
type Principal struct {
	UserID    uuid.UUID
	Roles     []Role
	Anonymous bool
}

// AnonymousPrincipal is the caller used on public paths without a token.
func AnonymousPrincipal() Principal {
	return Principal{Anonymous: true}
}

// EffectiveRole is the single role used for policy decisions.
func (p Principal) EffectiveRole() Role {
	if p.Anonymous {
		return RoleUser
	}
	return Highest(p.Roles)
}

// Privileged reports whether the caller holds ADMIN or SUPERADMIN.
func (p Principal) Privileged() bool {
	return p.EffectiveRole().Privileged()
}
