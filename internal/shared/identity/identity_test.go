package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"user", RoleUser, true},
		{"author", RoleAuthor, true},
		{"admin", RoleAdmin, true},
		{"superadmin", RoleSuperAdmin, true},
		{"ADMIN", RoleAdmin, true},
		{"  author ", RoleAuthor, true},
		{"moderator", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.input)
		assert.Equal(t, tt.ok, ok, "input=%q", tt.input)
		assert.Equal(t, tt.want, got, "input=%q", tt.input)
	}
}

func TestHighest(t *testing.T) {
	tests := []struct {
		name  string
		roles []Role
		want  Role
	}{
		{"empty set fails closed to user", nil, RoleUser},
		{"single user", []Role{RoleUser}, RoleUser},
		{"author and user", []Role{RoleUser, RoleAuthor}, RoleAuthor},
		{"admin wins", []Role{RoleAuthor, RoleAdmin, RoleUser}, RoleAdmin},
		{"superadmin wins", []Role{RoleAdmin, RoleSuperAdmin}, RoleSuperAdmin},
		{"unknown value ignored", []Role{Role(99)}, RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highest(tt.roles))
		})
	}
}

func TestPrincipalEffectiveRole(t *testing.T) {
	anon := AnonymousPrincipal()
	assert.Equal(t, RoleUser, anon.EffectiveRole())
	assert.False(t, anon.Privileged())

	author := Principal{UserID: uuid.New(), Roles: []Role{RoleUser, RoleAuthor}}
	assert.Equal(t, RoleAuthor, author.EffectiveRole())
	assert.False(t, author.Privileged())

	admin := Principal{UserID: uuid.New(), Roles: []Role{RoleAdmin}}
	assert.True(t, admin.Privileged())

	// A caller with no recognizable roles gets published-only access.
	unknown := Principal{UserID: uuid.New(), Roles: nil}
	assert.Equal(t, RoleUser, unknown.EffectiveRole())
}

func TestRolePrivileged(t *testing.T) {
	assert.False(t, RoleUser.Privileged())
	assert.False(t, RoleAuthor.Privileged())
	assert.True(t, RoleAdmin.Privileged())
	assert.True(t, RoleSuperAdmin.Privileged())
}
