package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"publishing-backend/internal/shared/identity"
)

func principalWith(role identity.Role, id uuid.UUID) identity.Principal {
	return identity.Principal{UserID: id, Roles: []identity.Role{role}}
}

func TestCanView_VisibilityMatrix(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	published := Visibility{AuthorID: owner, IsPublished: true}
	draft := Visibility{AuthorID: owner, IsPublished: false}
	deleted := Visibility{AuthorID: owner, IsPublished: true, IsDeleted: true}

	tests := []struct {
		name      string
		visible   Visibility
		principal identity.Principal
		want      bool
	}{
		{"anonymous sees published", published, identity.AnonymousPrincipal(), true},
		{"anonymous denied draft", draft, identity.AnonymousPrincipal(), false},
		{"user sees published", published, principalWith(identity.RoleUser, other), true},
		{"user denied draft", draft, principalWith(identity.RoleUser, other), false},
		{"user denied deleted", deleted, principalWith(identity.RoleUser, other), false},
		{"author sees own draft", draft, principalWith(identity.RoleAuthor, owner), true},
		{"author denied foreign draft", draft, principalWith(identity.RoleAuthor, other), false},
		{"author sees foreign published", published, principalWith(identity.RoleAuthor, other), true},
		{"author denied own deleted", deleted, principalWith(identity.RoleAuthor, owner), false},
		{"admin sees draft", draft, principalWith(identity.RoleAdmin, other), true},
		{"admin sees deleted", deleted, principalWith(identity.RoleAdmin, other), true},
		{"superadmin sees deleted", deleted, principalWith(identity.RoleSuperAdmin, other), true},
		{"unknown role falls back to published-only", draft, identity.Principal{UserID: other, Roles: []identity.Role{identity.Role(99)}}, false},
		{"no roles falls back to published-only", draft, identity.Principal{UserID: other}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.visible, tt.principal))
		})
	}
}

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	published := Visibility{AuthorID: owner, IsPublished: true}
	deleted := Visibility{AuthorID: owner, IsDeleted: true}

	assert.True(t, CanModify(published, principalWith(identity.RoleAuthor, owner)))
	assert.True(t, CanModify(published, principalWith(identity.RoleUser, owner)), "ownership suffices regardless of role")
	assert.False(t, CanModify(published, principalWith(identity.RoleAuthor, other)), "author role without ownership is denied")
	assert.False(t, CanModify(published, identity.AnonymousPrincipal()))
	assert.True(t, CanModify(deleted, principalWith(identity.RoleAdmin, other)))
	assert.False(t, CanModify(deleted, principalWith(identity.RoleAuthor, owner)), "ownership does not reach through a soft delete")
}

func TestBuildListPredicate(t *testing.T) {
	authorID := uuid.New()

	t.Run("includeDeleted ignored for non-privileged", func(t *testing.T) {
		pred := BuildListPredicate(principalWith(identity.RoleUser, authorID), true)
		assert.False(t, pred.IncludeDeleted)
		assert.True(t, pred.PublishedOnly)
	})

	t.Run("includeDeleted ignored for author", func(t *testing.T) {
		pred := BuildListPredicate(principalWith(identity.RoleAuthor, authorID), true)
		assert.False(t, pred.IncludeDeleted)
		if assert.NotNil(t, pred.OwnerID) {
			assert.Equal(t, authorID, *pred.OwnerID)
		}
	})

	t.Run("includeDeleted honored for admin", func(t *testing.T) {
		pred := BuildListPredicate(principalWith(identity.RoleAdmin, authorID), true)
		assert.True(t, pred.IncludeDeleted)
		assert.False(t, pred.PublishedOnly)
		assert.Nil(t, pred.OwnerID)
	})

	t.Run("admin without includeDeleted sees live only", func(t *testing.T) {
		pred := BuildListPredicate(principalWith(identity.RoleAdmin, authorID), false)
		assert.False(t, pred.IncludeDeleted)
		assert.False(t, pred.Matches(Visibility{IsDeleted: true}))
	})

	t.Run("anonymous gets published-only", func(t *testing.T) {
		pred := BuildListPredicate(identity.AnonymousPrincipal(), false)
		assert.True(t, pred.PublishedOnly)
	})
}

func TestListPredicateMatchesAgreesWithCanView(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	principals := []identity.Principal{
		identity.AnonymousPrincipal(),
		principalWith(identity.RoleUser, other),
		principalWith(identity.RoleAuthor, owner),
		principalWith(identity.RoleAuthor, other),
		principalWith(identity.RoleAdmin, other),
		principalWith(identity.RoleSuperAdmin, other),
	}

	for _, p := range principals {
		for _, published := range []bool{true, false} {
			for _, del := range []bool{true, false} {
				v := Visibility{AuthorID: owner, IsPublished: published, IsDeleted: del}
				pred := BuildListPredicate(p, del)
				if !del {
					assert.Equal(t, CanView(v, p), pred.Matches(v),
						"row %+v principal roles %v", v, p.Roles)
				}
			}
		}
	}
}
