package policy

import (
	"github.com/google/uuid"

	"publishing-backend/internal/shared/identity"
)

// Visibility is the slice of an article the policy decides over.
type Visibility struct {
	AuthorID    uuid.UUID
	IsPublished bool
	IsDeleted   bool
}

// Predicate is a pure visibility rule over a single resource.
type Predicate func(Visibility) bool

// And combines predicates by conjunction.
func And(preds ...Predicate) Predicate {
	return func(v Visibility) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// DeletionVisible is the soft-delete stage: deleted rows are visible
// to privileged callers only.
func DeletionVisible(p identity.Principal) Predicate {
	return func(v Visibility) bool {
		return !v.IsDeleted || p.Privileged()
	}
}

// PublishVisible is the publish-state stage. Unknown or absent roles
// collapse to published-only: the default is fail-closed, never open.
func PublishVisible(p identity.Principal) Predicate {
	role := p.EffectiveRole()
	return func(v Visibility) bool {
		switch {
		case role.Privileged():
			return true
		case role == identity.RoleAuthor:
			return v.IsPublished || (!p.Anonymous && v.AuthorID == p.UserID)
		default:
			return v.IsPublished
		}
	}
}

// CanView reports whether the caller may read the resource.
// The two stages are independent and combined by conjunction.
func CanView(v Visibility, p identity.Principal) bool {
	return And(DeletionVisible(p), PublishVisible(p))(v)
}

// CanModify reports whether the caller may mutate the resource.
// Only exact ownership or a privileged role is sufficient; AUTHOR
// without ownership is denied even for published articles. Ownership
// does not reach through a soft delete the owner cannot see.
func CanModify(v Visibility, p identity.Principal) bool {
	if p.Privileged() {
		return true
	}
	if p.Anonymous || v.IsDeleted {
		return false
	}
	return v.AuthorID == p.UserID
}

// ListPredicate is the immutable visibility filter for bulk queries.
// The storage layer translates it to SQL; Matches gives the same
// decision in memory for a single row.
type ListPredicate struct {
	// IncludeDeleted widens the filter to soft-deleted rows.
	// Only ever true for privileged callers.
	IncludeDeleted bool

	// PublishedOnly restricts to published articles.
	PublishedOnly bool

	// OwnerID, when set, widens PublishedOnly to
	// (author = owner) OR published. Set for AUTHOR callers.
	OwnerID *uuid.UUID
}

// BuildListPredicate derives the bulk filter for a caller.
// includeDeleted is honored only for privileged roles; everyone else
// gets it silently ignored.
func BuildListPredicate(p identity.Principal, includeDeleted bool) ListPredicate {
	role := p.EffectiveRole()

	pred := ListPredicate{
		IncludeDeleted: includeDeleted && role.Privileged(),
	}

	switch {
	case role.Privileged():
		// No publish or ownership restriction.
	case role == identity.RoleAuthor && !p.Anonymous:
		owner := p.UserID
		pred.OwnerID = &owner
	default:
		pred.PublishedOnly = true
	}

	return pred
}

// Matches evaluates the predicate against a single row.
func (lp ListPredicate) Matches(v Visibility) bool {
	if v.IsDeleted && !lp.IncludeDeleted {
		return false
	}
	if lp.OwnerID != nil {
		return v.IsPublished || v.AuthorID == *lp.OwnerID
	}
	if lp.PublishedOnly {
		return v.IsPublished
	}
	return true
}
