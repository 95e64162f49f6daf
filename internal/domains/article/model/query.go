package model

import (
	"publishing-backend/internal/domains/article/policy"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 20
)

// ListQuery is the fully-resolved shape of a bulk read: caller filters
// plus the visibility predicate, normalized once and treated as
// immutable from here on. The storage layer only translates it.
type ListQuery struct {
	Page      int
	PageSize  int
	Ascending bool

	Keyword      string
	CategorySlug string
	TagSlug      string

	Predicate policy.ListPredicate
}

// NewListQuery normalizes raw caller input against a visibility
// predicate. Page and pageSize are clamped rather than rejected.
func NewListQuery(req ListArticlesRequest, pred policy.ListPredicate) ListQuery {
	page := req.Page
	if page < 1 {
		page = 1
	}

	size := req.PageSize
	switch {
	case size < 1:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	return ListQuery{
		Page:         page,
		PageSize:     size,
		Ascending:    req.IsAscending,
		Keyword:      req.Keyword,
		CategorySlug: req.CategorySlug,
		TagSlug:      req.TagSlug,
		Predicate:    pred,
	}
}

// Offset is the row window start for the current page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
