package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"publishing-backend/internal/domains/article/policy"
)

func TestNewListQuery_Clamping(t *testing.T) {
	pred := policy.ListPredicate{PublishedOnly: true}

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantPage int
		wantSize int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"negative page", -5, 10, 1, 10},
		{"oversized pageSize clamps to max", 1, 1000, 1, MaxPageSize},
		{"max is allowed", 3, MaxPageSize, 3, MaxPageSize},
		{"just over max clamps", 1, MaxPageSize + 1, 1, MaxPageSize},
		{"negative pageSize falls back to default", 1, -1, 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewListQuery(ListArticlesRequest{Page: tt.page, PageSize: tt.pageSize}, pred)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantSize, q.PageSize)
		})
	}
}

func TestListQuery_Offset(t *testing.T) {
	q := NewListQuery(ListArticlesRequest{Page: 3, PageSize: 10}, policy.ListPredicate{})
	assert.Equal(t, 20, q.Offset())

	q = NewListQuery(ListArticlesRequest{}, policy.ListPredicate{})
	assert.Equal(t, 0, q.Offset())
}

func TestNewListQuery_CarriesFiltersAndPredicate(t *testing.T) {
	pred := policy.ListPredicate{IncludeDeleted: true}
	req := ListArticlesRequest{
		Keyword:      "go",
		CategorySlug: "engineering",
		TagSlug:      "backend",
		IsAscending:  true,
	}

	q := NewListQuery(req, pred)
	assert.Equal(t, "go", q.Keyword)
	assert.Equal(t, "engineering", q.CategorySlug)
	assert.Equal(t, "backend", q.TagSlug)
	assert.True(t, q.Ascending)
	assert.Equal(t, pred, q.Predicate)
}
