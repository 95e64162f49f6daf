package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"publishing-backend/internal/domains/article/policy"
)

func sampleRow() *ArticleRow {
	return &ArticleRow{
		Article: Article{
			ID:          uuid.New(),
			Title:       "Profiling Go services",
			Slug:        "profiling-go-services",
			Content:     "body",
			AuthorID:    uuid.New(),
			CategoryID:  uuid.New(),
			IsPublished: true,
		},
		AuthorDisplayName: "ana",
		CategoryName:      "Engineering",
		CategorySlug:      "engineering",
	}
}

func TestToArticleResponse_NilProfileStaysNil(t *testing.T) {
	row := sampleRow()
	resp := ToArticleResponse(row)

	assert.Nil(t, resp.Author.Profile)
	assert.Equal(t, row.AuthorID, resp.Author.ID)
	assert.Equal(t, "ana", resp.Author.DisplayName)
}

func TestToArticleResponse_ProfilePresent(t *testing.T) {
	row := sampleRow()
	profileID := uuid.New()
	bio := "writes about Go"
	row.ProfileID = &profileID
	row.ProfileBio = &bio

	resp := ToArticleResponse(row)
	if assert.NotNil(t, resp.Author.Profile) {
		assert.Equal(t, &bio, resp.Author.Profile.Bio)
		assert.Nil(t, resp.Author.Profile.AvatarURL)
	}
}

func TestToArticleResponse_ExcludesDeletedTags(t *testing.T) {
	row := sampleRow()
	row.Tags = []TagRef{
		{ID: uuid.New(), Name: "Go", Slug: "go"},
		{ID: uuid.New(), Name: "Legacy", Slug: "legacy", IsDeleted: true},
		{ID: uuid.New(), Name: "Backend", Slug: "backend"},
	}

	resp := ToArticleResponse(row)
	assert.Len(t, resp.Tags, 2)
	assert.Equal(t, "go", resp.Tags[0].Slug)
	assert.Equal(t, "backend", resp.Tags[1].Slug)
}

func TestToArticleResponse_EmptyCollectionsNotNull(t *testing.T) {
	resp := ToArticleResponse(sampleRow())

	assert.NotNil(t, resp.Tags)
	assert.NotNil(t, resp.Images)
	assert.Empty(t, resp.Tags)
	assert.Empty(t, resp.Images)
}

func TestToArticleListResponse(t *testing.T) {
	q := NewListQuery(ListArticlesRequest{Page: 2, PageSize: 5, IsAscending: true}, policy.ListPredicate{})
	resp := ToArticleListResponse([]*ArticleRow{sampleRow(), sampleRow()}, q, 42)

	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 5, resp.PageSize)
	assert.Equal(t, 42, resp.TotalCount)
	assert.True(t, resp.IsAscending)
}
