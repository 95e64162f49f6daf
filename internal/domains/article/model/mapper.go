package model

import (
	usermodel "publishing-backend/internal/domains/user/model"
)

// ToArticleResponse assembles the aggregate payload from a joined row.
// Soft-deleted tags are dropped, a missing author profile stays nil,
// and Tags and Images always serialize as arrays, never null.
func ToArticleResponse(row *ArticleRow) ArticleResponse {
	author := usermodel.UserSummary{
		ID:          row.AuthorID,
		DisplayName: row.AuthorDisplayName,
	}
	if row.ProfileID != nil {
		author.Profile = &usermodel.ProfileSummary{
			Bio:       row.ProfileBio,
			AvatarURL: row.ProfileAvatarURL,
		}
	}

	tags := make([]TagResponse, 0, len(row.Tags))
	for _, t := range row.Tags {
		if t.IsDeleted {
			continue
		}
		tags = append(tags, TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}

	images := row.Images
	if images == nil {
		images = []string{}
	}

	return ArticleResponse{
		ID:          row.ID,
		Title:       row.Title,
		Slug:        row.Slug,
		Content:     row.Content,
		IsPublished: row.IsPublished,
		IsDeleted:   row.IsDeleted,
		Author:      author,
		Category: CategoryResponse{
			ID:   row.CategoryID,
			Name: row.CategoryName,
			Slug: row.CategorySlug,
		},
		Tags:      tags,
		Images:    images,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// ToArticleListResponse maps a page of rows plus the pre-window total.
func ToArticleListResponse(rows []*ArticleRow, q ListQuery, total int) ArticleListResponse {
	items := make([]ArticleResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToArticleResponse(row))
	}

	return ArticleListResponse{
		Items:       items,
		CurrentPage: q.Page,
		PageSize:    q.PageSize,
		TotalCount:  total,
		IsAscending: q.Ascending,
	}
}
