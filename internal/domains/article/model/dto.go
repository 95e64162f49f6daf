package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	usermodel "publishing-backend/internal/domains/user/model"
	"publishing-backend/internal/shared/utils"
)

type CreateArticleRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content"`
	CategoryID  string   `json:"categoryId"`
	IsPublished bool     `json:"isPublished"`
	TagIDs      []string `json:"tagIds"`
	Images      []string `json:"images"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&r.Slug, validation.By(validateOptionalSlug)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.CategoryID, validation.Required, validation.By(validateUUID)),
		validation.Field(&r.TagIDs, validation.Each(validation.By(validateUUID))),
	)
}

// UpdateArticleRequest uses pointers so absent fields stay untouched.
// A present tagIds always replaces the full tag set.
type UpdateArticleRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Content     *string   `json:"content"`
	CategoryID  *string   `json:"categoryId"`
	IsPublished *bool     `json:"isPublished"`
	TagIDs      *[]string `json:"tagIds"`
	Images      *[]string `json:"images"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(3, 200)),
		validation.Field(&r.Slug, validation.By(validateOptionalSlugPtr)),
		validation.Field(&r.CategoryID, validation.By(validateUUIDPtr)),
	)
}

type ListArticlesRequest struct {
	Page           int    `form:"page"`
	PageSize       int    `form:"pageSize"`
	IsAscending    bool   `form:"isAscending"`
	Keyword        string `form:"keyword"`
	CategorySlug   string `form:"categorySlug"`
	TagSlug        string `form:"tagSlug"`
	IncludeDeleted bool   `form:"includeDeleted"`
}

func validateOptionalSlug(value interface{}) error {
	slug, _ := value.(string)
	if slug == "" {
		return nil
	}
	if !utils.IsValidSlug(slug) {
		return validation.NewError("validation_slug", "must contain only lowercase letters, digits and hyphens")
	}
	return nil
}

func validateOptionalSlugPtr(value interface{}) error {
	slug, ok := value.(*string)
	if !ok || slug == nil {
		return nil
	}
	return validateOptionalSlug(*slug)
}

func validateUUID(value interface{}) error {
	s, _ := value.(string)
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}

func validateUUIDPtr(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	return validateUUID(*s)
}

type TagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ArticleResponse is the aggregate read payload.
type ArticleResponse struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Slug        string                `json:"slug"`
	Content     string                `json:"content"`
	IsPublished bool                  `json:"isPublished"`
	IsDeleted   bool                  `json:"isDeleted"`
	Author      usermodel.UserSummary `json:"author"`
	Category    CategoryResponse      `json:"category"`
	Tags        []TagResponse         `json:"tags"`
	Images      []string              `json:"images"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

type ArticleListResponse struct {
	Items       []ArticleResponse `json:"items"`
	CurrentPage int               `json:"currentPage"`
	PageSize    int               `json:"pageSize"`
	TotalCount  int               `json:"totalCount"`
	IsAscending bool              `json:"isAscending"`
}
