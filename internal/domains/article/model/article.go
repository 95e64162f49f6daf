package model

import (
	"time"

	"github.com/google/uuid"

	"publishing-backend/internal/domains/article/policy"
)

// Article maps 1:1 to the articles table.
type Article struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Content     string    `db:"content" json:"content"`
	AuthorID    uuid.UUID `db:"author_id" json:"authorId"`
	CategoryID  uuid.UUID `db:"category_id" json:"categoryId"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	IsDeleted   bool      `db:"is_deleted" json:"-"`
	Images      []string  `db:"images" json:"images"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// Visibility projects the fields the access policy decides over.
func (a *Article) Visibility() policy.Visibility {
	return policy.Visibility{
		AuthorID:    a.AuthorID,
		IsPublished: a.IsPublished,
		IsDeleted:   a.IsDeleted,
	}
}

// TagRef is a tag as attached to an article. IsDeleted is carried so
// the mapper can drop soft-deleted tags from read payloads.
type TagRef struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	IsDeleted bool
}

// ArticleRow is the joined read shape: the article plus its author,
// optional author profile, category and tag set. ProfileID is nil when
// the author never created a profile.
type ArticleRow struct {
	Article

	AuthorDisplayName string
	ProfileID         *uuid.UUID
	ProfileBio        *string
	ProfileAvatarURL  *string

	CategoryName string
	CategorySlug string

	Tags []TagRef
}
