package repository

import (
	"context"

	"github.com/google/uuid"

	"publishing-backend/internal/domains/article/model"
)

type ArticleRepository interface {
	// Create inserts the article and its tag links in one transaction.
	// A slug collision rolls back the whole insert.
	Create(ctx context.Context, article *model.Article, tagIDs []uuid.UUID) error
	Update(ctx context.Context, article *model.Article) error

	// GetByID and GetBySlug return soft-deleted rows too; visibility
	// is the service's decision, not the storage layer's.
	GetByID(ctx context.Context, id uuid.UUID) (*model.ArticleRow, error)
	GetBySlug(ctx context.Context, slug string) (*model.ArticleRow, error)

	List(ctx context.Context, q model.ListQuery) ([]*model.ArticleRow, int, error)

	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error
	HardDelete(ctx context.Context, id uuid.UUID) error

	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)

	// LiveTagIDs filters the given set down to tags that exist and are
	// not soft-deleted.
	LiveTagIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	TagIDsForArticle(ctx context.Context, articleID uuid.UUID) ([]uuid.UUID, error)

	// ApplyTagDelta adds and removes tag links in one transaction.
	ApplyTagDelta(ctx context.Context, articleID uuid.UUID, add, remove []uuid.UUID) error
}
