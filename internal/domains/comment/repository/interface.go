package repository

import (
	"context"

	"github.com/google/uuid"

	"publishing-backend/internal/domains/comment/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// ListByArticle returns every surviving comment of an article,
	// redacted rows included, ordered by creation time then id.
	ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*model.CommentRow, error)

	UpdateContent(ctx context.Context, id uuid.UUID, content string) error

	// Redact soft-deletes: the stored content becomes the sentinel and
	// the row survives.
	Redact(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}
