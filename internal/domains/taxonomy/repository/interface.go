package repository

import (
	"context"

	"github.com/google/uuid"

	"publishing-backend/internal/domains/taxonomy/model"
)

type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	SoftDeleteCategory(ctx context.Context, id uuid.UUID) error

	ListTags(ctx context.Context) ([]model.Tag, error)
	CreateTag(ctx context.Context, tag *model.Tag) error
	SoftDeleteTag(ctx context.Context, id uuid.UUID) error
}
