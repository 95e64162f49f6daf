package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"publishing-backend/internal/domains/taxonomy/model"
)

type postgresTaxonomyRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTaxonomyRepository(pool *pgxpool.Pool) TaxonomyRepository {
	return &postgresTaxonomyRepository{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *postgresTaxonomyRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, is_deleted, created_at, updated_at
		FROM categories
		WHERE is_deleted = false
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Category])
	if err != nil {
		return nil, fmt.Errorf("collect categories: %w", err)
	}

	return categories, nil
}

func (r *postgresTaxonomyRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at`,
		category.ID, category.Name, category.Slug,
	).Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *postgresTaxonomyRepository) SoftDeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET is_deleted = true, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresTaxonomyRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, is_deleted, created_at, updated_at
		FROM tags
		WHERE is_deleted = false
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Tag])
	if err != nil {
		return nil, fmt.Errorf("collect tags: %w", err)
	}

	return tags, nil
}

func (r *postgresTaxonomyRepository) CreateTag(ctx context.Context, t *model.Tag) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tags (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at`,
		t.ID, t.Name, t.Slug,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrTagAlreadyExists
		}
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

func (r *postgresTaxonomyRepository) SoftDeleteTag(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tags SET is_deleted = true, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTagNotFound
	}
	return nil
}
