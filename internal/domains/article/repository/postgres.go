package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"publishing-backend/internal/domains/article/model"
	"publishing-backend/pkg/database"
)

type postgresArticleRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &postgresArticleRepository{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *postgresArticleRepository) Create(ctx context.Context, article *model.Article, tagIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO articles (id, title, slug, content, author_id, category_id,
			                      is_published, is_deleted, images, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8, NOW(), NOW())
			RETURNING created_at, updated_at`

		err := tx.QueryRow(ctx, query,
			article.ID, article.Title, article.Slug, article.Content,
			article.AuthorID, article.CategoryID, article.IsPublished,
			pq.Array(article.Images),
		).Scan(&article.CreatedAt, &article.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrSlugAlreadyExists
			}
			return fmt.Errorf("insert article: %w", err)
		}

		return insertTagLinks(ctx, tx, article.ID, tagIDs)
	})
}

func insertTagLinks(ctx context.Context, tx pgx.Tx, articleID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			articleID, tagID,
		); err != nil {
			return fmt.Errorf("link tag %s: %w", tagID, err)
		}
	}
	return nil
}

func (r *postgresArticleRepository) Update(ctx context.Context, article *model.Article) error {
	query := `
		UPDATE articles
		SET title = $2, slug = $3, content = $4, category_id = $5,
		    is_published = $6, images = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		article.ID, article.Title, article.Slug, article.Content,
		article.CategoryID, article.IsPublished, pq.Array(article.Images),
	).Scan(&article.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrArticleNotFound
		}
		if isUniqueViolation(err) {
			return model.ErrSlugAlreadyExists
		}
		return fmt.Errorf("update article: %w", err)
	}

	return nil
}

const articleRowColumns = `
	a.id, a.title, a.slug, a.content, a.author_id, a.category_id,
	a.is_published, a.is_deleted, a.images, a.created_at, a.updated_at,
	u.display_name, p.id, p.bio, p.avatar_url,
	c.name, c.slug`

const articleRowJoins = `
	FROM articles a
	JOIN users u ON u.id = a.author_id
	LEFT JOIN profiles p ON p.user_id = u.id
	JOIN categories c ON c.id = a.category_id`

func scanArticleRow(row pgx.Row) (*model.ArticleRow, error) {
	var ar model.ArticleRow
	err := row.Scan(
		&ar.ID, &ar.Title, &ar.Slug, &ar.Content, &ar.AuthorID, &ar.CategoryID,
		&ar.IsPublished, &ar.IsDeleted, pq.Array(&ar.Images), &ar.CreatedAt, &ar.UpdatedAt,
		&ar.AuthorDisplayName, &ar.ProfileID, &ar.ProfileBio, &ar.ProfileAvatarURL,
		&ar.CategoryName, &ar.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

func (r *postgresArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ArticleRow, error) {
	return r.getBy(ctx, "a.id = $1", id)
}

func (r *postgresArticleRepository) GetBySlug(ctx context.Context, slug string) (*model.ArticleRow, error) {
	return r.getBy(ctx, "a.slug = $1", slug)
}

func (r *postgresArticleRepository) getBy(ctx context.Context, cond string, arg interface{}) (*model.ArticleRow, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE %s", articleRowColumns, articleRowJoins, cond)

	row, err := scanArticleRow(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArticleNotFound
		}
		return nil, fmt.Errorf("query article: %w", err)
	}

	tagsByArticle, err := r.tagsForArticles(ctx, []uuid.UUID{row.ID})
	if err != nil {
		return nil, err
	}
	row.Tags = tagsByArticle[row.ID]

	return row, nil
}

// List counts matches first, then reads one page. The count runs on the
// same WHERE clause, so totals always agree with the window.
func (r *postgresArticleRepository) List(ctx context.Context, q model.ListQuery) ([]*model.ArticleRow, int, error) {
	whereClause, args := buildWhereClause(q)

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", articleRowJoins, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	direction := "DESC"
	if q.Ascending {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE %s
		ORDER BY a.created_at %s, a.id %s
		LIMIT $%d OFFSET $%d`,
		articleRowColumns, articleRowJoins, whereClause,
		direction, direction, len(args)+1, len(args)+2)
	args = append(args, q.PageSize, q.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var result []*model.ArticleRow
	for rows.Next() {
		ar, err := scanArticleRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan article: %w", err)
		}
		result = append(result, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate articles: %w", err)
	}

	if err := r.attachTags(ctx, result); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func buildWhereClause(q model.ListQuery) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if !q.Predicate.IncludeDeleted {
		conditions = append(conditions, "a.is_deleted = false")
	}

	switch {
	case q.Predicate.OwnerID != nil:
		conditions = append(conditions, fmt.Sprintf("(a.is_published = true OR a.author_id = $%d)", argIndex))
		args = append(args, *q.Predicate.OwnerID)
		argIndex++
	case q.Predicate.PublishedOnly:
		conditions = append(conditions, "a.is_published = true")
	}

	if q.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(a.title ILIKE $%d OR a.content ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+q.Keyword+"%")
		argIndex++
	}

	if q.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argIndex))
		args = append(args, q.CategorySlug)
		argIndex++
	}

	if q.TagSlug != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM article_tags at
			JOIN tags t ON t.id = at.tag_id
			WHERE at.article_id = a.id AND t.slug = $%d AND t.is_deleted = false)`, argIndex))
		args = append(args, q.TagSlug)
		argIndex++
	}

	if len(conditions) == 0 {
		conditions = append(conditions, "true")
	}

	return strings.Join(conditions, " AND "), args
}

func (r *postgresArticleRepository) attachTags(ctx context.Context, rows []*model.ArticleRow) error {
	if len(rows) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	tagsByArticle, err := r.tagsForArticles(ctx, ids)
	if err != nil {
		return err
	}

	for _, row := range rows {
		row.Tags = tagsByArticle[row.ID]
	}

	return nil
}

func (r *postgresArticleRepository) tagsForArticles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]model.TagRef, error) {
	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	rows, err := r.pool.Query(ctx, `
		SELECT at.article_id, t.id, t.name, t.slug, t.is_deleted
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1::uuid[])
		ORDER BY t.name`, idStrings)
	if err != nil {
		return nil, fmt.Errorf("query article tags: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]model.TagRef, len(ids))
	for rows.Next() {
		var articleID uuid.UUID
		var tag model.TagRef
		if err := rows.Scan(&articleID, &tag.ID, &tag.Name, &tag.Slug, &tag.IsDeleted); err != nil {
			return nil, fmt.Errorf("scan article tag: %w", err)
		}
		result[articleID] = append(result[articleID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate article tags: %w", err)
	}

	return result, nil
}

func (r *postgresArticleRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE articles SET is_deleted = $2, updated_at = NOW()
		WHERE id = $1 AND is_deleted = NOT $2`, id, deleted)
	if err != nil {
		return fmt.Errorf("set deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrArticleNotFound
	}
	return nil
}

// HardDelete removes the article and everything hanging off it.
// Comment rows go too; their children are promoted at read time.
func (r *postgresArticleRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE article_id = $1`, id); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM article_tags WHERE article_id = $1`, id); err != nil {
			return fmt.Errorf("delete tag links: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrArticleNotFound
		}
		return nil
	})
}

func (r *postgresArticleRepository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND is_deleted = false)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return exists, nil
}

func (r *postgresArticleRepository) LiveTagIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id FROM tags WHERE id = ANY($1::uuid[]) AND is_deleted = false`, idStrings)
	if err != nil {
		return nil, fmt.Errorf("query live tags: %w", err)
	}

	live, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect live tags: %w", err)
	}

	return live, nil
}

func (r *postgresArticleRepository) TagIDsForArticle(ctx context.Context, articleID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT tag_id FROM article_tags WHERE article_id = $1`, articleID)
	if err != nil {
		return nil, fmt.Errorf("query article tag ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect article tag ids: %w", err)
	}

	return ids, nil
}

func (r *postgresArticleRepository) ApplyTagDelta(ctx context.Context, articleID uuid.UUID, add, remove []uuid.UUID) error {
	if len(add) == 0 && len(remove) == 0 {
		return nil
	}

	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if len(remove) > 0 {
			idStrings := make([]string, 0, len(remove))
			for _, id := range remove {
				idStrings = append(idStrings, id.String())
			}
			if _, err := tx.Exec(ctx,
				`DELETE FROM article_tags WHERE article_id = $1 AND tag_id = ANY($2::uuid[])`,
				articleID, idStrings,
			); err != nil {
				return fmt.Errorf("remove tag links: %w", err)
			}
		}

		return insertTagLinks(ctx, tx, articleID, add)
	})
}
