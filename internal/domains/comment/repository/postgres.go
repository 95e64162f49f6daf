package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"publishing-backend/internal/domains/comment/model"
)

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (id, content, article_id, user_id, parent_comment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		comment.ID, comment.Content, comment.ArticleID, comment.UserID, comment.ParentCommentID,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

func (r *postgresCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	query := `
		SELECT id, content, article_id, user_id, parent_comment_id, is_deleted, created_at, updated_at
		FROM comments
		WHERE id = $1`

	var comment model.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.Content, &comment.ArticleID, &comment.UserID,
		&comment.ParentCommentID, &comment.IsDeleted, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("query comment: %w", err)
	}

	return &comment, nil
}

func (r *postgresCommentRepository) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*model.CommentRow, error) {
	query := `
		SELECT c.id, c.content, c.article_id, c.user_id, c.parent_comment_id,
		       c.is_deleted, c.created_at, c.updated_at,
		       u.display_name, p.id, p.bio, p.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.user_id
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE c.article_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.pool.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var result []*model.CommentRow
	for rows.Next() {
		var cr model.CommentRow
		if err := rows.Scan(
			&cr.ID, &cr.Content, &cr.ArticleID, &cr.UserID, &cr.ParentCommentID,
			&cr.IsDeleted, &cr.CreatedAt, &cr.UpdatedAt,
			&cr.AuthorDisplayName, &cr.ProfileID, &cr.ProfileBio, &cr.ProfileAvatarURL,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		result = append(result, &cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return result, nil
}

func (r *postgresCommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE comments SET content = $2, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false`, id, content)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *postgresCommentRepository) Redact(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE comments SET content = $2, is_deleted = true, updated_at = NOW()
		WHERE id = $1 AND is_deleted = false`, id, model.RedactedContent)
	if err != nil {
		return fmt.Errorf("redact comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *postgresCommentRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}
