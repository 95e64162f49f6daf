package model

import (
	"time"

	"github.com/google/uuid"

	usermodel "publishing-backend/internal/domains/user/model"
)

// RedactedContent replaces the body of a soft-deleted comment. The row
// itself stays so that replies keep their place in the thread.
const RedactedContent = "[deleted]"

// Comment maps 1:1 to the comments table.
type Comment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Content         string     `db:"content" json:"content"`
	ArticleID       uuid.UUID  `db:"article_id" json:"articleId"`
	UserID          uuid.UUID  `db:"user_id" json:"userId"`
	ParentCommentID *uuid.UUID `db:"parent_comment_id" json:"parentCommentId"`
	IsDeleted       bool       `db:"is_deleted" json:"-"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}

// CommentRow is the comment joined with its author and the author's
// optional profile.
type CommentRow struct {
	Comment

	AuthorDisplayName string
	ProfileID         *uuid.UUID
	ProfileBio        *string
	ProfileAvatarURL  *string
}

// User assembles the embedded author summary.
func (r *CommentRow) User() usermodel.UserSummary {
	summary := usermodel.UserSummary{
		ID:          r.UserID,
		DisplayName: r.AuthorDisplayName,
	}
	if r.ProfileID != nil {
		summary.Profile = &usermodel.ProfileSummary{
			Bio:       r.ProfileBio,
			AvatarURL: r.ProfileAvatarURL,
		}
	}
	return summary
}
