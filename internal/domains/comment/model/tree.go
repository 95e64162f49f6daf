package model

import (
	"time"

	"github.com/google/uuid"

	usermodel "publishing-backend/internal/domains/user/model"
)

// CommentNode is one node of the assembled thread.
type CommentNode struct {
	ID        uuid.UUID             `json:"id"`
	Content   string                `json:"content"`
	User      usermodel.UserSummary `json:"user"`
	CreatedAt time.Time             `json:"createdAt"`
	Children  []*CommentNode        `json:"children"`
}

// BuildTree assembles a flat comment slice into a forest. Siblings
// keep the input order, so callers control ordering by sorting the
// rows before assembly. A comment whose parent is absent from the
// input (permanently deleted) is promoted to a root rather than
// dropped: no node in the input ever disappears from the output.
func BuildTree(rows []*CommentRow) []*CommentNode {
	nodes := make(map[uuid.UUID]*CommentNode, len(rows))
	for _, row := range rows {
		content := row.Content
		if row.IsDeleted {
			content = RedactedContent
		}
		nodes[row.ID] = &CommentNode{
			ID:        row.ID,
			Content:   content,
			User:      row.User(),
			CreatedAt: row.CreatedAt,
			Children:  []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0, len(rows))
	for _, row := range rows {
		node := nodes[row.ID]
		if row.ParentCommentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*row.ParentCommentID]
		if !ok {
			// Orphan: the parent row is gone for good.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots
}
