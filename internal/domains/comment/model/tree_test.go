package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id uuid.UUID, parent *uuid.UUID, content string, createdAt time.Time) *CommentRow {
	return &CommentRow{
		Comment: Comment{
			ID:              id,
			Content:         content,
			ArticleID:       uuid.Nil,
			UserID:          uuid.New(),
			ParentCommentID: parent,
			CreatedAt:       createdAt,
		},
		AuthorDisplayName: "someone",
	}
}

func TestBuildTree_NestsChildren(t *testing.T) {
	base := time.Now()
	c1 := uuid.New()
	c2 := uuid.New()
	c3 := uuid.New()
	c4 := uuid.New()

	// 1 and 4 are roots; 2 replies to 1; 3 replies to 2.
	rows := []*CommentRow{
		row(c1, nil, "first", base),
		row(c2, &c1, "reply to first", base.Add(time.Minute)),
		row(c3, &c2, "reply to reply", base.Add(2*time.Minute)),
		row(c4, nil, "second thread", base.Add(3*time.Minute)),
	}

	roots := BuildTree(rows)
	require.Len(t, roots, 2)
	assert.Equal(t, c1, roots[0].ID)
	assert.Equal(t, c4, roots[1].ID)

	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, c2, roots[0].Children[0].ID)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, c3, roots[0].Children[0].Children[0].ID)
}

func TestBuildTree_PromotesOrphans(t *testing.T) {
	missingParent := uuid.New()
	orphan := uuid.New()

	rows := []*CommentRow{
		row(orphan, &missingParent, "parent is gone", time.Now()),
	}

	roots := BuildTree(rows)
	require.Len(t, roots, 1)
	assert.Equal(t, orphan, roots[0].ID)
	assert.Empty(t, roots[0].Children)
}

func TestBuildTree_ChildBeforeParentInInput(t *testing.T) {
	parent := uuid.New()
	child := uuid.New()

	rows := []*CommentRow{
		row(child, &parent, "reply", time.Now()),
		row(parent, nil, "late parent", time.Now()),
	}

	roots := BuildTree(rows)
	require.Len(t, roots, 1)
	assert.Equal(t, parent, roots[0].ID)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, child, roots[0].Children[0].ID)
}

func TestBuildTree_SiblingsKeepInputOrder(t *testing.T) {
	root := uuid.New()
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	rows := []*CommentRow{
		row(root, nil, "root", time.Now()),
		row(a, &root, "a", time.Now()),
		row(b, &root, "b", time.Now()),
		row(c, &root, "c", time.Now()),
	}

	roots := BuildTree(rows)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 3)
	assert.Equal(t, a, roots[0].Children[0].ID)
	assert.Equal(t, b, roots[0].Children[1].ID)
	assert.Equal(t, c, roots[0].Children[2].ID)
}

func TestBuildTree_RedactsDeletedContent(t *testing.T) {
	redacted := row(uuid.New(), nil, "original words", time.Now())
	redacted.IsDeleted = true

	roots := BuildTree([]*CommentRow{redacted})
	require.Len(t, roots, 1)
	assert.Equal(t, RedactedContent, roots[0].Content)
}

func TestBuildTree_EmptyInput(t *testing.T) {
	roots := BuildTree(nil)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}
