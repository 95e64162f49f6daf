package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	articlemodel "publishing-backend/internal/domains/article/model"
	"publishing-backend/internal/domains/comment/model"
	"publishing-backend/internal/domains/comment/repository"
	"publishing-backend/internal/infrastructure/audit"
	"publishing-backend/internal/shared/identity"
)

type fakeArticles struct {
	rows map[uuid.UUID]*articlemodel.ArticleRow
}

func (f *fakeArticles) GetByID(_ context.Context, id uuid.UUID) (*articlemodel.ArticleRow, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, articlemodel.ErrArticleNotFound
	}
	return row, nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*model.Comment
	order    []uuid.UUID
}

var _ repository.CommentRepository = (*fakeCommentRepo)(nil)

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*model.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *model.Comment) error {
	c.CreatedAt = time.Now()
	f.comments[c.ID] = c
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommentRepo) ListByArticle(_ context.Context, articleID uuid.UUID) ([]*model.CommentRow, error) {
	var rows []*model.CommentRow
	for _, id := range f.order {
		c := f.comments[id]
		if c.ArticleID == articleID {
			rows = append(rows, &model.CommentRow{Comment: *c, AuthorDisplayName: "someone"})
		}
	}
	return rows, nil
}

func (f *fakeCommentRepo) UpdateContent(_ context.Context, id uuid.UUID, content string) error {
	c, ok := f.comments[id]
	if !ok || c.IsDeleted {
		return model.ErrCommentNotFound
	}
	c.Content = content
	return nil
}

func (f *fakeCommentRepo) Redact(_ context.Context, id uuid.UUID) error {
	c, ok := f.comments[id]
	if !ok || c.IsDeleted {
		return model.ErrCommentNotFound
	}
	c.IsDeleted = true
	c.Content = model.RedactedContent
	return nil
}

func (f *fakeCommentRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.comments[id]; !ok {
		return model.ErrCommentNotFound
	}
	delete(f.comments, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func seedSetup(published bool) (*fakeCommentRepo, *fakeArticles, uuid.UUID) {
	articleID := uuid.New()
	articles := &fakeArticles{rows: map[uuid.UUID]*articlemodel.ArticleRow{
		articleID: {Article: articlemodel.Article{
			ID:          articleID,
			AuthorID:    uuid.New(),
			IsPublished: published,
		}},
	}}
	return newFakeCommentRepo(), articles, articleID
}

func member(role identity.Role) identity.Principal {
	return identity.Principal{UserID: uuid.New(), Roles: []identity.Role{role}}
}

func TestCreate_AnonymousDenied(t *testing.T) {
	repo, articles, articleID := seedSetup(true)
	svc := NewCommentService(repo, articles, audit.Nop())

	_, err := svc.Create(context.Background(), identity.AnonymousPrincipal(), articleID, model.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, model.ErrAccessDenied)
}

func TestCreate_InvisibleArticleReadsAsNotFound(t *testing.T) {
	repo, articles, articleID := seedSetup(false)
	svc := NewCommentService(repo, articles, audit.Nop())

	_, err := svc.Create(context.Background(), member(identity.RoleUser), articleID, model.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, articlemodel.ErrArticleNotFound)
}

func TestCreate_ParentChecks(t *testing.T) {
	repo, articles, articleID := seedSetup(true)
	svc := NewCommentService(repo, articles, audit.Nop())
	caller := member(identity.RoleUser)

	parent, err := svc.Create(context.Background(), caller, articleID, model.CreateCommentRequest{Content: "root"})
	require.NoError(t, err)

	t.Run("reply to live parent", func(t *testing.T) {
		pid := parent.ID.String()
		reply, err := svc.Create(context.Background(), caller, articleID, model.CreateCommentRequest{Content: "reply", ParentCommentID: &pid})
		require.NoError(t, err)
		require.NotNil(t, reply.ParentCommentID)
		assert.Equal(t, parent.ID, *reply.ParentCommentID)
	})

	t.Run("reply to missing parent", func(t *testing.T) {
		pid := uuid.NewString()
		_, err := svc.Create(context.Background(), caller, articleID, model.CreateCommentRequest{Content: "reply", ParentCommentID: &pid})
		assert.ErrorIs(t, err, model.ErrParentNotFound)
	})

	t.Run("reply to parent on another article", func(t *testing.T) {
		otherArticle := uuid.New()
		articles.rows[otherArticle] = &articlemodel.ArticleRow{Article: articlemodel.Article{
			ID: otherArticle, AuthorID: uuid.New(), IsPublished: true,
		}}
		pid := parent.ID.String()
		_, err := svc.Create(context.Background(), caller, otherArticle, model.CreateCommentRequest{Content: "reply", ParentCommentID: &pid})
		assert.ErrorIs(t, err, model.ErrParentMismatch)
	})

	t.Run("reply to redacted parent", func(t *testing.T) {
		require.NoError(t, svc.Redact(context.Background(), caller, parent.ID))
		pid := parent.ID.String()
		_, err := svc.Create(context.Background(), caller, articleID, model.CreateCommentRequest{Content: "reply", ParentCommentID: &pid})
		assert.ErrorIs(t, err, model.ErrReplyToRedacted)
	})
}

func TestListByArticle_AssemblesTreeWithRedaction(t *testing.T) {
	repo, articles, articleID := seedSetup(true)
	svc := NewCommentService(repo, articles, audit.Nop())
	caller := member(identity.RoleUser)

	root, err := svc.Create(context.Background(), caller, articleID, model.CreateCommentRequest{Content: "root"})
	require.NoError(t, err)
	pid := root.ID.String()
	_, err = svc.Create(context.Background(), caller, articleID, model.CreateCommentRequest{Content: "reply", ParentCommentID: &pid})
	require.NoError(t, err)

	require.NoError(t, svc.Redact(context.Background(), caller, root.ID))

	tree, err := svc.ListByArticle(context.Background(), identity.AnonymousPrincipal(), articleID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, model.RedactedContent, tree[0].Content, "redacted comments stay visible with sentinel content")
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "reply", tree[0].Children[0].Content)
}

func TestListByArticle_OrphanPromotionAfterHardDelete(t *testing.T) {
	repo, articles, articleID := seedSetup(true)
	svc := NewCommentService(repo, articles, audit.Nop())
	caller := member(identity.RoleUser)

	root, err := svc.Create(context.Background(), caller, articleID, model.CreateCommentRequest{Content: "root"})
	require.NoError(t, err)
	pid := root.ID.String()
	reply, err := svc.Create(context.Background(), caller, articleID, model.CreateCommentRequest{Content: "reply", ParentCommentID: &pid})
	require.NoError(t, err)

	require.NoError(t, svc.HardDelete(context.Background(), member(identity.RoleAdmin), root.ID))

	tree, err := svc.ListByArticle(context.Background(), caller, articleID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, reply.ID, tree[0].ID, "children of a purged parent surface as roots")
}

func TestUpdate_OwnershipAndRedaction(t *testing.T) {
	repo, articles, articleID := seedSetup(true)
	svc := NewCommentService(repo, articles, audit.Nop())
	owner := member(identity.RoleUser)

	comment, err := svc.Create(context.Background(), owner, articleID, model.CreateCommentRequest{Content: "original"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), member(identity.RoleUser), comment.ID, model.UpdateCommentRequest{Content: "hijack"})
	assert.ErrorIs(t, err, model.ErrAccessDenied)

	updated, err := svc.Update(context.Background(), owner, comment.ID, model.UpdateCommentRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, svc.Redact(context.Background(), owner, comment.ID))
	_, err = svc.Update(context.Background(), owner, comment.ID, model.UpdateCommentRequest{Content: "too late"})
	assert.ErrorIs(t, err, model.ErrCommentRedacted)
}

func TestHardDelete_PrivilegedOnly(t *testing.T) {
	repo, articles, articleID := seedSetup(true)
	svc := NewCommentService(repo, articles, audit.Nop())
	owner := member(identity.RoleUser)

	comment, err := svc.Create(context.Background(), owner, articleID, model.CreateCommentRequest{Content: "keep"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.HardDelete(context.Background(), owner, comment.ID), model.ErrAccessDenied)
	require.NoError(t, svc.HardDelete(context.Background(), member(identity.RoleSuperAdmin), comment.ID))
}
