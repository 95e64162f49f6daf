package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"publishing-backend/internal/domains/article/model"
	"publishing-backend/internal/domains/article/repository"
	"publishing-backend/internal/infrastructure/audit"
	"publishing-backend/internal/shared/identity"
)

type tagDelta struct {
	add    []uuid.UUID
	remove []uuid.UUID
}

// fakeRepo is an in-memory ArticleRepository. List honors the
// visibility predicate, ordering and windowing the same way the SQL
// implementation does.
type fakeRepo struct {
	articles   map[uuid.UUID]*model.ArticleRow
	tags       map[uuid.UUID][]uuid.UUID // articleID -> tagIDs
	liveTags   map[uuid.UUID]bool
	categories map[uuid.UUID]bool
	slugs      map[string]uuid.UUID

	deltas []tagDelta
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		articles:   make(map[uuid.UUID]*model.ArticleRow),
		tags:       make(map[uuid.UUID][]uuid.UUID),
		liveTags:   make(map[uuid.UUID]bool),
		categories: make(map[uuid.UUID]bool),
		slugs:      make(map[string]uuid.UUID),
	}
}

var _ repository.ArticleRepository = (*fakeRepo)(nil)

func (f *fakeRepo) Create(_ context.Context, a *model.Article, tagIDs []uuid.UUID) error {
	if _, taken := f.slugs[a.Slug]; taken {
		return model.ErrSlugAlreadyExists
	}
	f.slugs[a.Slug] = a.ID
	f.articles[a.ID] = &model.ArticleRow{Article: *a, AuthorDisplayName: "author"}
	f.tags[a.ID] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, a *model.Article) error {
	row, ok := f.articles[a.ID]
	if !ok {
		return model.ErrArticleNotFound
	}
	if other, taken := f.slugs[a.Slug]; taken && other != a.ID {
		return model.ErrSlugAlreadyExists
	}
	delete(f.slugs, row.Slug)
	f.slugs[a.Slug] = a.ID
	row.Article = *a
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.ArticleRow, error) {
	row, ok := f.articles[id]
	if !ok {
		return nil, model.ErrArticleNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*model.ArticleRow, error) {
	id, ok := f.slugs[slug]
	if !ok {
		return nil, model.ErrArticleNotFound
	}
	return f.GetByID(context.Background(), id)
}

func (f *fakeRepo) List(_ context.Context, q model.ListQuery) ([]*model.ArticleRow, int, error) {
	var matched []*model.ArticleRow
	for _, row := range f.articles {
		if q.Predicate.Matches(row.Visibility()) {
			matched = append(matched, row)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if q.Ascending {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		if q.Ascending {
			return a.ID.String() < b.ID.String()
		}
		return a.ID.String() > b.ID.String()
	})

	total := len(matched)
	start := q.Offset()
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (f *fakeRepo) SetDeleted(_ context.Context, id uuid.UUID, deleted bool) error {
	row, ok := f.articles[id]
	if !ok || row.IsDeleted == deleted {
		return model.ErrArticleNotFound
	}
	row.IsDeleted = deleted
	return nil
}

func (f *fakeRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	row, ok := f.articles[id]
	if !ok {
		return model.ErrArticleNotFound
	}
	delete(f.slugs, row.Slug)
	delete(f.articles, id)
	delete(f.tags, id)
	return nil
}

func (f *fakeRepo) CategoryExists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.categories[id], nil
}

func (f *fakeRepo) LiveTagIDs(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var live []uuid.UUID
	for _, id := range ids {
		if f.liveTags[id] {
			live = append(live, id)
		}
	}
	return live, nil
}

func (f *fakeRepo) TagIDsForArticle(_ context.Context, articleID uuid.UUID) ([]uuid.UUID, error) {
	return append([]uuid.UUID(nil), f.tags[articleID]...), nil
}

func (f *fakeRepo) ApplyTagDelta(_ context.Context, articleID uuid.UUID, add, remove []uuid.UUID) error {
	f.deltas = append(f.deltas, tagDelta{add: add, remove: remove})

	removeSet := make(map[uuid.UUID]bool, len(remove))
	for _, id := range remove {
		removeSet[id] = true
	}

	var next []uuid.UUID
	for _, id := range f.tags[articleID] {
		if !removeSet[id] {
			next = append(next, id)
		}
	}
	f.tags[articleID] = append(next, add...)
	return nil
}

type fakeStorage struct {
	removed []string
}

func (f *fakeStorage) RemoveFolder(_ context.Context, prefix string) error {
	f.removed = append(f.removed, prefix)
	return nil
}

func newService(repo *fakeRepo) (ArticleService, *fakeStorage) {
	storage := &fakeStorage{}
	return NewArticleService(repo, storage, audit.Nop()), storage
}

func asPrincipal(role identity.Role) identity.Principal {
	return identity.Principal{UserID: uuid.New(), Roles: []identity.Role{role}}
}

func seedArticle(repo *fakeRepo, author uuid.UUID, slug string, published, deleted bool, createdAt time.Time) uuid.UUID {
	id := uuid.New()
	repo.articles[id] = &model.ArticleRow{
		Article: model.Article{
			ID:          id,
			Title:       slug,
			Slug:        slug,
			Content:     "body",
			AuthorID:    author,
			CategoryID:  uuid.New(),
			IsPublished: published,
			IsDeleted:   deleted,
			CreatedAt:   createdAt,
		},
		AuthorDisplayName: "author",
	}
	repo.slugs[slug] = id
	return id
}

func TestGetBySlug_HidesInvisibleAsNotFound(t *testing.T) {
	repo := newFakeRepo()
	author := uuid.New()
	seedArticle(repo, author, "draft-post", false, false, time.Now())

	svc, _ := newService(repo)

	_, err := svc.GetBySlug(context.Background(), identity.AnonymousPrincipal(), "draft-post")
	assert.ErrorIs(t, err, model.ErrArticleNotFound)

	owner := identity.Principal{UserID: author, Roles: []identity.Role{identity.RoleAuthor}}
	resp, err := svc.GetBySlug(context.Background(), owner, "draft-post")
	require.NoError(t, err)
	assert.Equal(t, "draft-post", resp.Slug)
}

func TestCreate_RequiresAuthorRole(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newService(repo)

	_, err := svc.Create(context.Background(), asPrincipal(identity.RoleUser), model.CreateArticleRequest{
		Title: "A new post", Content: "body", CategoryID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, model.ErrAccessDenied)
}

func TestCreate_RejectsUnknownTagWithoutPartialWrite(t *testing.T) {
	repo := newFakeRepo()
	categoryID := uuid.New()
	repo.categories[categoryID] = true
	liveTag := uuid.New()
	repo.liveTags[liveTag] = true

	svc, _ := newService(repo)

	_, err := svc.Create(context.Background(), asPrincipal(identity.RoleAuthor), model.CreateArticleRequest{
		Title:      "A new post",
		Content:    "body",
		CategoryID: categoryID.String(),
		TagIDs:     []string{liveTag.String(), uuid.NewString()},
	})
	assert.ErrorIs(t, err, model.ErrTagNotFound)
	assert.Empty(t, repo.articles, "no partial article row may survive a rejected tag set")
}

func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	repo := newFakeRepo()
	categoryID := uuid.New()
	repo.categories[categoryID] = true

	svc, _ := newService(repo)
	author := asPrincipal(identity.RoleAuthor)

	req := model.CreateArticleRequest{
		Title:      "Same Title",
		Slug:       "same-slug",
		Content:    "body",
		CategoryID: categoryID.String(),
	}

	_, err := svc.Create(context.Background(), author, req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), author, req)
	assert.ErrorIs(t, err, model.ErrSlugAlreadyExists)
	assert.Len(t, repo.articles, 1)
}

func TestUpdate_TagSyncIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	categoryID := uuid.New()
	repo.categories[categoryID] = true

	tagA, tagB := uuid.New(), uuid.New()
	repo.liveTags[tagA] = true
	repo.liveTags[tagB] = true

	author := asPrincipal(identity.RoleAuthor)
	articleID := seedArticle(repo, author.UserID, "tagged-post", false, false, time.Now())
	repo.tags[articleID] = []uuid.UUID{tagA}

	svc, _ := newService(repo)

	desired := []string{tagA.String(), tagB.String()}
	_, err := svc.Update(context.Background(), author, articleID, model.UpdateArticleRequest{TagIDs: &desired})
	require.NoError(t, err)
	require.Len(t, repo.deltas, 1)
	assert.Equal(t, []uuid.UUID{tagB}, repo.deltas[0].add)
	assert.Empty(t, repo.deltas[0].remove)

	// Same desired set again: no delta at all.
	_, err = svc.Update(context.Background(), author, articleID, model.UpdateArticleRequest{TagIDs: &desired})
	require.NoError(t, err)
	assert.Len(t, repo.deltas, 1, "re-sending an unchanged tag set must not write")
}

func TestUpdate_CrossAuthorDenied(t *testing.T) {
	repo := newFakeRepo()
	owner := uuid.New()
	articleID := seedArticle(repo, owner, "owned-post", true, false, time.Now())

	svc, _ := newService(repo)

	title := "Hijacked"
	_, err := svc.Update(context.Background(), asPrincipal(identity.RoleAuthor), articleID, model.UpdateArticleRequest{Title: &title})
	assert.ErrorIs(t, err, model.ErrAccessDenied)
}

func TestUpdate_SlugImmutableOncePublished(t *testing.T) {
	repo := newFakeRepo()
	author := asPrincipal(identity.RoleAuthor)
	articleID := seedArticle(repo, author.UserID, "published-post", true, false, time.Now())

	svc, _ := newService(repo)

	newSlug := "renamed-post"
	_, err := svc.Update(context.Background(), author, articleID, model.UpdateArticleRequest{Slug: &newSlug})
	assert.ErrorIs(t, err, model.ErrSlugImmutable)
}

func TestList_PaginationCoversAllVisibleRows(t *testing.T) {
	repo := newFakeRepo()
	author := uuid.New()
	base := time.Now()
	for i := 0; i < 27; i++ {
		seedArticle(repo, author, uuid.NewString(), true, false, base.Add(time.Duration(i)*time.Minute))
	}
	// Invisible rows must not count.
	seedArticle(repo, author, "draft", false, false, base)
	seedArticle(repo, author, "gone", true, true, base)

	svc, _ := newService(repo)
	anon := identity.AnonymousPrincipal()

	seen := 0
	page := 1
	for {
		resp, err := svc.List(context.Background(), anon, model.ListArticlesRequest{Page: page, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 27, resp.TotalCount)
		seen += len(resp.Items)
		if len(resp.Items) == 0 {
			break
		}
		page++
	}
	assert.Equal(t, 27, seen, "pages must partition the visible set exactly")
}

func TestList_IncludeDeletedIgnoredForUsers(t *testing.T) {
	repo := newFakeRepo()
	author := uuid.New()
	seedArticle(repo, author, "live", true, false, time.Now())
	seedArticle(repo, author, "deleted", true, true, time.Now())

	svc, _ := newService(repo)

	resp, err := svc.List(context.Background(), asPrincipal(identity.RoleUser), model.ListArticlesRequest{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalCount)

	resp, err = svc.List(context.Background(), asPrincipal(identity.RoleAdmin), model.ListArticlesRequest{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalCount)
}

func TestList_OversizedPageSizeClamped(t *testing.T) {
	repo := newFakeRepo()
	author := uuid.New()
	base := time.Now()
	for i := 0; i < 30; i++ {
		seedArticle(repo, author, uuid.NewString(), true, false, base.Add(time.Duration(i)*time.Second))
	}

	svc, _ := newService(repo)

	resp, err := svc.List(context.Background(), identity.AnonymousPrincipal(), model.ListArticlesRequest{PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, model.MaxPageSize, resp.PageSize)
	assert.Len(t, resp.Items, model.MaxPageSize)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	repo := newFakeRepo()
	author := asPrincipal(identity.RoleAuthor)
	articleID := seedArticle(repo, author.UserID, "to-delete", true, false, time.Now())

	svc, _ := newService(repo)

	require.NoError(t, svc.SoftDelete(context.Background(), author, articleID))
	assert.True(t, repo.articles[articleID].IsDeleted)

	// The owner cannot see, let alone restore, the deleted row.
	assert.ErrorIs(t, svc.Restore(context.Background(), author, articleID), model.ErrAccessDenied)

	require.NoError(t, svc.Restore(context.Background(), asPrincipal(identity.RoleAdmin), articleID))
	assert.False(t, repo.articles[articleID].IsDeleted)
}

func TestHardDelete_PrivilegedOnlyAndReclaimsImages(t *testing.T) {
	repo := newFakeRepo()
	author := asPrincipal(identity.RoleAuthor)
	articleID := seedArticle(repo, author.UserID, "to-purge", true, false, time.Now())

	svc, storage := newService(repo)

	assert.ErrorIs(t, svc.HardDelete(context.Background(), author, articleID), model.ErrAccessDenied)

	require.NoError(t, svc.HardDelete(context.Background(), asPrincipal(identity.RoleSuperAdmin), articleID))
	assert.NotContains(t, repo.articles, articleID)
	require.Len(t, storage.removed, 1)
	assert.Equal(t, "articles/"+articleID.String()+"/", storage.removed[0])
}
