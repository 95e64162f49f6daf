package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"publishing-backend/internal/domains/article/model"
	"publishing-backend/internal/domains/article/policy"
	"publishing-backend/internal/domains/article/repository"
	"publishing-backend/internal/infrastructure/audit"
	"publishing-backend/internal/shared/identity"
	"publishing-backend/internal/shared/utils"
	"publishing-backend/pkg/logger"
)

// ImageStorage is the slice of object storage the article service
// needs: reclaiming an article's image folder on hard delete.
type ImageStorage interface {
	RemoveFolder(ctx context.Context, prefix string) error
}

type ArticleService interface {
	List(ctx context.Context, principal identity.Principal, req model.ListArticlesRequest) (*model.ArticleListResponse, error)
	GetBySlug(ctx context.Context, principal identity.Principal, slug string) (*model.ArticleResponse, error)
	Create(ctx context.Context, principal identity.Principal, req model.CreateArticleRequest) (*model.ArticleResponse, error)
	Update(ctx context.Context, principal identity.Principal, id uuid.UUID, req model.UpdateArticleRequest) (*model.ArticleResponse, error)
	SoftDelete(ctx context.Context, principal identity.Principal, id uuid.UUID) error
	Restore(ctx context.Context, principal identity.Principal, id uuid.UUID) error
	HardDelete(ctx context.Context, principal identity.Principal, id uuid.UUID) error
}

type articleService struct {
	repo    repository.ArticleRepository
	storage ImageStorage
	audit   audit.Recorder
}

func NewArticleService(repo repository.ArticleRepository, storage ImageStorage, recorder audit.Recorder) ArticleService {
	return &articleService{repo: repo, storage: storage, audit: recorder}
}

func (s *articleService) List(ctx context.Context, principal identity.Principal, req model.ListArticlesRequest) (*model.ArticleListResponse, error) {
	pred := policy.BuildListPredicate(principal, req.IncludeDeleted)
	q := model.NewListQuery(req, pred)

	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	resp := model.ToArticleListResponse(rows, q, total)
	return &resp, nil
}

func (s *articleService) GetBySlug(ctx context.Context, principal identity.Principal, slug string) (*model.ArticleResponse, error) {
	row, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Invisible and nonexistent are indistinguishable to the caller.
	if !policy.CanView(row.Visibility(), principal) {
		return nil, model.ErrArticleNotFound
	}

	resp := model.ToArticleResponse(row)
	return &resp, nil
}

func (s *articleService) Create(ctx context.Context, principal identity.Principal, req model.CreateArticleRequest) (*model.ArticleResponse, error) {
	if principal.EffectiveRole() < identity.RoleAuthor {
		return nil, model.ErrAccessDenied
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, model.ErrCategoryNotFound
	}
	if ok, err := s.repo.CategoryExists(ctx, categoryID); err != nil {
		return nil, err
	} else if !ok {
		return nil, model.ErrCategoryNotFound
	}

	tagIDs, err := s.resolveTagIDs(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Title)
	}

	article := &model.Article{
		ID:          uuid.New(),
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		AuthorID:    principal.UserID,
		CategoryID:  categoryID,
		IsPublished: req.IsPublished,
		Images:      req.Images,
	}

	if err := s.repo.Create(ctx, article, tagIDs); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "article.create",
		EntityType: "article",
		EntityID:   article.ID,
		Detail:     article.Slug,
	})

	return s.respond(ctx, article.ID)
}

func (s *articleService) Update(ctx context.Context, principal identity.Principal, id uuid.UUID, req model.UpdateArticleRequest) (*model.ArticleResponse, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanView(row.Visibility(), principal) {
		return nil, model.ErrArticleNotFound
	}
	if !policy.CanModify(row.Visibility(), principal) {
		return nil, model.ErrAccessDenied
	}

	article := row.Article
	wasPublished := article.IsPublished

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != article.Slug {
		if wasPublished {
			return nil, model.ErrSlugImmutable
		}
		article.Slug = *req.Slug
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, model.ErrCategoryNotFound
		}
		if ok, err := s.repo.CategoryExists(ctx, categoryID); err != nil {
			return nil, err
		} else if !ok {
			return nil, model.ErrCategoryNotFound
		}
		article.CategoryID = categoryID
	}
	if req.IsPublished != nil {
		article.IsPublished = *req.IsPublished
	}
	if req.Images != nil {
		article.Images = *req.Images
	}

	// Validate the full desired tag set before touching anything;
	// a single unknown tag aborts the whole update.
	var desiredTags []uuid.UUID
	if req.TagIDs != nil {
		desiredTags, err = s.resolveTagIDs(ctx, *req.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, &article); err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		if err := s.syncTags(ctx, article.ID, desiredTags); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "article.update",
		EntityType: "article",
		EntityID:   article.ID,
	})

	return s.respond(ctx, article.ID)
}

func (s *articleService) respond(ctx context.Context, id uuid.UUID) (*model.ArticleResponse, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := model.ToArticleResponse(row)
	return &resp, nil
}

func (s *articleService) SoftDelete(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanView(row.Visibility(), principal) {
		return model.ErrArticleNotFound
	}
	if !policy.CanModify(row.Visibility(), principal) {
		return model.ErrAccessDenied
	}

	if err := s.repo.SetDeleted(ctx, id, true); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "article.soft_delete",
		EntityType: "article",
		EntityID:   id,
	})

	return nil
}

// Restore is privileged-only: soft-deleted articles are invisible to
// everyone else, owners included.
func (s *articleService) Restore(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	if !principal.Privileged() {
		return model.ErrAccessDenied
	}

	if err := s.repo.SetDeleted(ctx, id, false); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "article.restore",
		EntityType: "article",
		EntityID:   id,
	})

	return nil
}

func (s *articleService) HardDelete(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	if !principal.Privileged() {
		return model.ErrAccessDenied
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		return err
	}

	// Image reclaim is best effort; the row removal already committed.
	prefix := fmt.Sprintf("articles/%s/", id)
	if err := s.storage.RemoveFolder(ctx, prefix); err != nil {
		logger.Error("remove article images", err)
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "article.hard_delete",
		EntityType: "article",
		EntityID:   id,
	})

	return nil
}
