package service

import (
	"context"

	"github.com/google/uuid"

	articlemodel "publishing-backend/internal/domains/article/model"
	"publishing-backend/internal/domains/article/policy"
	"publishing-backend/internal/domains/comment/model"
	"publishing-backend/internal/domains/comment/repository"
	"publishing-backend/internal/infrastructure/audit"
	"publishing-backend/internal/shared/identity"
)

// ArticleReader is the slice of the article store the comment service
// needs: resolving the parent article so its visibility gates the
// whole thread.
type ArticleReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*articlemodel.ArticleRow, error)
}

type CommentService interface {
	ListByArticle(ctx context.Context, principal identity.Principal, articleID uuid.UUID) ([]*model.CommentNode, error)
	Create(ctx context.Context, principal identity.Principal, articleID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error)
	Update(ctx context.Context, principal identity.Principal, id uuid.UUID, req model.UpdateCommentRequest) (*model.Comment, error)
	Redact(ctx context.Context, principal identity.Principal, id uuid.UUID) error
	HardDelete(ctx context.Context, principal identity.Principal, id uuid.UUID) error
}

type commentService struct {
	repo     repository.CommentRepository
	articles ArticleReader
	audit    audit.Recorder
}

func NewCommentService(repo repository.CommentRepository, articles ArticleReader, recorder audit.Recorder) CommentService {
	return &commentService{repo: repo, articles: articles, audit: recorder}
}

// visibleArticle resolves the article and applies the read policy.
// An invisible article reads as nonexistent.
func (s *commentService) visibleArticle(ctx context.Context, principal identity.Principal, articleID uuid.UUID) error {
	row, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if !policy.CanView(row.Visibility(), principal) {
		return articlemodel.ErrArticleNotFound
	}
	return nil
}

func (s *commentService) ListByArticle(ctx context.Context, principal identity.Principal, articleID uuid.UUID) ([]*model.CommentNode, error) {
	if err := s.visibleArticle(ctx, principal, articleID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	return model.BuildTree(rows), nil
}

func (s *commentService) Create(ctx context.Context, principal identity.Principal, articleID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error) {
	if principal.Anonymous {
		return nil, model.ErrAccessDenied
	}

	if err := s.visibleArticle(ctx, principal, articleID); err != nil {
		return nil, err
	}

	var parentID *uuid.UUID
	if req.ParentCommentID != nil {
		id, err := uuid.Parse(*req.ParentCommentID)
		if err != nil {
			return nil, model.ErrParentNotFound
		}

		parent, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, model.ErrParentNotFound
		}
		if parent.ArticleID != articleID {
			return nil, model.ErrParentMismatch
		}
		if parent.IsDeleted {
			return nil, model.ErrReplyToRedacted
		}
		parentID = &id
	}

	comment := &model.Comment{
		ID:              uuid.New(),
		Content:         req.Content,
		ArticleID:       articleID,
		UserID:          principal.UserID,
		ParentCommentID: parentID,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) Update(ctx context.Context, principal identity.Principal, id uuid.UUID, req model.UpdateCommentRequest) (*model.Comment, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.IsDeleted {
		return nil, model.ErrCommentRedacted
	}
	if !principal.Privileged() && (principal.Anonymous || comment.UserID != principal.UserID) {
		return nil, model.ErrAccessDenied
	}

	if err := s.repo.UpdateContent(ctx, id, req.Content); err != nil {
		return nil, err
	}

	comment.Content = req.Content
	return comment, nil
}

func (s *commentService) Redact(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !principal.Privileged() && (principal.Anonymous || comment.UserID != principal.UserID) {
		return model.ErrAccessDenied
	}

	if err := s.repo.Redact(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "comment.redact",
		EntityType: "comment",
		EntityID:   id,
	})

	return nil
}

func (s *commentService) HardDelete(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	if !principal.Privileged() {
		return model.ErrAccessDenied
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "comment.hard_delete",
		EntityType: "comment",
		EntityID:   id,
	})

	return nil
}
