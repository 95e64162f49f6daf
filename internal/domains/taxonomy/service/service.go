package service

import (
	"context"

	"github.com/google/uuid"

	"publishing-backend/internal/domains/taxonomy/model"
	"publishing-backend/internal/domains/taxonomy/repository"
	"publishing-backend/internal/infrastructure/audit"
	"publishing-backend/internal/shared/identity"
	"publishing-backend/internal/shared/utils"
)

type TaxonomyService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, principal identity.Principal, req model.CreateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, principal identity.Principal, id uuid.UUID) error

	ListTags(ctx context.Context) ([]model.Tag, error)
	CreateTag(ctx context.Context, principal identity.Principal, req model.CreateTagRequest) (*model.Tag, error)
	DeleteTag(ctx context.Context, principal identity.Principal, id uuid.UUID) error
}

type taxonomyService struct {
	repo  repository.TaxonomyRepository
	audit audit.Recorder
}

func NewTaxonomyService(repo repository.TaxonomyRepository, recorder audit.Recorder) TaxonomyService {
	return &taxonomyService{repo: repo, audit: recorder}
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *taxonomyService) CreateCategory(ctx context.Context, principal identity.Principal, req model.CreateCategoryRequest) (*model.Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}

	category := &model.Category{ID: uuid.New(), Name: req.Name, Slug: slug}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "category.create",
		EntityType: "category",
		EntityID:   category.ID,
		Detail:     category.Slug,
	})

	return category, nil
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	if err := s.repo.SoftDeleteCategory(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "category.delete",
		EntityType: "category",
		EntityID:   id,
	})

	return nil
}

func (s *taxonomyService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *taxonomyService) CreateTag(ctx context.Context, principal identity.Principal, req model.CreateTagRequest) (*model.Tag, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}

	tag := &model.Tag{ID: uuid.New(), Name: req.Name, Slug: slug}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "tag.create",
		EntityType: "tag",
		EntityID:   tag.ID,
		Detail:     tag.Slug,
	})

	return tag, nil
}

func (s *taxonomyService) DeleteTag(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	if err := s.repo.SoftDeleteTag(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "tag.delete",
		EntityType: "tag",
		EntityID:   id,
	})

	return nil
}
