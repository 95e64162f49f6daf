package repository

import (
	"context"

	"github.com/google/uuid"

	"publishing-backend/internal/domains/user/model"
	"publishing-backend/internal/shared/identity"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ReplaceRoles(ctx context.Context, userID uuid.UUID, roles []identity.Role) error

	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpsertProfile(ctx context.Context, profile *model.Profile) error
}
