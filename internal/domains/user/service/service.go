package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"publishing-backend/internal/config"
	"publishing-backend/internal/domains/user/model"
	"publishing-backend/internal/domains/user/repository"
	"publishing-backend/internal/infrastructure/audit"
	"publishing-backend/internal/infrastructure/cache"
	"publishing-backend/internal/shared/identity"
	"publishing-backend/internal/shared/middleware"
	"publishing-backend/pkg/jwt"
	"publishing-backend/pkg/logger"
)

const (
	maxFailedLogins   = 5
	failedLoginWindow = 15 * time.Minute
	failedLoginKeyFmt = "auth:failed:%s"
)

type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, req model.RefreshRequest) (*model.TokenPairResponse, error)
	Logout(ctx context.Context, accessToken string) error

	Me(ctx context.Context, principal identity.Principal) (*model.UserResponse, error)
	UpdateProfile(ctx context.Context, principal identity.Principal, req model.UpdateProfileRequest) (*model.UserResponse, error)
	UpdateRoles(ctx context.Context, principal identity.Principal, userID uuid.UUID, req model.UpdateRolesRequest) (*model.UserResponse, error)
}

type userService struct {
	repo   repository.UserRepository
	tokens *jwt.Manager
	store  cache.Store
	cfg    *config.JWTConfig
	audit  audit.Recorder
}

func NewUserService(repo repository.UserRepository, tokens *jwt.Manager, store cache.Store, cfg *config.JWTConfig, recorder audit.Recorder) UserService {
	return &userService{repo: repo, tokens: tokens, store: store, cfg: cfg, audit: recorder}
}

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		Roles:        []identity.Role{identity.RoleUser},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user, nil)
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	throttleKey := fmt.Sprintf(failedLoginKeyFmt, req.Email)

	if count, _, err := s.store.Get(ctx, throttleKey); err == nil && count != "" {
		var n int
		if _, scanErr := fmt.Sscanf(count, "%d", &n); scanErr == nil && n >= maxFailedLogins {
			return nil, model.ErrTooManyAttempts
		}
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same failure path as a wrong password, to avoid
		// confirming which emails exist.
		s.recordFailure(ctx, throttleKey)
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, throttleKey)
		return nil, model.ErrInvalidCredentials
	}

	if err := s.store.Delete(ctx, throttleKey); err != nil {
		logger.Error("clear login throttle", err)
	}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user, profile)
}

func (s *userService) recordFailure(ctx context.Context, key string) {
	if _, err := s.store.Increment(ctx, key); err != nil {
		logger.Error("record failed login", err)
		return
	}
	if err := s.store.Expire(ctx, key, failedLoginWindow); err != nil {
		logger.Error("expire login throttle", err)
	}
}

func (s *userService) issueTokens(user *model.User, profile *model.Profile) (*model.AuthResponse, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID.String(), user.Email, user.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         model.ToUserResponse(user, profile),
	}, nil
}

func (s *userService) Refresh(ctx context.Context, req model.RefreshRequest) (*model.TokenPairResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	if denied, err := s.store.Exists(ctx, middleware.DenylistKey(req.RefreshToken)); err == nil && denied {
		return nil, model.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	access, err := s.tokens.GenerateAccessToken(user.ID.String(), user.Email, user.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// Rotate: the old refresh token can never be replayed.
	if err := s.store.Set(ctx, middleware.DenylistKey(req.RefreshToken), "1", s.cfg.RefreshExpiry); err != nil {
		logger.Error("denylist refresh token", err)
	}

	return &model.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *userService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := s.store.Set(ctx, middleware.DenylistKey(accessToken), "1", s.cfg.AccessExpiry); err != nil {
		return fmt.Errorf("denylist access token: %w", err)
	}
	return nil
}

func (s *userService) Me(ctx context.Context, principal identity.Principal) (*model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := model.ToUserResponse(user, profile)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, principal identity.Principal, req model.UpdateProfileRequest) (*model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &model.Profile{ID: uuid.New(), UserID: user.ID}
	}

	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	resp := model.ToUserResponse(user, profile)
	return &resp, nil
}

func (s *userService) UpdateRoles(ctx context.Context, principal identity.Principal, userID uuid.UUID, req model.UpdateRolesRequest) (*model.UserResponse, error) {
	if !principal.Privileged() {
		return nil, model.ErrAccessDenied
	}

	roles := make([]identity.Role, 0, len(req.Roles))
	for _, name := range req.Roles {
		role, ok := identity.ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidRole, name)
		}
		roles = append(roles, role)
	}

	if err := s.repo.ReplaceRoles(ctx, userID, roles); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{
		ActorID:    principal.UserID,
		Action:     "user.roles.update",
		EntityType: "user",
		EntityID:   userID,
		Detail:     fmt.Sprintf("roles=%v", req.Roles),
	})

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := model.ToUserResponse(user, profile)
	return &resp, nil
}
