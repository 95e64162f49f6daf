package container

import (
	"context"
	"fmt"
	"time"

	"publishing-backend/internal/config"
	"publishing-backend/internal/infrastructure/audit"
	"publishing-backend/internal/infrastructure/cache"
	"publishing-backend/internal/infrastructure/database"
	"publishing-backend/internal/infrastructure/storage"
	"publishing-backend/pkg/jwt"
	"publishing-backend/pkg/logger"

	articleHandler "publishing-backend/internal/domains/article/handler"
	articleRepo "publishing-backend/internal/domains/article/repository"
	articleService "publishing-backend/internal/domains/article/service"
	commentHandler "publishing-backend/internal/domains/comment/handler"
	commentRepo "publishing-backend/internal/domains/comment/repository"
	commentService "publishing-backend/internal/domains/comment/service"
	taxonomyHandler "publishing-backend/internal/domains/taxonomy/handler"
	taxonomyRepo "publishing-backend/internal/domains/taxonomy/repository"
	taxonomyService "publishing-backend/internal/domains/taxonomy/service"
	userHandler "publishing-backend/internal/domains/user/handler"
	userRepo "publishing-backend/internal/domains/user/repository"
	userService "publishing-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Store
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager
	Audit      audit.Recorder

	UserRepo     userRepo.UserRepository
	TaxonomyRepo taxonomyRepo.TaxonomyRepository
	ArticleRepo  articleRepo.ArticleRepository
	CommentRepo  commentRepo.CommentRepository

	UserService     userService.UserService
	TaxonomyService taxonomyService.TaxonomyService
	ArticleService  articleService.ArticleService
	CommentService  commentService.CommentService

	UserHandler     *userHandler.UserHandler
	TaxonomyHandler *taxonomyHandler.TaxonomyHandler
	ArticleHandler  *articleHandler.ArticleHandler
	CommentHandler  *commentHandler.CommentHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check: %w", err)
	}
	c.DB = db
	logger.Info("database connected", nil)

	store := cache.NewRedisStore(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := store.Connect(context.Background()); err != nil {
		// Auth token denylisting and login throttling degrade, the
		// rest of the API keeps working.
		logger.Warn("redis connection failed", map[string]interface{}{"error": err.Error()})
	} else {
		logger.Info("redis connected", nil)
	}
	c.Cache = store

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	c.Storage = minioStorage
	logger.Info("object storage ready", map[string]interface{}{"bucket": cfg.MinIO.Bucket})

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	c.Audit = audit.NewLogRecorder()

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.TaxonomyRepo = taxonomyRepo.NewPostgresTaxonomyRepository(pool)
	c.ArticleRepo = articleRepo.NewPostgresArticleRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresCommentRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache, &c.Config.JWT, c.Audit)
	c.TaxonomyService = taxonomyService.NewTaxonomyService(c.TaxonomyRepo, c.Audit)
	c.ArticleService = articleService.NewArticleService(c.ArticleRepo, c.Storage, c.Audit)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.ArticleRepo, c.Audit)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.TaxonomyHandler = taxonomyHandler.NewTaxonomyHandler(c.TaxonomyService)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
}

// Close releases infrastructure connections in reverse order.
func (c *Container) Close() {
	if c.Cache != nil {
		if closer, ok := c.Cache.(*cache.RedisStore); ok {
			if err := closer.Close(); err != nil {
				logger.Error("close redis", err)
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
