package container

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/config"
	authorhandler "bookshelf-backend/internal/domains/author/handler"
	authorrepo "bookshelf-backend/internal/domains/author/repository"
	authorservice "bookshelf-backend/internal/domains/author/service"
	bookhandler "bookshelf-backend/internal/domains/book/handler"
	bookrepo "bookshelf-backend/internal/domains/book/repository"
	bookservice "bookshelf-backend/internal/domains/book/service"
	userhandler "bookshelf-backend/internal/domains/user/handler"
	userrepo "bookshelf-backend/internal/domains/user/repository"
	userservice "bookshelf-backend/internal/domains/user/service"
	rediscache "bookshelf-backend/internal/infrastructure/cache"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/shared/middleware"
	"bookshelf-backend/pkg/cache"
	"bookshelf-backend/pkg/jwt"
	"bookshelf-backend/pkg/logger"
)

// Container wires configuration, infrastructure, and domain layers
// together. Everything the router needs hangs off it.
type Container struct {
	Config *config.Config
	DB     *pgxpool.Pool
	Cache  cache.Cache
	Tokens *jwt.Manager

	RateLimiter *middleware.RateLimiter

	AuthorHandler *authorhandler.AuthorHandler
	BookHandler   *bookhandler.BookHandler
	ImportHandler *bookhandler.ImportHandler
	UserHandler   *userhandler.UserHandler

	redis *rediscache.RedisCache
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	pool, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	c.DB = pool

	c.Cache = cache.NewNoop()
	if cfg.Redis.Addr != "" {
		redis := rediscache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redis.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, running without cache", map[string]interface{}{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
		} else {
			c.Cache = redis
			c.redis = redis
		}
	}

	c.Tokens = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	c.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	authorRepo := authorrepo.NewAuthorRepository(pool)
	bookRepo := bookrepo.NewBookRepository(pool, c.Cache)
	userRepo := userrepo.NewUserRepository(pool)

	authorSvc := authorservice.NewAuthorService(authorRepo)
	bookSvc := bookservice.NewBookService(bookRepo, authorRepo)
	importSvc := bookservice.NewImportService(pool, cfg.Import)
	userSvc := userservice.NewUserService(userRepo, c.Tokens)

	c.AuthorHandler = authorhandler.NewAuthorHandler(authorSvc, cfg.Page.DefaultSize, cfg.Page.MaxSize)
	c.BookHandler = bookhandler.NewBookHandler(bookSvc, cfg.Page.DefaultSize, cfg.Page.MaxSize)
	c.ImportHandler = bookhandler.NewImportHandler(importSvc)
	c.UserHandler = userhandler.NewUserHandler(userSvc)

	return c, nil
}

// Cleanup releases infrastructure connections.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
