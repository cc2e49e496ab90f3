package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/hmchef/hmchef/config"
	"github.com/hmchef/hmchef/internal/api"
	"github.com/hmchef/hmchef/internal/database"
	"github.com/hmchef/hmchef/internal/router"
	"github.com/hmchef/hmchef/internal/service"
)

// Server assembles the recipe service: database, optional redis cache,
// image storage, services, handlers and routes.
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New wires the server from config.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			// Cache is an optimization; the service runs without it.
			log.Printf("warning: redis unavailable, caching disabled: %v", err)
			cache = nil
		}
	}

	storage, err := imageStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, cache)

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewRecipeHandler(recipeService),
		api.NewUploadHandler(storage),
		authService,
	)

	if cfg.S3Bucket == "" {
		// Disk-stored images are served straight back by the API.
		engine.Static("/uploads", cfg.UploadDir)
	}

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}, nil
}

func imageStorage(ctx context.Context, cfg *config.Config) (service.ImageStorage, error) {
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg.S3Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3: %w", err)
		}
		if err := s3cfg.SetupBucketPolicy(ctx); err != nil {
			log.Printf("warning: failed to apply bucket policy: %v", err)
		}
		return service.NewS3ImageStorage(s3cfg), nil
	}
	return service.NewDiskImageStorage(cfg.UploadDir, cfg.PublicBaseURL)
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	log.Printf("recipe service listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
