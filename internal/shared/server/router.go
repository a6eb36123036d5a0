// Package server assembles the HTTP router: middleware chain, storage
// and model dependencies, feature route registration.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumind-backend/internal/account"
	"resumind-backend/internal/ai"
	"resumind-backend/internal/ai/openai"
	googleauth "resumind-backend/internal/auth"
	"resumind-backend/internal/convert"
	"resumind-backend/internal/jobimport"
	"resumind-backend/internal/resumes"
	"resumind-backend/internal/shared/config"
	"resumind-backend/internal/shared/server/middleware"
	"resumind-backend/internal/shared/server/respond"
	"resumind-backend/internal/shared/storage/db"
	"resumind-backend/internal/shared/storage/kv"
	"resumind-backend/internal/shared/storage/object"
	localstore "resumind-backend/internal/shared/storage/object/local"
	s3store "resumind-backend/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware and routes
// registered. Dependency construction fails fast; a server with a
// half-wired pipeline is worse than one that refuses to start.
func NewRouter(ctx context.Context, cfg config.Config) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	limiter := middleware.NewRateLimiter(60, 10)
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(limiter),
	)

	objects, err := buildObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildKVStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var model ai.Client
	if cfg.OpenAIAPIKey != "" {
		model, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.FeedbackModel, objects)
		if err != nil {
			return nil, fmt.Errorf("build openai client: %w", err)
		}
	} else {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	converter, err := convert.NewPdftoppm()
	if err != nil {
		return nil, fmt.Errorf("build pdf converter: %w", err)
	}

	resumeRepo := resumes.NewRepo(store)
	resumeSvc := resumes.NewService(objects, resumeRepo, model, converter, cfg.FeedbackModel)
	resumeHandler := resumes.NewHandler(resumeSvc)

	importer := jobimport.NewImporter(jobimport.NewFetcher(), model, cfg.ImportModel)
	importHandler := jobimport.NewHandler(importer)

	accountSvc := account.NewService(objects, store)
	accountHandler := account.NewHandler(accountSvc)

	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	googleAuthSvc.Register(api)
	registerMeRoutes(api)
	resumeHandler.Register(api)
	importHandler.Register(api)
	accountHandler.Register(api)

	return r, nil
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("build s3 store: %w", err)
		}
		return store, nil
	}
	return localstore.New(cfg.LocalStoreDir), nil
}

func buildKVStore(ctx context.Context, cfg config.Config) (kv.Store, error) {
	if cfg.KVStoreType != "postgres" {
		return kv.NewMemoryStore(), nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return kv.NewMemoryStore(), nil
	}
	if err := db.MigrateUp(database); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return kv.NewPGStore(database), nil
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
