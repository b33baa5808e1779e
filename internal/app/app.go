package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/stratahub/strata-portal/internal/clients/redis"
	"github.com/stratahub/strata-portal/internal/db"
	"github.com/stratahub/strata-portal/internal/observability"
	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/repos"
	"github.com/stratahub/strata-portal/internal/server"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Registry *registry.Registry

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "strata-portal",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	reg, err := wireRegistry(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("wire registry: %w", err)
	}

	theDB, err := openDatabase(log, cfg, reg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	if cfg.SeedPath != "" {
		if err := Seed(ctx, theDB, reg, cfg.SeedPath, log); err != nil {
			log.Sync()
			return nil, fmt.Errorf("seed fixtures: %w", err)
		}
	}

	rdb := redis.NewClient(ctx, log)
	cache := redis.NewListCache(rdb, cfg.ListCacheTTL, log)

	entityRepo := repos.NewEntityRepo(theDB, log)
	serviceset := wireServices(theDB, log, cfg)
	handlerset := wireHandlers(log, serviceset, reg, entityRepo, cache)
	middlewareset := wireMiddleware(log, serviceset)

	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		ServiceName:    "strata-portal",
		AllowedOrigins: cfg.AllowedOrigins,
		HealthHandler:  handlerset.Health,
		AuthHandler:    handlerset.Auth,
		ModelHandler:   handlerset.Model,
		AdminHandler:   handlerset.Admin,
		AuthMiddleware: middlewareset.Auth,
	})

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Registry:     reg,
		otelShutdown: otelShutdown,
	}, nil
}

// openDatabase picks the driver from config and migrates every registered
// model. The registry is the single source of the migration set.
func openDatabase(log *logger.Logger, cfg Config, reg *registry.Registry) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		svc, err := db.NewSQLiteService(log)
		if err != nil {
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		if err := svc.AutoMigrate(reg.Models()...); err != nil {
			return nil, fmt.Errorf("sqlite automigrate: %w", err)
		}
		return svc.DB(), nil
	default:
		svc, err := db.NewPostgresService(log)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		if err := svc.AutoMigrate(reg.Models()...); err != nil {
			return nil, fmt.Errorf("postgres automigrate: %w", err)
		}
		return svc.DB(), nil
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}

	srv := &http.Server{
		Addr:    a.Cfg.Addr,
		Handler: a.Router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("Server listening", "addr", a.Cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
