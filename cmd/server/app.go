package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Storage drivers accepted in database.driver.
const (
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory driver is in use.
	db  *sql.DB
	uow store.UnitOfWork

	jwtService     auth.JWTService
	userService    service.UserService
	taskService    service.TaskService
	commentService service.CommentService
}

// loadApplication reads configuration, sets up logging, opens the configured
// storage backend and builds the application on top of it.
func loadApplication(ctx context.Context, cfgFile string) (*application, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("cache_enabled", cfg.Cache.Enabled))

	hasher := auth.NewBcrypt(cfg.Auth.BcryptCost)

	var (
		db  *sql.DB
		uow store.UnitOfWork
	)
	switch cfg.Database.Driver {
	case driverMemory:
		log.Warn("using in-memory storage, data is lost on exit")
		uow = memory.New(hasher, log)
	case driverPostgres:
		db, err = postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		uow = postgres.NewUnitOfWork(db, hasher, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	app, err := newApplication(cfg, log, db, uow, hasher)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}
	return app, nil
}

// newApplication creates a new application instance with all dependencies
// initialized on top of an already opened unit of work.
func newApplication(
	cfg *config.Config,
	log *slog.Logger,
	db *sql.DB,
	uow store.UnitOfWork,
	verifier auth.PasswordVerifier,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
		uow:    uow,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		slog.Duration("token_lifetime", cfg.Auth.TokenLifetime),
		slog.Int("previous_secrets", len(cfg.Auth.PreviousJWTSecrets)))

	app.userService, err = service.NewUserService(uow, verifier, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.taskService, err = service.NewTaskService(uow, cfg.Cache, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.commentService, err = service.NewCommentService(uow, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %w", err)
	}

	log.Info("application initialized successfully")
	return app, nil
}

// Run serves the API until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
