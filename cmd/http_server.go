package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ormawadev/orgapi/internal"
	"github.com/ormawadev/orgapi/internal/department"
	departmentPostgres "github.com/ormawadev/orgapi/internal/department/postgres"
	"github.com/ormawadev/orgapi/internal/metrics"
	"github.com/ormawadev/orgapi/internal/news"
	newsPostgres "github.com/ormawadev/orgapi/internal/news/postgres"
	"github.com/ormawadev/orgapi/internal/ratelimit"
	"github.com/ormawadev/orgapi/internal/transport"
	"github.com/ormawadev/orgapi/internal/transport/rest"
	"github.com/ormawadev/orgapi/internal/user"
	userPostgres "github.com/ormawadev/orgapi/internal/user/postgres"
	"github.com/ormawadev/orgapi/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that serves the public listing endpoints`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Redis    *redis.Client
	Limiter  ratelimit.Limiter
	Registry *prometheus.Registry
	Recorder metrics.Recorder
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if ml, ok := deps.Limiter.(*ratelimit.MemoryLimiter); ok {
			ml.Stop()
		}
		if deps.Redis != nil {
			if err := deps.Redis.Close(); err != nil {
				deps.Logger.Error("Redis close error", "error", err)
			}
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	baseHandler := transport.NewBaseHandler(deps.Logger)

	departmentRepo := departmentPostgres.NewDepartmentRepository(deps.GormDB)
	departmentService := department.NewService(departmentRepo, deps.Logger)
	departmentHandler := department.NewHandler(baseHandler, departmentService)

	newsRepo := newsPostgres.NewNewsRepository(deps.GormDB)
	newsService := news.NewService(newsRepo, deps.Logger)
	newsHandler := news.NewHandler(baseHandler, newsService)

	userRepo := userPostgres.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, deps.Logger)
	userHandler := user.NewHandler(baseHandler, userService)

	rest.RegisterAllRoutes(
		deps.Router,
		deps.Config,
		deps.DB.DB,
		deps.Redis,
		deps.Limiter,
		deps.Recorder,
		deps.Registry,
		departmentHandler,
		newsHandler,
		userHandler,
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	var rdb *redis.Client
	if config.RateLimit.Store == "redis" {
		rdb = initRedis(config.Redis)
	}

	limiter, err := initLimiter(config.RateLimit, rdb)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	registry := prometheus.NewRegistry()
	var recorder metrics.Recorder = metrics.Nop{}
	if config.Observability.Metrics.Enabled {
		recorder = metrics.NewCollector(registry)
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		GormDB:   gormDB,
		Redis:    rdb,
		Limiter:  limiter,
		Registry: registry,
		Recorder: recorder,
		Router:   chi.NewRouter(),
		Logger:   logger.L(),
	}, nil
}

// initDB opens the pgx stdlib connection pool used for both the ORM and
// the health checks.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}

func initRedis(cfg internal.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func initLimiter(cfg internal.RateLimitConfig, rdb *redis.Client) (ratelimit.Limiter, error) {
	switch cfg.Store {
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis store selected but no redis client configured")
		}
		return ratelimit.NewRedisLimiter(rdb, cfg.Requests, cfg.Window), nil
	case "memory":
		return ratelimit.NewMemoryLimiter(cfg.Requests, cfg.Window), nil
	default:
		return nil, fmt.Errorf("unknown rate limit store %q", cfg.Store)
	}
}
