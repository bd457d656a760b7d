// Package app wires configuration, storage, the remote client and the HTTP
// router together and runs the console server with graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/user-console/internal/api"
	"github.com/99minutos/user-console/internal/api/console"
	"github.com/99minutos/user-console/internal/api/metrics"
	"github.com/99minutos/user-console/internal/api/middleware"
	"github.com/99minutos/user-console/internal/infrastructure/config"
	"github.com/99minutos/user-console/internal/infrastructure/db/mongo"
	"github.com/99minutos/user-console/internal/infrastructure/db/redis"
	consolehttp "github.com/99minutos/user-console/internal/infrastructure/http"
	"github.com/99minutos/user-console/internal/infrastructure/http/handlers"
	"github.com/99minutos/user-console/internal/infrastructure/queue"
	"github.com/99minutos/user-console/internal/infrastructure/reqres"
	"github.com/99minutos/user-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// App holds the long-lived resources of the console.
type App struct {
	cfg         *config.Config
	log         zerolog.Logger
	mongoClient *mongodriver.Client
	redis       *goredis.Client
	dispatcher  *queue.Dispatcher
	echo        *echo.Echo
}

// New connects to Redis and MongoDB and builds the router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-console",
	})

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "user-console",
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	auditRepo := mongo.NewAuditRepository(db)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("audit indexes not ensured")
	}
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, metrics.Recorder{}, logger.Component("audit"))

	remote := reqres.New(reqres.Config{
		BaseURL: cfg.Remote.BaseURL,
		APIKey:  cfg.Remote.APIKey,
		Timeout: cfg.Remote.Timeout,
		Retries: cfg.Remote.Retries,
	}, metrics.Recorder{})

	e := consolehttp.NewRouter(consolehttp.Options{
		Log:    logger.Component("http"),
		Checks: []handlers.Check{handlers.MongoCheck(db), handlers.RedisCheck(rdb)},
	})
	err = api.Register(e, api.Deps{
		Factory: &console.Factory{
			Users:      remote,
			Auth:       remote,
			Redis:      rdb,
			Audit:      dispatcher,
			SessionTTL: cfg.Cookie.SessionTTL,
			Log:        logger.Component("console"),
		},
		Identity: middleware.IdentityConfig{
			CookieName: cfg.Cookie.Name,
			Secret:     []byte(cfg.Cookie.Secret),
			Secure:     cfg.Cookie.Secure,
			MaxAge:     cfg.Cookie.SessionTTL,
		},
		Log: logger.Component("api"),
	})
	if err != nil {
		_ = rdb.Close()
		_ = mongo.Disconnect(ctx, client)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		mongoClient: client,
		redis:       rdb,
		dispatcher:  dispatcher,
		echo:        e,
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// releases the connections.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	a.dispatcher.Start(workerCtx)

	server := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.echo,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", server.Addr).Msg("server running")
		serverErrCh <- server.ListenAndServe()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			runErr = fmt.Errorf("app: shutdown: %w", err)
		}
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("app: serve: %w", err)
		}
	}

	stopWorkers()
	if err := a.redis.Close(); err != nil {
		a.log.Warn().Err(err).Msg("redis close failed")
	}
	if err := mongo.Disconnect(context.Background(), a.mongoClient); err != nil {
		a.log.Warn().Err(err).Msg("mongo disconnect failed")
	}
	return runErr
}
