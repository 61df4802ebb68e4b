// Command console serves the shop administration console: server-rendered
// pages and a JSON API on PORT, health probes and metrics on OPS_PORT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/api"
	"github.com/bingo/shop-console/internal/api/handler"
	"github.com/bingo/shop-console/internal/api/middleware"
	"github.com/bingo/shop-console/internal/core/ports"
	"github.com/bingo/shop-console/internal/core/service"
	"github.com/bingo/shop-console/internal/infrastructure/apiclient"
	mongodb "github.com/bingo/shop-console/internal/infrastructure/db/mongo"
	redisdb "github.com/bingo/shop-console/internal/infrastructure/db/redis"
	opshttp "github.com/bingo/shop-console/internal/infrastructure/http"
	"github.com/bingo/shop-console/internal/infrastructure/http/handlers"
	"github.com/bingo/shop-console/internal/infrastructure/queue"
	"github.com/bingo/shop-console/internal/infrastructure/tokenstore"
	"github.com/bingo/shop-console/internal/pkg/config"
	"github.com/bingo/shop-console/internal/pkg/crypto"
	"github.com/bingo/shop-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "shop-console",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("console stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Keys ---
	cookieKey, err := crypto.DeriveKey([]byte(cfg.Session.Secret), crypto.PurposeSessionCookie)
	if err != nil {
		return err
	}
	sealKey, err := crypto.DeriveKey([]byte(cfg.Session.Secret), crypto.PurposeTokenSeal)
	if err != nil {
		return err
	}
	sealer, err := crypto.NewSealer(sealKey)
	if err != nil {
		return err
	}

	// --- Optional infrastructure ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	if mongoClient != nil {
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = mongoClient.Disconnect(disconnectCtx)
		}()
	}

	// --- Session tokens ---
	var (
		tokensFor     func(sessionID string) ports.TokenStore
		releaseTokens func(sessionID string)
	)
	if rdb != nil {
		store := redisdb.NewTokenStore(rdb, sealer, cfg.Session.TTL)
		tokensFor = store.ForSession
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session tokens in redis")
	} else {
		registry := tokenstore.NewMemoryRegistry(cfg.Session.TTL)
		tokensFor = func(sessionID string) ports.TokenStore { return registry.ForSession(sessionID) }
		releaseTokens = registry.Release
		log.Warn().Msg("REDIS_ADDR not set: session tokens kept in memory")
	}

	// --- Audit trail ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	var (
		auditRepo     ports.AuditRepository
		auditRecorder ports.AuditRecorder = service.NopAuditRecorder{}
		dispatcher    *queue.AuditDispatcher
	)
	if db != nil {
		repo := mongodb.NewAuditRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		dispatcher = queue.NewAuditDispatcher(cfg.Audit.Workers, repo, logger.Component("audit"))
		dispatcher.Start(workerCtx)
		auditRepo = repo
		auditRecorder = dispatcher
	} else {
		log.Warn().Msg("MONGO_URI not set: audit trail disabled")
	}

	// --- Workspaces ---
	upstream := &http.Client{Timeout: cfg.API.Timeout}
	apiLog := logger.Component("apiclient")
	viewLog := logger.Component("views")

	workspaces := service.NewWorkspaces(func(ctx context.Context, sessionID string) *service.Workspace {
		tokens := tokensFor(sessionID)
		client := apiclient.New(apiclient.Config{
			BaseURL:    cfg.API.BaseURL,
			HTTPClient: upstream,
		}, tokens, apiLog)
		return service.NewWorkspace(ctx, service.WorkspaceDeps{
			SessionID:      sessionID,
			Tokens:         tokens,
			API:            apiclient.NewGateway(client),
			Audit:          auditRecorder,
			CurrencyPrefix: cfg.Workspace.CurrencyPrefix,
			Log:            viewLog,
		})
	}, cfg.Workspace.IdleTTL, logger.Component("workspaces"))
	if releaseTokens != nil {
		workspaces.OnRelease(releaseTokens)
	}
	workspaces.Start(workerCtx)

	// --- Routers ---
	router, err := api.NewRouter(api.RouterDeps{
		Workspaces: workspaces,
		Signer:     middleware.NewSessionSigner(cookieKey, cfg.Session.TTL),
		Cookie:     handler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Production()},
		Audit:      auditRepo,
		Log:        logger.Component("http"),
	})
	if err != nil {
		return err
	}

	checks := map[string]handlers.Check{
		"mongodb":  nil,
		"redis":    nil,
		"shop_api": handlers.UpstreamCheck(upstream, cfg.API.BaseURL),
	}
	if db != nil {
		checks["mongodb"] = handlers.MongoCheck(db)
	}
	if rdb != nil {
		checks["redis"] = handlers.RedisCheck(rdb)
	}
	ops := opshttp.NewRouter(opshttp.OpsDeps{Checks: checks})

	// --- Serve ---
	errCh := make(chan error, 2)
	serve := func(name, port string, h http.Handler) *http.Server {
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Info().Str("listener", name).Str("addr", srv.Addr).Msg("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		return srv
	}
	consoleSrv := serve("console", cfg.Port, router)
	opsSrv := serve("ops", cfg.OpsPort, ops)

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case runErr = <-errCh:
		log.Error().Err(runErr).Msg("listener failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdown(shutdownCtx, log, consoleSrv, opsSrv)

	cancelWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return runErr
}

func shutdown(ctx context.Context, log zerolog.Logger, servers ...*http.Server) {
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Str("addr", srv.Addr).Msg("graceful shutdown failed")
		}
	}
}
