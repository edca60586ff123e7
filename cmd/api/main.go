package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"balance-ledger/config"
	httpHandler "balance-ledger/internal/adapter/http/handler"
	"balance-ledger/internal/adapter/http/middleware"
	natsMessaging "balance-ledger/internal/adapter/messaging/nats"
	pgStorage "balance-ledger/internal/adapter/storage/postgres"
	redisStorage "balance-ledger/internal/adapter/storage/redis"
	"balance-ledger/internal/core/ports"
	"balance-ledger/internal/service"
	"balance-ledger/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Balance Ledger")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret must be set (LEDGER_JWT_SECRET)")
	}
	loc, err := cfg.Ledger.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid ledger timezone")
	}

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	nc, err := natsMessaging.Connect(cfg.NATS.URL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to NATS")
	}

	healthCheckers := []ports.HealthChecker{
		pgStorage.NewHealthCheck(pool),
		redisStorage.NewHealthCheck(rdb),
	}

	var events ports.EventPublisher
	if nc != nil {
		defer nc.Close()
		events = natsMessaging.NewPublisher(nc, cfg.NATS.Subject)
		healthCheckers = append(healthCheckers, natsMessaging.NewHealthCheck(nc))
	}

	// Repositories
	userRepo := pgStorage.NewUserRepo(pool)
	balanceRepo := pgStorage.NewBalanceRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	serviceRepo := pgStorage.NewServiceRepo(pool)
	counterRepo := pgStorage.NewInvoiceCounterRepo()
	transactor := pgStorage.NewTransactor(pool)

	// Services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	catalogSvc := service.NewCatalogService(serviceRepo, redisStorage.NewCatalogCache(rdb, cfg.Ledger.CatalogCacheTTL), log)
	accountSvc := service.NewAccountService(userRepo, balanceRepo, hashSvc, tokenSvc, transactor, log)
	ledgerSvc := service.NewLedgerService(
		balanceRepo,
		ledgerRepo,
		service.NewInvoiceAllocator(counterRepo, loc),
		catalogSvc,
		transactor,
		events,
		log,
	)
	historySvc := service.NewHistoryService(ledgerRepo)

	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		limiter = redisStorage.NewRateLimitStore(rdb)
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AccountSvc:     accountSvc,
		LedgerSvc:      ledgerSvc,
		HistorySvc:     historySvc,
		CatalogSvc:     catalogSvc,
		TokenSvc:       tokenSvc,
		RateLimiter:    limiter,
		HealthCheckers: healthCheckers,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}

	log.Info().Msg("Server exited")
}
