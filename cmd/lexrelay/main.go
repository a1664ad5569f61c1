package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexrelay/internal/config"
	"github.com/kailas-cloud/lexrelay/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/lexrelay/internal/db/redis"
	"github.com/kailas-cloud/lexrelay/internal/domain/billing"
	domlc "github.com/kailas-cloud/lexrelay/internal/domain/legalcode"
	"github.com/kailas-cloud/lexrelay/internal/domain/search/collection"
	"github.com/kailas-cloud/lexrelay/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/lexrelay/internal/logger"
	"github.com/kailas-cloud/lexrelay/internal/metrics"
	budgetrepo "github.com/kailas-cloud/lexrelay/internal/repository/budget"
	legalcoderepo "github.com/kailas-cloud/lexrelay/internal/repository/legalcode"
	chiTransport "github.com/kailas-cloud/lexrelay/internal/transport/chi"
	"github.com/kailas-cloud/lexrelay/internal/transport/datajud"
	openaiGen "github.com/kailas-cloud/lexrelay/internal/transport/openai"
	stripeGw "github.com/kailas-cloud/lexrelay/internal/transport/stripe"
	"github.com/kailas-cloud/lexrelay/internal/transport/youtube"
	checkoutuc "github.com/kailas-cloud/lexrelay/internal/usecase/checkout"
	generationuc "github.com/kailas-cloud/lexrelay/internal/usecase/generation"
	healthuc "github.com/kailas-cloud/lexrelay/internal/usecase/health"
	legalcodeuc "github.com/kailas-cloud/lexrelay/internal/usecase/legalcode"
	searchuc "github.com/kailas-cloud/lexrelay/internal/usecase/search"
	transcriptuc "github.com/kailas-cloud/lexrelay/internal/usecase/transcript"
	usageuc "github.com/kailas-cloud/lexrelay/internal/usecase/usage"
	"github.com/kailas-cloud/lexrelay/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level, logpkg.FileSink{
		Path:       cfg.Logging.File.Path,
		MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
		MaxBackups: cfg.Logging.File.MaxBackups,
		MaxAgeDays: cfg.Logging.File.MaxAgeDays,
		Compress:   cfg.Logging.File.Compress,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lexrelay",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("collections", cfg.Search.Collections),
		zap.Bool("generation", cfg.Generation.Enabled()),
		zap.Bool("payments", cfg.Payments.Enabled()),
		zap.Bool("legal_codes", cfg.LegalCodes.Enabled()),
	)

	metrics.RegisterUpstreamMetrics()

	ctx := context.Background()
	health := healthuc.New(2 * time.Second)

	// Optional shared store for budget counters.
	var store *dbRedis.Store
	if len(cfg.Database.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		health.Register("redis", store)
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Database.Addrs))
	}

	// Optional legal-code database.
	var pg *postgres.DB
	if cfg.LegalCodes.Enabled() {
		pg, err = postgres.Open(postgres.Config{
			DSN:             cfg.LegalCodes.DSN,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to connect legal-code database", zap.Error(err))
		}
		defer func() { _ = pg.Close() }()
		health.Register("postgres", pg)
	}

	services := chiTransport.Services{
		Search: buildSearch(cfg.Search),
		Health: health,
	}

	// Generation and usage share one BudgetTracker.
	var budget *generationuc.BudgetTracker
	if cfg.Generation.Enabled() {
		budget = buildBudget(ctx, cfg.Generation, store, logger)
		gen := openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:  cfg.Generation.APIKey,
			BaseURL: cfg.Generation.BaseURL,
			Model:   cfg.Generation.Model,
			Timeout: time.Duration(cfg.Generation.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		services.Generation = generationuc.New(gen, budget, cfg.Generation.MaxTokens)
	}

	// Pass nil interface (not typed nil pointer) when generation is disabled.
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetReader = budget
	}
	services.Usage = usageuc.New(budgetReader)

	if cfg.Payments.Enabled() {
		gw := stripeGw.NewGateway(&stripeGw.Config{
			SecretKey:  cfg.Payments.SecretKey,
			BaseURL:    cfg.Payments.BaseURL,
			MaxRetries: 2,
		})
		services.Checkout = checkoutuc.New(gw,
			billing.NewCatalog(cfg.Payments.Plans, cfg.Payments.DefaultPlan),
			checkoutuc.URLs{
				Success:      cfg.Payments.SuccessURL,
				Cancel:       cfg.Payments.CancelURL,
				PortalReturn: cfg.Payments.PortalReturnURL,
			},
		)
	}

	yt := youtube.NewClient(&youtube.Config{
		BaseURL: cfg.Transcript.BaseURL,
		Timeout: time.Duration(cfg.Transcript.TimeoutSec) * time.Second,
	})
	services.Transcript = transcriptuc.New(yt, cfg.Transcript.PreferredLanguages)

	if pg != nil {
		services.LegalCodes = legalcodeuc.New(
			legalcoderepo.New(pg.DB),
			domlc.NewCatalog(cfg.LegalCodes.Tables),
			cfg.LegalCodes.MaxLimit,
		)
	}

	var auth *chiTransport.Authenticator
	if cfg.Auth.JWTSecret != "" {
		auth = chiTransport.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.JWTAudience)
	}

	server := chiTransport.NewServer(services, auth, logger)
	handler := server.Handler(chiTransport.CORSConfig{
		AllowedOrigins: cfg.HTTP.CORS.AllowedOrigins,
		MaxAge:         time.Duration(cfg.HTTP.CORS.MaxAgeSec) * time.Second,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func buildSearch(c config.SearchConfig) *searchuc.Service {
	client := datajud.NewClient(&datajud.Config{
		BaseURL:          c.BaseURL,
		APIKey:           c.APIKey,
		CollectionPrefix: c.CollectionPrefix,
		Timeout:          time.Duration(c.TimeoutSec) * time.Second,
		MaxRetries:       c.MaxRetries,
	})
	return searchuc.New(client,
		collection.NewAllowlist(c.Collections),
		query.NewBuilder(c.ResultLimit, c.SortTimestampField),
	)
}

// buildBudget creates the token tracker, persisted in redis when a store is configured.
func buildBudget(
	ctx context.Context, c config.GenerationConfig, store *dbRedis.Store, logger *zap.Logger,
) *generationuc.BudgetTracker {
	action := generationuc.BudgetActionWarn
	if c.Budget.Action == string(generationuc.BudgetActionReject) {
		action = generationuc.BudgetActionReject
	}
	budget := generationuc.NewBudgetTracker(
		c.Model, c.Budget.DailyTokenLimit, c.Budget.MonthlyTokenLimit, action, logger,
	)
	if store != nil {
		budget.WithStore(ctx, budgetrepo.New(store, 0, 0))
	}
	return budget
}
