// cmd/community-finder/main.go
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

	"go.uber.org/zap"

	"topic-communities/internal/api"
	"topic-communities/internal/common/cache"
	"topic-communities/internal/common/camunda"
	"topic-communities/internal/common/config"
	"topic-communities/internal/common/database"
	"topic-communities/internal/common/logger"
	"topic-communities/internal/common/observability"
	"topic-communities/internal/common/validation"
	"topic-communities/internal/resolution"
	"topic-communities/internal/store"
	"topic-communities/internal/suggest"
	"topic-communities/pkg/registry"

	sc "topic-communities/internal/workers/ai/suggest-communities"
	rc "topic-communities/internal/workers/topic/resolve-communities"
	stw "topic-communities/internal/workers/topic/search-topics"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// backends holds whatever connections the configuration asked for.
type backends struct {
	store   store.Store
	checks  map[string]database.Pinger
	closers []func() error
}

func (b *backends) Close(log *zap.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			log.Warn("error closing backend", zap.Error(err))
		}
	}
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	log, zapLog, err := logger.NewFromOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		bootLog.Fatal("logger setup failed", zap.Error(err))
	}
	defer zapLog.Sync()

	zapLog.Info("Starting community finder...",
		zap.String("environment", cfg.App.Environment),
		zap.String("store", cfg.Store.Backend),
		zap.String("searchIndex", cfg.Store.SearchIndex),
		zap.String("cache", cfg.Cache.Backend),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("OpenTelemetry metrics disabled", zap.Error(err))
	}

	ctx := context.Background()

	b, err := openBackends(ctx, cfg, log, zapLog)
	if err != nil {
		zapLog.Fatal("backend setup failed", zap.Error(err))
	}
	defer b.Close(zapLog)

	reg, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.String("path", cfg.Registry.Path), zap.Error(err))
	}
	suggestContract, err := validation.NewContract(reg, suggest.TaskType)
	if err != nil {
		zapLog.Fatal("activity registry is missing the suggestion contract", zap.Error(err))
	}

	// Without a generator the flow still serves curated communities.
	var gen suggest.Generator
	if g, err := suggest.FromConfig(ctx, cfg.APIs.GenAI, log, suggest.WithContract(suggestContract)); err != nil {
		zapLog.Warn("suggestion generator unavailable, AI fallback disabled", zap.Error(err))
	} else {
		gen = g
	}

	svc := resolution.NewService(b.store, gen,
		resolution.WithLogger(log),
		resolution.WithMinRating(cfg.Resolution.MinRating),
		resolution.WithPlaceholderImage(cfg.Resolution.PlaceholderImage),
	)

	// --- Zeebe workers ---
	var (
		zeebe   *camunda.Client
		manager *camunda.Manager
	)
	if cfg.Camunda.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.Connect(ctx, &camunda.ClientConfig{
				GatewayAddress:         cfg.Camunda.BrokerAddress,
				UsePlaintextConnection: true,
				ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
			})
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
		b.checks["zeebe"] = zeebe

		manager = camunda.NewManager(zeebe, obs, log)
		startWorkers(manager, cfg, reg, svc, gen, log)
	}

	// --- HTTP API ---
	server := api.NewServer(svc, api.Options{
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		RateLimit:       cfg.HTTP.RateLimit,
		RateLimitWindow: config.GetDuration(cfg.HTTP.RateLimitWindow),
		Checks:          b.checks,
	}, log)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.HTTP.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	if manager != nil {
		manager.Close()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down meter provider", zap.Error(err))
	}

	zapLog.Info("Community finder stopped gracefully")
}

func openBackends(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) (*backends, error) {
	b := &backends{checks: map[string]database.Pinger{}}

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				pg.Close()
				return err
			}
			return nil
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return b, err
		}
		b.closers = append(b.closers, pg.Close)
		b.checks["postgres"] = pg
		zapLog.Info("PostgreSQL connected successfully")

		pgStore := store.NewPostgres(pg.DB)
		if err := pgStore.Migrate(ctx); err != nil {
			return b, fmt.Errorf("postgres migration: %w", err)
		}
		b.store = pgStore
	default:
		b.store = store.NewSeeded()
	}

	if cfg.Store.SearchIndex == config.SearchIndexElasticsearch {
		var es *database.ElasticsearchClient
		err := retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			return b, err
		}
		b.checks["elasticsearch"] = es
		zapLog.Info("Elasticsearch connected successfully")

		b.store = store.WithSearchIndex(b.store, store.NewTopicIndex(es.Client, cfg.Store.TopicIndex, cfg.Store.SearchLimit))
	}

	var c cache.Cache
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redis := database.NewRedis(cfg.Database.Redis)
		b.closers = append(b.closers, redis.Close)
		err := retryWithBackoff(func() error {
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return b, err
		}
		b.checks["redis"] = redis
		zapLog.Info("Redis connected successfully")
		c = cache.NewRedis(redis.Client, cfg.Cache.Prefix)
	case config.CacheBackendLRU:
		lru, err := cache.NewLRU(cfg.Cache.Size)
		if err != nil {
			return b, err
		}
		c = lru
	}
	if c != nil {
		b.store = store.NewCached(b.store, c, config.GetDuration(cfg.Cache.TTL), log)
	}

	return b, nil
}

func startWorkers(m *camunda.Manager, cfg *config.Config, reg *registry.ActivityRegistry, svc *resolution.Service, gen suggest.Generator, log logger.Logger) {
	{
		wcfg := config.GetWorkerConfig(cfg, stw.TaskType)
		hcfg := stw.FromWorkerConfig(wcfg)
		hcfg.Registry = reg
		m.Start(stw.TaskType, wcfg, stw.NewHandler(hcfg, svc, log).Handle)
	}
	{
		wcfg := config.GetWorkerConfig(cfg, rc.TaskType)
		hcfg := rc.FromWorkerConfig(wcfg)
		hcfg.Registry = reg
		m.Start(rc.TaskType, wcfg, rc.NewHandler(hcfg, svc, log).Handle)
	}
	{
		wcfg := config.GetWorkerConfig(cfg, sc.TaskType)
		m.Start(sc.TaskType, wcfg, sc.NewHandler(sc.FromWorkerConfig(wcfg), gen, log).Handle)
	}
}
