// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services; configuration decides which backends run.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"imexspec/internal/calc"
	"imexspec/internal/catalog"
	"imexspec/internal/health"
	"imexspec/internal/imex"
	"imexspec/internal/materials"
	"imexspec/internal/norms"
	"imexspec/internal/platform/config"
	"imexspec/internal/platform/httpserver"
	"imexspec/internal/platform/logger"
	platformredis "imexspec/internal/platform/redis"
	"imexspec/internal/publication"
	"imexspec/internal/rules"
	"imexspec/internal/speccfg"
	httptransport "imexspec/internal/transport/http"
	"imexspec/pkg/platform/audit"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.LevelFromEnv())

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store selection: one DSN switches every module to postgres. The health
	// gate reads packStore directly so its pack counts never come from cache.
	var (
		catalogStore   catalog.Store
		materialsStore materials.Store
		packStore      health.PackStore
		normStore      norms.Store
		ruleStore      rules.Store
		specStore      speccfg.Store
		auditStore     audit.Store
	)
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}

		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer pool.Close()

		catalogStore = catalog.NewPostgres(db)
		materialsStore = materials.NewPostgres(db)
		pgNorms := norms.NewPostgres(db)
		packStore = pgNorms
		normStore = pgNorms
		ruleStore = rules.NewPostgres(db)
		specStore = speccfg.NewPostgres(db)
		auditStore = audit.NewPostgresStore(pool)
		log.Info("postgres stores enabled")
	} else {
		catalogStore = catalog.NewInMemoryStore()
		materialsStore = materials.NewInMemoryStore()
		memNorms := norms.NewInMemoryStore()
		packStore = memNorms
		normStore = memNorms
		ruleStore = rules.NewInMemoryStore()
		specStore = speccfg.NewInMemoryStore()
		auditStore = audit.NewInMemoryStore()
		log.Info("in-memory stores enabled")
	}

	normMetrics := norms.NewMetrics()
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		normStore = norms.NewCachedStore(normStore, redisClient, redisClient.CacheTTL, log, normMetrics)
		log.Info("norm pack cache enabled", "ttl", redisClient.CacheTTL.String())
	}

	var sink audit.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := audit.NewPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer publisher.Close()
		sink = publisher
		log.Info("decision log streaming enabled", "topic", cfg.Kafka.Topic)
	}
	recorder := audit.NewRecorder(auditStore, sink, log)
	defer recorder.Close()

	encoder, err := imex.NewEncoder(ctx, catalogStore)
	if err != nil {
		return err
	}

	validator := publication.NewValidator(normStore, recorder, log, publication.NewMetrics())
	healthSvc := health.NewService(packStore, recorder, log, cfg.Health.FailureThreshold)
	specSvc := speccfg.NewService(specStore, healthSvc, validator, encoder, recorder, log)

	go healthSvc.Run(ctx, cfg.Health.CheckInterval)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		CatalogStore:   catalogStore,
		MaterialsStore: materialsStore,
		NormResolver:   norms.NewResolver(normStore, materialsStore, log, normMetrics),
		RuleEngine:     rules.NewEngine(ruleStore, log),
		Encoder:        encoder,
		Calc:           calc.NewService(normStore, log),
		Validator:      validator,
		Health:         healthSvc,
		Specs:          specSvc,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
