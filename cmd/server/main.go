package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/iho/amlguard/internal/adapter/http"
	"github.com/iho/amlguard/internal/adapter/http/handler"
	"github.com/iho/amlguard/internal/adapter/idgen"
	"github.com/iho/amlguard/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/amlguard/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/amlguard/internal/adapter/repository/redis"
	"github.com/iho/amlguard/internal/adapter/sink"
	"github.com/iho/amlguard/internal/graph"
	"github.com/iho/amlguard/internal/infrastructure/config"
	"github.com/iho/amlguard/internal/infrastructure/logger"
	"github.com/iho/amlguard/internal/infrastructure/metrics"
	"github.com/iho/amlguard/internal/infrastructure/postgres"
	"github.com/iho/amlguard/internal/infrastructure/redis"
	"github.com/iho/amlguard/internal/scorer"
	"github.com/iho/amlguard/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
)

const graphGaugeInterval = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to Redis (optional)
	var redisClient *redislib.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	} else {
		log.Info().Msg("redis not configured, state persistence disabled")
	}

	// Connect to PostgreSQL (optional)
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	} else {
		log.Info().Msg("postgres not configured, durable alert sink disabled")
	}

	// Anomaly scorer, pre-trained parameters optional
	anomalyScorer := scorer.NewGaussian()
	if cfg.ModelPath != "" {
		if err := anomalyScorer.Load(cfg.ModelPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.ModelPath).Msg("failed to load anomaly model")
		}
		if anomalyScorer.Fitted() {
			log.Info().Str("path", cfg.ModelPath).Msg("loaded anomaly model")
		} else {
			log.Warn().Str("path", cfg.ModelPath).Msg("anomaly model not found, scoring with neutral default")
		}
	}

	// Pipeline wiring
	var persistence usecase.StatePersistence
	if redisClient != nil {
		persistence = redisRepo.NewStateStore(redisClient)
	}

	reasoner := graph.NewReasoner(graph.Config{
		FanInThreshold:  cfg.FanInThreshold,
		FanInScore:      cfg.FanInScore,
		CycleScore:      cfg.CycleScore,
		MaxCycleDepth:   cfg.MaxCycleDepth,
		CycleStepBudget: cfg.CycleStepBudget,
	})

	pipelineMetrics := metrics.New()
	pipeline := usecase.NewPipeline(
		memory.NewStateStore(cfg.HistoryCapacity),
		reasoner,
		anomalyScorer,
		persistence,
		idgen.NewULIDGenerator(),
		pipelineMetrics,
		log,
		usecase.PipelineConfig{
			AlertThreshold: cfg.AlertThreshold,
			StateTTL:       cfg.StateTTL,
		},
	)

	// Alert sinks
	memSink := sink.NewMemorySink(sink.DefaultMemorySinkCapacity)
	sinks := []usecase.AlertSink{sink.NewLogSink(log), memSink}

	var alertLister handler.AlertLister = memSink
	if pool != nil {
		alertRepo := postgresRepo.NewAlertRepository(pool)
		sinks = append(sinks, alertRepo)
		alertLister = alertRepo
	}
	if cfg.AlertFilePath != "" {
		fileSink, err := sink.NewFileSink(cfg.AlertFilePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.AlertFilePath).Msg("failed to open alert file")
		}
		defer fileSink.Close()
		sinks = append(sinks, fileSink)
	}

	stream := usecase.NewStream(pipeline, sink.NewMultiSink(sinks...), cfg.LaneCount, log)
	defer stream.Close()

	// Periodically export graph size
	gaugeStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(graphGaugeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				g := reasoner.Graph()
				pipelineMetrics.ObserveGraph(g.NodeCount(), g.EdgeCount())
			case <-gaugeStop:
				return
			}
		}
	}()
	defer close(gaugeStop)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(stream),
		AccountHandler:     handler.NewAccountHandler(pipeline),
		AlertHandler:       handler.NewAlertHandler(alertLister),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Int("lanes", cfg.LaneCount).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
