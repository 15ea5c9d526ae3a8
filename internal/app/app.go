// Package app wires the escrow service together: storage, external
// collaborators, domain services, the HTTP surface and the deadline sweeper.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ticketescrow/config"
	controller "ticketescrow/internal/controller/http"
	"ticketescrow/internal/domain/dispute"
	"ticketescrow/internal/domain/listing"
	"ticketescrow/internal/domain/order"
	"ticketescrow/internal/domain/transfer"
	"ticketescrow/internal/domain/verification"
	"ticketescrow/internal/external/fraudoracle"
	"ticketescrow/internal/external/kafka"
	"ticketescrow/internal/external/opensearch"
	"ticketescrow/internal/external/payments"
	"ticketescrow/internal/external/reputation"
	"ticketescrow/internal/messaging"
	escrow_repo "ticketescrow/internal/repo/escrow"
	listing_repo "ticketescrow/internal/repo/listing"
	verification_repo "ticketescrow/internal/repo/verification"
	"ticketescrow/internal/worker"
	"ticketescrow/pkg/health"
	"ticketescrow/pkg/logger"
	"ticketescrow/pkg/postgres"
	"ticketescrow/pkg/ratelimit"
)

func Run(cfg config.Config) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel, Console: cfg.LogFormat == "console"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ApplyMigrations(cfg.PgURL, MIGRATION_FS); err != nil {
		return fmt.Errorf("app - Run - ApplyMigrations: %w", err)
	}

	pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		return fmt.Errorf("app - Run - postgres.New: %w", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	// Outbound events: Kafka notifications plus the OpenSearch audit trail.
	// Both optional in local setups.
	var publisher messaging.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaNotificationsTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}
	var sink messaging.Sink
	if len(cfg.OpensearchUrls) > 0 {
		osSink, err := opensearch.NewSink(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexEvents)
		if err != nil {
			return fmt.Errorf("app - Run - opensearch.NewSink: %w", err)
		}
		sink = osSink
	}
	emitter := messaging.NewEmitter(publisher, sink)

	rails := payments.New(cfg.PaymentsBaseURL, cfg.PaymentsTimeout)
	oracle := fraudoracle.New(cfg.FraudOracleBaseURL, cfg.FraudOracleTimeout)
	tiers := reputation.New(cfg.ReputationBaseURL, cfg.ReputationTimeout)

	listingRepo := listing_repo.NewPgListingRepo(pool)
	orderRepo := escrow_repo.NewPgOrderRepo(pool)
	transferRepo := escrow_repo.NewPgTransferRepo(pool)
	disputeRepo := escrow_repo.NewPgDisputeRepo(pool)
	verificationRepo := verification_repo.NewPgVerificationRepo(pool)

	listingService := listing.NewService(listingRepo, tiers, emitter, cfg.MaxActiveListingsPerSeller)
	orderService := order.NewService(orderRepo, tiers, rails, emitter, cfg.TransferProofDeadline, cfg.PendingOrderTTL)
	disputeService := dispute.NewService(disputeRepo, rails, emitter, cfg.DisputeResponseDeadline)
	transferService := transfer.NewService(transferRepo, rails, emitter,
		cfg.BuyerResponseDeadline, cfg.DisputeResponseDeadline, cfg.BuyerAutoConfirm)
	verificationService := verification.NewService(verificationRepo, oracle, emitter)

	limiter := ratelimit.New(redisClient, cfg.RateLimitWindow)
	healthRegistry := health.NewRegistry(
		health.NewPostgresChecker(pool.Pool),
		health.NewRedisChecker(redisClient),
	)

	router := controller.NewRouter(
		controller.NewListingHandler(listingService),
		controller.NewOrderHandler(orderService),
		controller.NewTransferHandler(transferService),
		controller.NewDisputeHandler(disputeService),
		controller.NewVerificationHandler(verificationService),
		limiter,
		cfg.RateLimitWritePerWindow,
		healthRegistry,
	)

	engine := gin.New()
	engine.Use(gin.Recovery())
	router.SetUp(engine)

	sweeper := worker.NewSweeper(orderService, transferService, disputeService, cfg.SweepInterval)
	go func() {
		if err := sweeper.Run(ctx); err != nil {
			slog.Error("deadline sweeper exited", "error", err)
		}
	}()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}
	go func() {
		slog.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app - Run - server.Shutdown: %w", err)
	}
	return nil
}
