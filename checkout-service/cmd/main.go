package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_travel/checkout-service/internal/catalog"
	"github.com/fjod/go_travel/checkout-service/internal/config"
	checkoutgrpc "github.com/fjod/go_travel/checkout-service/internal/grpc"
	h "github.com/fjod/go_travel/checkout-service/internal/http"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
	"github.com/fjod/go_travel/checkout-service/internal/publisher"
	"github.com/fjod/go_travel/checkout-service/internal/service"
	"github.com/fjod/go_travel/checkout-service/internal/session"
	"github.com/fjod/go_travel/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New("checkout-service", cfg.LogLevel)
	slog.SetDefault(log)

	// incoming traceparent headers become the parent of request spans
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	if err := run(cfg, log); err != nil {
		log.Error("checkout-service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	log.Info("checkout-service starting...")

	// Catalog database
	repo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("catalog migrations completed", "path", cfg.CatalogDBPath)
	packages := catalog.NewService(repo)

	store, err := newStore(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Booking events go to Kafka only when brokers are configured
	var outbox service.EventOutbox
	var poller *publisher.OutboxPoller
	var writer *kafka.Writer
	pollerDone := make(chan struct{})
	if cfg.PublishingEnabled() {
		box := publisher.NewOutbox()
		writer = publisher.NewKafkaWriter(cfg.KafkaTopic, cfg.KafkaBrokers...)
		poller = publisher.NewOutboxPoller(box, writer, log)
		outbox = box
		go func() {
			defer close(pollerDone)
			poller.Run(ctx)
		}()
		log.Info("booking events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		close(pollerDone)
		log.Info("booking events disabled, KAFKA_BROKERS is empty")
	}

	gateway := payment.NewMockGateway(cfg.PaymentLatency, payment.RandomOutcome{})
	processor := payment.NewProcessor(gateway, cfg.PaymentTimeout, log)
	checkoutService := service.NewCheckoutService(packages, store, processor, outbox, cfg.ConfirmationBaseURL, log)

	// HTTP
	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: h.NewRouter(h.RouterConfig{
			RequestTimeout:     cfg.RequestTimeout,
			MaxRequestBodySize: cfg.MaxRequestBodySize,
		}, checkoutService, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// gRPC health
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on grpc port: %w", err)
	}
	grpcServer := checkoutgrpc.NewServer(store, log)
	go grpcServer.Watch(ctx)

	errCh := make(chan error, 2)
	go func() {
		log.Info("http server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		log.Info("grpc server listening", "port", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down checkout service...")
	case runErr = <-errCh:
		stop()
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server forced to shutdown", "error", err)
	}
	grpcServer.GracefulStop()

	<-pollerDone
	if poller != nil {
		if n := poller.Flush(shutdownCtx); n > 0 {
			log.Info("flushed booking events on shutdown", "count", n)
		}
		if err := writer.Close(); err != nil {
			log.Error("failed to close kafka writer", "error", err)
		}
	}

	log.Info("checkout service stopped")
	return runErr
}

func newStore(cfg *config.Config, log *slog.Logger) (session.Store, error) {
	if cfg.SessionStore != config.StoreRedis {
		log.Info("using in-memory session store", "ttl", cfg.SessionTTL)
		return session.NewMemoryStore(cfg.SessionTTL), nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Info("using redis session store", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
	return session.NewRedisStore(client, cfg.SessionTTL), nil
}
