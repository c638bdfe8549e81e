// The worker consumes mutation notifications and fans them out. Today the
// only delivery target is the structured log, which is enough for the
// frontend's polling toast endpoint and for operational visibility.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mvaldes/digital-toolkit/internal/config"
	"github.com/mvaldes/digital-toolkit/internal/logger"
	"github.com/mvaldes/digital-toolkit/internal/notify"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewProductionLogger(cfg.ServerDebugMode || *debugFlag)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := zapLogger.Sync(); syncErr != nil {
			_ = syncErr
		}
	}()

	sink, err := notify.NewRabbitMQSink(cfg.RabbitMQURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_rabbitmq", zap.Error(err))
	}
	defer func() {
		if err := sink.Close(); err != nil {
			zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifications, errs, err := sink.Consume(ctx)
	if err != nil {
		zapLogger.Fatal("failed_to_start_consumer", zap.Error(err))
	}

	zapLogger.Info("worker_started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-quit:
			zapLogger.Info("worker_shutting_down")
			cancel()
			return
		case err, ok := <-errs:
			if !ok {
				zapLogger.Info("consumer_closed")
				return
			}
			zapLogger.Error("consumer_error", zap.Error(err))
		case n, ok := <-notifications:
			if !ok {
				zapLogger.Info("consumer_closed")
				return
			}
			zapLogger.Info("mutation_notification",
				zap.String("user_id", n.UserID.String()),
				zap.String("level", string(n.Level)),
				zap.String("operation", string(n.Operation)),
				zap.String("message", n.Message),
			)
		}
	}
}
