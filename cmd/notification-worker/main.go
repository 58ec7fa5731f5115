package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/christianbugingo/ticket-website/internal/worker"
	"github.com/christianbugingo/ticket-website/pkg/config"
	"github.com/christianbugingo/ticket-website/pkg/kafka"
	"github.com/christianbugingo/ticket-website/pkg/logger"
	"github.com/christianbugingo/ticket-website/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := &logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: "notification-worker",
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Notification Worker...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer, err := kafka.NewConsumer(ctx, &kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        "notification-worker",
		Topics:         []string{cfg.Notifications.Topic},
		ClientID:       "notification-worker",
		MaxRetries:     3,
		RetryInterval:  2 * time.Second,
		SessionTimeout: 30 * time.Second,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to create Kafka consumer: %v", err))
	}
	defer consumer.Close()
	appLog.Info("Kafka consumer connected", zap.String("topic", cfg.Notifications.Topic))

	// Producer for the dead letter queue
	var dlq retry.DLQPublisher
	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Kafka.Brokers,
		ClientID:      "notification-worker-dlq",
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
	})
	if err != nil {
		appLog.Warn("Failed to create DLQ producer, exhausted messages will be dropped", zap.Error(err))
		dlq = retry.NewNoOpDLQPublisher()
	} else {
		defer producer.Close()
		dlq = retry.NewKafkaDLQPublisher(producer, "notification-worker")
	}

	notificationWorker := worker.NewNotificationWorker(
		consumer,
		worker.NewLogSender(),
		dlq,
		&worker.NotificationWorkerConfig{
			WorkerCount: 5,
			MaxAttempts: cfg.Notifications.MaxAttempts,
		},
	)

	go func() {
		if err := notificationWorker.Start(ctx); err != nil && ctx.Err() == nil {
			appLog.Error("Worker error", zap.Error(err))
		}
	}()

	appLog.Info("Notification Worker started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down worker...")
	cancel()

	// Give in-flight deliveries time to finish
	time.Sleep(2 * time.Second)

	appLog.Info("Worker exited gracefully")
}
