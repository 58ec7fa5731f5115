package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/christianbugingo/ticket-website/internal/service"
	"github.com/christianbugingo/ticket-website/pkg/kafka"
	"github.com/christianbugingo/ticket-website/pkg/logger"
	"github.com/christianbugingo/ticket-website/pkg/retry"
)

// Notification is a rendered passenger notification ready for delivery
type Notification struct {
	UserID       string
	BookingID    string
	TicketNumber string
	Subject      string
	Body         string
}

// NotificationSender delivers a notification over some channel
type NotificationSender interface {
	Send(ctx context.Context, n *Notification) error
	Name() string
}

// LogSender simulates delivery by logging the notification. Stands in
// for email and SMS providers.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, n *Notification) error {
	logger.Get().Info("delivering notification",
		zap.String("user_id", n.UserID),
		zap.String("booking_id", n.BookingID),
		zap.String("subject", n.Subject))
	return nil
}

func (s *LogSender) Name() string {
	return "log"
}

// NotificationWorkerConfig contains configuration for the notification worker
type NotificationWorkerConfig struct {
	WorkerCount int
	MaxAttempts int
}

// EventConsumer is the slice of the Kafka consumer the worker needs
type EventConsumer interface {
	Poll(ctx context.Context) ([]*kafka.Record, error)
	CommitRecords(ctx context.Context, records []*kafka.Record) error
}

// NotificationWorker consumes booking events and delivers passenger
// notifications. Delivery retries with backoff; exhausted messages go
// to the dead letter queue so a poison message never stalls the topic.
type NotificationWorker struct {
	consumer EventConsumer
	sender   NotificationSender
	dlq      retry.DLQPublisher
	retrier  *retry.Retrier
	config   *NotificationWorkerConfig
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(
	consumer EventConsumer,
	sender NotificationSender,
	dlq retry.DLQPublisher,
	config *NotificationWorkerConfig,
) *NotificationWorker {
	if config == nil {
		config = &NotificationWorkerConfig{}
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 5
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if dlq == nil {
		dlq = retry.NewNoOpDLQPublisher()
	}

	retrier := retry.New(&retry.Config{
		MaxRetries:      config.MaxAttempts - 1,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	})

	return &NotificationWorker{
		consumer: consumer,
		sender:   sender,
		dlq:      dlq,
		retrier:  retrier,
		config:   config,
	}
}

// Start starts the worker and begins consuming messages
func (w *NotificationWorker) Start(ctx context.Context) error {
	log := logger.Get()
	log.Info("starting notification worker",
		zap.Int("worker_count", w.config.WorkerCount),
		zap.String("sender", w.sender.Name()))

	recordsCh := make(chan *kafka.Record, w.config.WorkerCount*10)

	for i := 0; i < w.config.WorkerCount; i++ {
		go w.worker(ctx, i, recordsCh)
	}

	return w.poll(ctx, recordsCh)
}

// poll continuously polls for messages from Kafka
func (w *NotificationWorker) poll(ctx context.Context, recordsCh chan<- *kafka.Record) error {
	log := logger.Get()

	for {
		select {
		case <-ctx.Done():
			close(recordsCh)
			return ctx.Err()
		default:
			records, err := w.consumer.Poll(ctx)
			if err != nil {
				// A closed client never recovers, so retrying would
				// spin forever.
				if errors.Is(err, kafka.ErrClientClosed) {
					log.Info("kafka client closed, stopping poll loop")
					close(recordsCh)
					return err
				}
				log.Error("failed to poll messages", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			for _, record := range records {
				select {
				case recordsCh <- record:
				case <-ctx.Done():
					close(recordsCh)
					return ctx.Err()
				}
			}
		}
	}
}

// worker processes messages from the channel
func (w *NotificationWorker) worker(ctx context.Context, id int, recordsCh <-chan *kafka.Record) {
	log := logger.Get()
	log.Info("notification worker started", zap.Int("worker_id", id))

	for record := range recordsCh {
		if err := w.processRecord(ctx, record); err != nil {
			log.Error("failed to process record",
				zap.Int("worker_id", id),
				zap.Error(err))
		}
	}

	log.Info("notification worker stopped", zap.Int("worker_id", id))
}

// processRecord processes a single Kafka record
func (w *NotificationWorker) processRecord(ctx context.Context, record *kafka.Record) error {
	log := logger.Get()

	var event service.BookingEvent
	if err := json.Unmarshal(record.Value, &event); err != nil {
		log.Error("failed to unmarshal booking event, skipping",
			zap.String("topic", record.Topic),
			zap.Int64("offset", record.Offset),
			zap.Error(err))
		// Commit malformed messages so they are never reprocessed
		return w.consumer.CommitRecords(ctx, []*kafka.Record{record})
	}

	notification := renderNotification(&event)
	firstAttempt := time.Now().UTC()

	result := w.retrier.Do(ctx, func(ctx context.Context) error {
		return w.sender.Send(ctx, notification)
	})

	if result.Err != nil {
		log.Error("notification delivery exhausted, moving to dlq",
			zap.String("booking_id", event.BookingID),
			zap.Int("attempts", result.Attempts),
			zap.Error(result.LastError))

		dlqMsg := &retry.DLQMessage{
			ID:             event.EventID,
			OriginalTopic:  record.Topic,
			OriginalKey:    string(record.Key),
			Payload:        record.Value,
			Error:          result.LastError.Error(),
			Attempts:       result.Attempts,
			FirstAttemptAt: firstAttempt,
		}
		if err := w.dlq.PublishToDLQ(ctx, dlqMsg); err != nil {
			log.Error("failed to publish to dlq", zap.Error(err))
		}
	} else {
		log.Info("notification delivered",
			zap.String("booking_id", event.BookingID),
			zap.String("event_type", string(event.EventType)),
			zap.Int("attempts", result.Attempts))
	}

	return w.consumer.CommitRecords(ctx, []*kafka.Record{record})
}

// renderNotification builds the passenger-facing message for an event
func renderNotification(event *service.BookingEvent) *Notification {
	n := &Notification{
		UserID:       event.UserID,
		BookingID:    event.BookingID,
		TicketNumber: event.TicketNumber,
	}

	switch event.EventType {
	case service.BookingEventConfirmed:
		n.Subject = "Your ticket is confirmed"
		n.Body = fmt.Sprintf("Ticket %s confirmed for seat %s. Amount paid: %.0f RWF.",
			event.TicketNumber, event.SeatNumber, event.AmountPaid)
	case service.BookingEventCancelled:
		n.Subject = "Your booking was cancelled"
		n.Body = fmt.Sprintf("Ticket %s has been cancelled. Your seat %s was released.",
			event.TicketNumber, event.SeatNumber)
	default:
		n.Subject = "Booking update"
		n.Body = fmt.Sprintf("Ticket %s status changed.", event.TicketNumber)
	}

	return n
}
