package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/pkg/kafka"
)

// BookingEventType identifies the kind of booking event
type BookingEventType string

const (
	BookingEventConfirmed BookingEventType = "booking.confirmed"
	BookingEventCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is the notification payload published for booking
// lifecycle changes. The notification worker consumes these to deliver
// passenger notifications.
type BookingEvent struct {
	EventID      string           `json:"event_id"`
	EventType    BookingEventType `json:"event_type"`
	BookingID    string           `json:"booking_id"`
	TicketNumber string           `json:"ticket_number"`
	UserID       string           `json:"user_id"`
	ScheduleID   string           `json:"schedule_id"`
	SeatNumber   string           `json:"seat_number"`
	AmountPaid   float64          `json:"amount_paid"`
	OccurredAt   time.Time        `json:"occurred_at"`
	Source       string           `json:"source"`
}

// EventPublisher defines the interface for publishing booking events
type EventPublisher interface {
	// PublishBookingConfirmed publishes a booking confirmed event
	PublishBookingConfirmed(ctx context.Context, booking *domain.Booking) error

	// PublishBookingCancelled publishes a booking cancelled event
	PublishBookingCancelled(ctx context.Context, booking *domain.Booking) error

	// Close closes the event publisher
	Close() error
}

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer    *kafka.Producer
	topic       string
	serviceName string
}

// EventPublisherConfig contains configuration for the event publisher
type EventPublisherConfig struct {
	Brokers     []string
	Topic       string
	ServiceName string
	ClientID    string
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(ctx context.Context, cfg *EventPublisherConfig) (*KafkaEventPublisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("event publisher config is required")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "booking-notifications"
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "itike-api"
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "itike-api-producer"
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Brokers,
		ClientID:      clientID,
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
		BatchSize:     100,
		LingerMs:      10,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaEventPublisher{
		producer:    producer,
		topic:       topic,
		serviceName: serviceName,
	}, nil
}

// PublishBookingConfirmed publishes a booking confirmed event
func (p *KafkaEventPublisher) PublishBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return p.publishEvent(ctx, BookingEventConfirmed, booking)
}

// PublishBookingCancelled publishes a booking cancelled event
func (p *KafkaEventPublisher) PublishBookingCancelled(ctx context.Context, booking *domain.Booking) error {
	return p.publishEvent(ctx, BookingEventCancelled, booking)
}

// Close closes the event publisher
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}

func (p *KafkaEventPublisher) publishEvent(ctx context.Context, eventType BookingEventType, booking *domain.Booking) error {
	event := &BookingEvent{
		EventID:      uuid.New().String(),
		EventType:    eventType,
		BookingID:    booking.ID,
		TicketNumber: booking.TicketNumber(),
		UserID:       booking.UserID,
		ScheduleID:   booking.ScheduleID,
		SeatNumber:   booking.SeatNumber,
		AmountPaid:   booking.AmountPaid,
		OccurredAt:   time.Now().UTC(),
		Source:       p.serviceName,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	return p.producer.Produce(ctx, &kafka.Message{
		Topic: p.topic,
		Key:   []byte(booking.ID),
		Value: value,
		Headers: map[string]string{
			"event_type": string(eventType),
		},
	})
}

// NoOpEventPublisher discards events. Used when no broker is configured
// so booking flows stay available without Kafka.
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a new NoOpEventPublisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

func (p *NoOpEventPublisher) PublishBookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return nil
}

func (p *NoOpEventPublisher) PublishBookingCancelled(ctx context.Context, booking *domain.Booking) error {
	return nil
}

func (p *NoOpEventPublisher) Close() error {
	return nil
}
