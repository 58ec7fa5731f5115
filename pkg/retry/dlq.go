package retry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DLQMessage represents a message moved to the dead letter queue after
// delivery attempts were exhausted.
type DLQMessage struct {
	ID             string            `json:"id"`
	OriginalTopic  string            `json:"original_topic"`
	OriginalKey    string            `json:"original_key"`
	Payload        json.RawMessage   `json:"payload"`
	Headers        map[string]string `json:"headers,omitempty"`
	Error          string            `json:"error"`
	Attempts       int               `json:"attempts"`
	FirstAttemptAt time.Time         `json:"first_attempt_at"`
	MovedToDLQAt   time.Time         `json:"moved_to_dlq_at"`
	Source         string            `json:"source"`
}

// DLQPublisher publishes failed messages to a dead letter queue
type DLQPublisher interface {
	PublishToDLQ(ctx context.Context, msg *DLQMessage) error
	DLQTopic(originalTopic string) string
}

// JSONPublisher is the producer surface needed to publish DLQ entries
type JSONPublisher interface {
	PublishJSON(ctx context.Context, topic string, key string, data interface{}) error
}

// KafkaDLQPublisher publishes failed messages to Kafka DLQ topics,
// named by appending a suffix to the original topic.
type KafkaDLQPublisher struct {
	producer JSONPublisher
	suffix   string
	source   string
}

func NewKafkaDLQPublisher(producer JSONPublisher, source string) *KafkaDLQPublisher {
	return &KafkaDLQPublisher{
		producer: producer,
		suffix:   ".dlq",
		source:   source,
	}
}

func (p *KafkaDLQPublisher) PublishToDLQ(ctx context.Context, msg *DLQMessage) error {
	if msg.MovedToDLQAt.IsZero() {
		msg.MovedToDLQAt = time.Now().UTC()
	}
	if msg.Source == "" {
		msg.Source = p.source
	}

	topic := p.DLQTopic(msg.OriginalTopic)
	if err := p.producer.PublishJSON(ctx, topic, msg.OriginalKey, msg); err != nil {
		return fmt.Errorf("failed to publish to dlq topic %s: %w", topic, err)
	}
	return nil
}

func (p *KafkaDLQPublisher) DLQTopic(originalTopic string) string {
	return originalTopic + p.suffix
}

// NoOpDLQPublisher drops DLQ messages. Used when no broker is configured.
type NoOpDLQPublisher struct{}

func NewNoOpDLQPublisher() *NoOpDLQPublisher {
	return &NoOpDLQPublisher{}
}

func (p *NoOpDLQPublisher) PublishToDLQ(ctx context.Context, msg *DLQMessage) error {
	return nil
}

func (p *NoOpDLQPublisher) DLQTopic(originalTopic string) string {
	return originalTopic + ".dlq"
}
