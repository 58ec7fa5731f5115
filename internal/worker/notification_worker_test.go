package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/christianbugingo/ticket-website/internal/service"
	"github.com/christianbugingo/ticket-website/pkg/kafka"
)

// fakeConsumer returns a fixed error from Poll
type fakeConsumer struct {
	pollErr error
	polls   int32
}

func (f *fakeConsumer) Poll(ctx context.Context) ([]*kafka.Record, error) {
	atomic.AddInt32(&f.polls, 1)
	return nil, f.pollErr
}

func (f *fakeConsumer) CommitRecords(ctx context.Context, records []*kafka.Record) error {
	return nil
}

func TestRenderNotification_Confirmed(t *testing.T) {
	event := &service.BookingEvent{
		EventType:    service.BookingEventConfirmed,
		BookingID:    "booking-123",
		UserID:       "user-001",
		TicketNumber: "TKT-000042",
		SeatNumber:   "12A",
		AmountPaid:   3500,
	}

	n := renderNotification(event)

	assert.Equal(t, "Your ticket is confirmed", n.Subject)
	assert.Contains(t, n.Body, "TKT-000042")
	assert.Contains(t, n.Body, "seat 12A")
	assert.Contains(t, n.Body, "3500 RWF")
	assert.Equal(t, "user-001", n.UserID)
	assert.Equal(t, "booking-123", n.BookingID)
}

func TestRenderNotification_Cancelled(t *testing.T) {
	event := &service.BookingEvent{
		EventType:    service.BookingEventCancelled,
		BookingID:    "booking-123",
		TicketNumber: "TKT-000042",
		SeatNumber:   "12A",
	}

	n := renderNotification(event)

	assert.Equal(t, "Your booking was cancelled", n.Subject)
	assert.Contains(t, n.Body, "seat 12A was released")
}

func TestRenderNotification_UnknownEventType(t *testing.T) {
	event := &service.BookingEvent{
		EventType:    service.BookingEventType("booking.updated"),
		TicketNumber: "TKT-000042",
	}

	n := renderNotification(event)

	assert.Equal(t, "Booking update", n.Subject)
	assert.Contains(t, n.Body, "TKT-000042")
}

func TestNewNotificationWorker_Defaults(t *testing.T) {
	w := NewNotificationWorker(nil, NewLogSender(), nil, nil)

	assert.Equal(t, 5, w.config.WorkerCount)
	assert.Equal(t, 3, w.config.MaxAttempts)
	assert.NotNil(t, w.dlq, "missing DLQ publisher should fall back to no-op")
	assert.NotNil(t, w.retrier)
}

func TestNotificationWorker_StopsWhenClientClosed(t *testing.T) {
	consumer := &fakeConsumer{pollErr: kafka.ErrClientClosed}
	w := NewNotificationWorker(consumer, NewLogSender(), nil, &NotificationWorkerConfig{WorkerCount: 1})

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, kafka.ErrClientClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("worker kept polling after the client was closed")
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&consumer.polls))
}

func TestLogSender(t *testing.T) {
	s := NewLogSender()

	assert.Equal(t, "log", s.Name())
	assert.NoError(t, s.Send(context.Background(), &Notification{
		UserID:  "user-001",
		Subject: "Your ticket is confirmed",
	}))
}
