package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}

	if config.InitialInterval != 1*time.Second {
		t.Errorf("InitialInterval = %v, want 1s", config.InitialInterval)
	}

	if config.MaxInterval != 30*time.Second {
		t.Errorf("MaxInterval = %v, want 30s", config.MaxInterval)
	}

	if config.Multiplier != 2.0 {
		t.Errorf("Multiplier = %f, want 2.0", config.Multiplier)
	}
}

func TestNew_WithNilConfig(t *testing.T) {
	retrier := New(nil)
	if retrier == nil {
		t.Fatal("New(nil) returned nil")
	}

	if retrier.config.InitialInterval != 1*time.Second {
		t.Errorf("Default InitialInterval = %v, want 1s", retrier.config.InitialInterval)
	}
}

func TestNew_WithZeroValues(t *testing.T) {
	retrier := New(&Config{})

	if retrier.config.InitialInterval != 1*time.Second {
		t.Errorf("InitialInterval = %v, want 1s (default)", retrier.config.InitialInterval)
	}
	if retrier.config.MaxInterval != 30*time.Second {
		t.Errorf("MaxInterval = %v, want 30s (default)", retrier.config.MaxInterval)
	}
	if retrier.config.Multiplier != 2.0 {
		t.Errorf("Multiplier = %f, want 2.0 (default)", retrier.config.Multiplier)
	}
}

func TestRetrier_Do_SuccessFirstAttempt(t *testing.T) {
	retrier := New(&Config{MaxRetries: 3, InitialInterval: time.Millisecond})

	calls := 0
	result := retrier.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	if result.Err != nil {
		t.Errorf("Err = %v, want nil", result.Err)
	}
	if result.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", result.Attempts)
	}
	if calls != 1 {
		t.Errorf("operation called %d times, want 1", calls)
	}
}

func TestRetrier_Do_SuccessAfterRetries(t *testing.T) {
	retrier := New(&Config{
		MaxRetries:      5,
		InitialInterval: time.Millisecond,
		JitterFactor:    0,
	})

	calls := 0
	result := retrier.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient failure")
		}
		return nil
	})

	if result.Err != nil {
		t.Errorf("Err = %v, want nil", result.Err)
	}
	if result.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", result.Attempts)
	}
}

func TestRetrier_Do_MaxRetriesExceeded(t *testing.T) {
	retrier := New(&Config{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		JitterFactor:    0,
	})

	opErr := errors.New("always fails")
	calls := 0
	result := retrier.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return opErr
	})

	if !errors.Is(result.Err, ErrMaxRetriesExceeded) {
		t.Errorf("Err = %v, want ErrMaxRetriesExceeded", result.Err)
	}
	if result.LastError != opErr {
		t.Errorf("LastError = %v, want %v", result.LastError, opErr)
	}
	if calls != 3 {
		t.Errorf("operation called %d times, want 3 (initial + 2 retries)", calls)
	}
}

func TestRetrier_Do_PermanentErrorStopsRetries(t *testing.T) {
	retrier := New(&Config{
		MaxRetries:      5,
		InitialInterval: time.Millisecond,
	})

	permErr := errors.New("bad payload")
	calls := 0
	result := retrier.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(permErr)
	})

	if result.Err != permErr {
		t.Errorf("Err = %v, want %v", result.Err, permErr)
	}
	if calls != 1 {
		t.Errorf("operation called %d times, want 1 (permanent error)", calls)
	}
}

func TestRetrier_Do_ContextCanceled(t *testing.T) {
	retrier := New(&Config{
		MaxRetries:      10,
		InitialInterval: 50 * time.Millisecond,
		JitterFactor:    0,
	})

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	result := retrier.Do(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("fail then cancel")
	})

	if !errors.Is(result.Err, ErrContextCanceled) {
		t.Errorf("Err = %v, want ErrContextCanceled", result.Err)
	}
	if calls != 1 {
		t.Errorf("operation called %d times, want 1", calls)
	}
}

func TestRetrier_DoWithCallback(t *testing.T) {
	retrier := New(&Config{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		JitterFactor:    0,
	})

	var callbackAttempts []int
	calls := 0
	result := retrier.DoWithCallback(context.Background(),
		func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		},
		func(attempt int, err error, nextInterval time.Duration) {
			callbackAttempts = append(callbackAttempts, attempt)
		},
	)

	if result.Err != nil {
		t.Errorf("Err = %v, want nil", result.Err)
	}
	if len(callbackAttempts) != 2 {
		t.Fatalf("callback called %d times, want 2", len(callbackAttempts))
	}
	if callbackAttempts[0] != 1 || callbackAttempts[1] != 2 {
		t.Errorf("callback attempts = %v, want [1 2]", callbackAttempts)
	}
}

func TestPermanent(t *testing.T) {
	err := errors.New("boom")
	permanentErr := Permanent(err)

	var pe *PermanentError
	if !errors.As(permanentErr, &pe) {
		t.Fatal("Permanent error should be PermanentError")
	}
	if pe.Error() != err.Error() {
		t.Errorf("PermanentError.Error() = %v, want %v", pe.Error(), err.Error())
	}
	if !errors.Is(permanentErr, err) {
		t.Error("PermanentError should unwrap to original error")
	}
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should return nil")
	}
}

func TestCalculateInterval_Exponential(t *testing.T) {
	retrier := New(&Config{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2.0,
		JitterFactor:    0,
	})

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second}, // capped at MaxInterval
		{10, time.Second},
	}

	for _, tt := range tests {
		got := retrier.calculateInterval(tt.attempt)
		if got != tt.want {
			t.Errorf("calculateInterval(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestCalculateInterval_JitterBounds(t *testing.T) {
	retrier := New(&Config{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Minute,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	})

	for i := 0; i < 100; i++ {
		got := retrier.calculateInterval(0)
		if got < 90*time.Millisecond || got > 110*time.Millisecond {
			t.Fatalf("calculateInterval(0) = %v, want within ±10%% of 100ms", got)
		}
	}
}

func TestDo_Convenience(t *testing.T) {
	result := Do(context.Background(), &Config{MaxRetries: 0, InitialInterval: time.Millisecond},
		func(ctx context.Context) error { return nil })

	if result.Err != nil {
		t.Errorf("Err = %v, want nil", result.Err)
	}
	if result.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", result.Attempts)
	}
}
