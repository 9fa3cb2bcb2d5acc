package circuit

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeClock lets tests move past the open timeout without sleeping
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(config Config) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBreaker("redis", config, zap.NewNop())
	b.now = clock.now
	return b, clock
}

func TestNewBreaker(t *testing.T) {
	breaker := NewBreaker("redis", DefaultConfig(), nil)

	if breaker.State() != StateClosed {
		t.Errorf("Expected initial state CLOSED, got %s", breaker.State())
	}
	if breaker.Name() != "redis" {
		t.Errorf("Name() = %q", breaker.Name())
	}
}

func TestBreaker_TransitionToOpen(t *testing.T) {
	breaker, _ := newTestBreaker(Config{Threshold: 3, Timeout: time.Second, SuccessThreshold: 2, MaxHalfOpen: 1})

	for i := 0; i < 3; i++ {
		breaker.Record(errors.New("dial tcp: refused"))
	}

	if breaker.State() != StateOpen {
		t.Errorf("Expected state OPEN after 3 failures, got %s", breaker.State())
	}
	if err := breaker.Allow(); err != ErrCircuitOpen {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
}

func TestBreaker_HalfOpenThenClosed(t *testing.T) {
	breaker, clock := newTestBreaker(Config{Threshold: 2, Timeout: time.Second, SuccessThreshold: 2, MaxHalfOpen: 1})
	ctx := context.Background()
	fail := func(context.Context) error { return errors.New("timeout") }
	ok := func(context.Context) error { return nil }

	_ = breaker.Do(ctx, fail)
	_ = breaker.Do(ctx, fail)
	if breaker.State() != StateOpen {
		t.Fatalf("Expected OPEN, got %s", breaker.State())
	}

	clock.advance(2 * time.Second)

	if err := breaker.Do(ctx, ok); err != nil {
		t.Fatalf("probe should pass, got %v", err)
	}
	if breaker.State() != StateHalfOpen {
		t.Fatalf("Expected HALF_OPEN after first probe, got %s", breaker.State())
	}
	if err := breaker.Do(ctx, ok); err != nil {
		t.Fatalf("second probe should pass, got %v", err)
	}
	if breaker.State() != StateClosed {
		t.Errorf("Expected CLOSED, got %s", breaker.State())
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	breaker, clock := newTestBreaker(Config{Threshold: 1, Timeout: time.Second, SuccessThreshold: 1, MaxHalfOpen: 1})

	breaker.Record(errors.New("boom"))
	clock.advance(time.Second)

	if err := breaker.Allow(); err != nil {
		t.Fatalf("Allow() after timeout = %v", err)
	}
	if err := breaker.Allow(); err != ErrTooManyRequests {
		t.Errorf("second concurrent probe should be rejected, got %v", err)
	}

	breaker.Record(errors.New("still down"))
	if breaker.State() != StateOpen {
		t.Errorf("Expected OPEN, got %s", breaker.State())
	}
}

func TestBreaker_CancelledContextIsNotAFailure(t *testing.T) {
	breaker, _ := newTestBreaker(Config{Threshold: 1, Timeout: time.Minute, SuccessThreshold: 1, MaxHalfOpen: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := breaker.Do(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if breaker.State() != StateClosed {
		t.Errorf("Expected CLOSED, got %s", breaker.State())
	}
}

func TestBreaker_OnStateChange(t *testing.T) {
	breaker, _ := newTestBreaker(Config{Threshold: 1, Timeout: time.Hour})
	var transitions []State
	breaker.OnStateChange(func(name string, from, to State) {
		transitions = append(transitions, to)
	})

	breaker.Record(errors.New("error"))
	breaker.Reset()

	if len(transitions) != 2 || transitions[0] != StateOpen || transitions[1] != StateClosed {
		t.Errorf("transitions = %v", transitions)
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateClosed, "CLOSED"},
		{StateOpen, "OPEN"},
		{StateHalfOpen, "HALF_OPEN"},
		{State(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.expected)
		}
	}
}
