package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func TestBreakerOpensAtThreshold(t *testing.T) {
	t.Parallel()

	b := NewBreaker(3, time.Minute, 1)
	fail := func() error { return errors.New("boom") }

	for i := 0; i < 3; i++ {
		if err := b.Do(fail); err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}
	if b.State() != Open {
		t.Fatalf("expected open state, got %v", b.State())
	}
	if err := b.Do(fail); !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	t.Parallel()

	b := NewBreaker(1, 10*time.Millisecond, 1)
	if err := b.Do(func() error { return errors.New("boom") }); err == nil {
		t.Fatal("expected failure")
	}
	if b.State() != Open {
		t.Fatalf("expected open state, got %v", b.State())
	}

	time.Sleep(20 * time.Millisecond)

	if err := b.Do(func() error { return nil }); err != nil {
		t.Fatalf("probe call rejected: %v", err)
	}
	if b.State() != Closed {
		t.Fatalf("expected closed state after successful probe, got %v", b.State())
	}
}

func TestBreakerResetsFailureCountOnSuccess(t *testing.T) {
	t.Parallel()

	b := NewBreaker(2, time.Minute, 1)
	_ = b.Do(func() error { return errors.New("boom") })
	_ = b.Do(func() error { return nil })
	_ = b.Do(func() error { return errors.New("boom") })

	if b.State() != Closed {
		t.Fatalf("breaker opened on non-consecutive failures: %v", b.State())
	}
}
