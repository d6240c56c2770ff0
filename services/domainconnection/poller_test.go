package domainconnection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ruachost/domainstack/internal/enum"
)

func TestNewPoller_Defaults(t *testing.T) {
	p := NewPoller()

	assert.Equal(t, DefaultPollInterval, p.Interval)
	assert.Equal(t, DefaultPollTimeout, p.Timeout)
}

func TestPoller_StopsOnVerified(t *testing.T) {
	// Arrange
	p := &Poller{Interval: time.Millisecond, Timeout: time.Second}
	statuses := []enum.VerificationStatus{
		enum.VerificationStatusPending,
		enum.VerificationStatusPending,
		enum.VerificationStatusPending,
		enum.VerificationStatusVerified,
	}
	checks := 0

	// Act
	status := p.Poll(context.Background(), func(ctx context.Context) enum.VerificationStatus {
		current := statuses[checks]
		checks++
		return current
	})

	// Assert
	assert.Equal(t, enum.VerificationStatusVerified, status)
	assert.Equal(t, 4, checks)
}

func TestPoller_StopsOnFailed(t *testing.T) {
	p := &Poller{Interval: time.Millisecond, Timeout: time.Second}

	status := p.Poll(context.Background(), func(ctx context.Context) enum.VerificationStatus {
		return enum.VerificationStatusFailed
	})

	assert.Equal(t, enum.VerificationStatusFailed, status)
}

func TestPoller_TimeoutReturnsLastStatus(t *testing.T) {
	p := &Poller{Interval: time.Millisecond, Timeout: 20 * time.Millisecond}
	checks := 0

	status := p.Poll(context.Background(), func(ctx context.Context) enum.VerificationStatus {
		checks++
		return enum.VerificationStatusPending
	})

	assert.Equal(t, enum.VerificationStatusPending, status)
	assert.Greater(t, checks, 0)
}

func TestPoller_ContextCancellation(t *testing.T) {
	p := &Poller{Interval: time.Millisecond, Timeout: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	done := make(chan enum.VerificationStatus, 1)
	go func() {
		done <- p.Poll(ctx, func(ctx context.Context) enum.VerificationStatus {
			return enum.VerificationStatusPending
		})
	}()

	select {
	case status := <-done:
		assert.Equal(t, enum.VerificationStatusPending, status)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on context cancellation")
	}
}

func TestPoller_OnTickObservesEveryStatus(t *testing.T) {
	p := &Poller{Interval: time.Millisecond, Timeout: time.Second}
	var observed []enum.VerificationStatus
	p.OnTick = func(status enum.VerificationStatus) {
		observed = append(observed, status)
	}

	statuses := []enum.VerificationStatus{
		enum.VerificationStatusPending,
		enum.VerificationStatusVerified,
	}
	checks := 0

	p.Poll(context.Background(), func(ctx context.Context) enum.VerificationStatus {
		current := statuses[checks]
		checks++
		return current
	})

	assert.Equal(t, statuses, observed)
}
