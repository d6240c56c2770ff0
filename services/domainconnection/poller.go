package domainconnection

import (
	"context"
	"time"

	"github.com/ruachost/domainstack/internal/enum"
)

const (
	DefaultPollInterval = 30 * time.Second
	DefaultPollTimeout  = time.Hour
)

// CheckFunc reports the current verification status of a domain.
type CheckFunc func(ctx context.Context) enum.VerificationStatus

// Poller repeatedly runs a verification check until it reaches a terminal
// status or the hard ceiling elapses. Each tick is independent; the check is
// stateless and idempotent, so an in-flight check outlasting the interval is
// tolerated.
type Poller struct {
	Interval time.Duration
	Timeout  time.Duration
	// OnTick is called with the status observed on each tick. Optional.
	OnTick func(status enum.VerificationStatus)
}

func NewPoller() *Poller {
	return &Poller{
		Interval: DefaultPollInterval,
		Timeout:  DefaultPollTimeout,
	}
}

// Poll blocks until check returns a terminal status, the timeout elapses or
// ctx is cancelled. It returns the last observed status; the timeout is a
// cancellation guarantee, not a success guarantee.
func (p *Poller) Poll(ctx context.Context, check CheckFunc) enum.VerificationStatus {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	status := enum.VerificationStatusPending
	for {
		select {
		case <-ctx.Done():
			return status
		case <-ticker.C:
			status = check(ctx)
			if p.OnTick != nil {
				p.OnTick(status)
			}
			if status.Terminal() {
				return status
			}
		}
	}
}
