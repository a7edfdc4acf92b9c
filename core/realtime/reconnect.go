package realtime

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// ReconnectPolicy bounds automatic reconnection: exponential delays starting
// at BaseDelay, each capped at MaxDelay, for at most MaxAttempts tries in a row.
// The attempt count resets whenever a transport opens.
type ReconnectPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func (p ReconnectPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	b := retry.NewExponential(base)
	if p.MaxDelay > 0 {
		b = retry.WithCappedDuration(p.MaxDelay, b)
	}
	attempts := p.MaxAttempts
	if attempts < 0 {
		attempts = 0
	}
	return retry.WithMaxRetries(uint64(attempts), b)
}
