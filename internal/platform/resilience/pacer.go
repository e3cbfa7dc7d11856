package resilience

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum spacing between consecutive upstream calls. The
// first Wait returns immediately. Callers that report completion through Done
// get the spacing measured from the end of the previous call.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func NewPacer(interval time.Duration) *Pacer {
	if interval < 0 {
		interval = 0
	}
	return &Pacer{interval: interval, now: time.Now}
}

func (p *Pacer) Interval() time.Duration {
	if p == nil {
		return 0
	}
	return p.interval
}

// Wait blocks until the interval since the previous call has elapsed or ctx
// is done. Calls are serialized.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() && p.interval > 0 {
		if remaining := p.interval - p.now().Sub(p.last); remaining > 0 {
			timer := time.NewTimer(remaining)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	p.last = p.now()
	return nil
}

// Done marks the end of the call admitted by the last Wait.
func (p *Pacer) Done() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.last = p.now()
	p.mu.Unlock()
}
