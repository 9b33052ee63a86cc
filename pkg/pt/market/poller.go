package market

import (
	"context"
	"time"
)

// Poller refreshes an Aggregator on a fixed interval while its context is
// alive. Cancelling the context stops the ticker and aborts the fetch in
// flight, so no response lands after the view is gone.
type Poller struct {
	Agg      *Aggregator
	Interval time.Duration

	// OnRefresh, when set, runs after every refresh attempt with its result.
	OnRefresh func(Snapshot, error)
}

// Run refreshes immediately, then on every tick, until ctx is done. It
// always returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	p.tick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	err := p.Agg.Refresh(ctx)
	if ctx.Err() != nil {
		return
	}
	if p.OnRefresh != nil {
		p.OnRefresh(p.Agg.Snapshot(), err)
	}
}
