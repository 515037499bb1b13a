package batch

import (
	"context"
	"sync"

	"github.com/fwojciec/llmfeeder"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the per-host load rate used by the CLI.
const DefaultRequestsPerSecond = 2

var _ llmfeeder.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter rate limits document loads per host with one token bucket
// per host, so a batch spanning several sites only waits on repeat visits.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps loads per second and
// per host, with bursts of up to burst loads. A burst below 1 is treated as 1.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	if burst < 1 {
		burst = 1
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Wait blocks until a load from domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(domain).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.limiters[domain]
	if !ok {
		l = rate.NewLimiter(d.limit, d.burst)
		d.limiters[domain] = l
	}
	return l
}
