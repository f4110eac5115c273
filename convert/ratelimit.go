package convert

import (
	"context"
	"sync"

	"github.com/fwojciec/docconv"
	"golang.org/x/time/rate"
)

var _ docconv.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out image fetches that hit the same host. A page
// that embeds dozens of images from one CDN is fetched at rps per second
// after an initial burst, while images from other hosts are not delayed.
//
// The Converter shares one DomainLimiter across conversions, so the budget
// for a host holds across concurrent requests.
type DomainLimiter struct {
	rps   rate.Limit
	burst int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter granting each host rps fetches per
// second and up to burst fetches back to back. A burst below one is
// raised to one.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	return &DomainLimiter{
		rps:   rate.Limit(rps),
		burst: max(burst, 1),
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until host has budget for one more fetch or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.limiter(host).Wait(ctx)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.rps, d.burst)
		d.hosts[host] = l
	}
	return l
}
