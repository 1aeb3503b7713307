package geocode

import "time"

// Limiter is a min-interval gate over a monotonic clock. It is touched
// once per uncached lookup; lookups are sequential, so no locking.
type Limiter struct {
	minInterval time.Duration
	last        time.Time
}

// NewLimiter builds a gate allowing at most qps calls per second. The
// floor of 0.1 qps keeps a misconfigured zero from blocking forever.
func NewLimiter(qps float64) *Limiter {
	if qps < 0.1 {
		qps = 0.1
	}
	return &Limiter{minInterval: time.Duration(float64(time.Second) / qps)}
}

// Wait blocks until the next call is allowed.
func (l *Limiter) Wait() {
	if !l.last.IsZero() {
		if delta := time.Since(l.last); delta < l.minInterval {
			time.Sleep(l.minInterval - delta)
		}
	}
	l.last = time.Now()
}
