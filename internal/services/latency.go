package services

import (
	"context"
	"math/rand/v2"
	"time"
)

// Latency delays a facade call to mimic a network round trip. Wait
// returns early with ctx's error when ctx ends first.
type Latency interface {
	Wait(ctx context.Context) error
}

// RandomLatency waits a uniformly random duration in [Min, Max].
type RandomLatency struct {
	Min time.Duration
	Max time.Duration
}

func NewRandomLatency(min, max time.Duration) RandomLatency {
	if max < min {
		max = min
	}
	return RandomLatency{Min: min, Max: max}
}

func (l RandomLatency) next() time.Duration {
	if l.Max <= l.Min {
		return l.Min
	}
	return l.Min + time.Duration(rand.Int64N(int64(l.Max-l.Min)+1))
}

func (l RandomLatency) Wait(ctx context.Context) error {
	d := l.next()
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type noLatency struct{}

func (noLatency) Wait(ctx context.Context) error { return ctx.Err() }

// NoLatency skips the delay. Tests use it.
var NoLatency Latency = noLatency{}
