package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/metrics"
	"github.com/huangang/teamboard/pkg/logger"
	"github.com/rs/zerolog"
)

// Facade is the in-process stand-in for the dashboard backend. Every
// call waits out the simulated latency first; once it reaches the store
// the call commits and can no longer be cancelled.
type Facade struct {
	store   *datastore.Store
	latency Latency
	newID   func(prefix string) string
	log     zerolog.Logger
}

type Option func(*Facade)

func WithLatency(l Latency) Option {
	return func(f *Facade) { f.latency = l }
}

// WithIDGenerator replaces the default "<prefix>-<uuid>" ids.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(f *Facade) { f.newID = fn }
}

func NewFacade(store *datastore.Store, opts ...Option) *Facade {
	f := &Facade{
		store:   store,
		latency: NewRandomLatency(150*time.Millisecond, 400*time.Millisecond),
		newID:   func(prefix string) string { return prefix + "-" + uuid.NewString() },
		log:     logger.Component("facade"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Facade) Store() *datastore.Store { return f.store }

// invoke waits the latency, runs fn and records the outcome.
func invoke[T any](ctx context.Context, f *Facade, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	var zero T

	if err := f.latency.Wait(ctx); err != nil {
		err = &Error{Kind: KindOperationFailed, Op: op, Message: err.Error(), Err: err}
		f.observe(op, start, err)
		return zero, err
	}

	v, err := fn()
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Op == "" {
			e.Op = op
		}
		f.observe(op, start, err)
		return zero, err
	}
	f.observe(op, start, nil)
	return v, nil
}

func (f *Facade) observe(op string, start time.Time, err error) {
	took := time.Since(start)
	result := "ok"
	if err != nil {
		result = string(KindOf(err))
		f.log.Warn().Str("op", op).Str("kind", result).Err(err).Dur("latency", took).Msg("facade call failed")
	} else {
		f.log.Debug().Str("op", op).Dur("latency", took).Msg("facade call")
	}
	metrics.ObserveFacadeCall(op, result, took)
}
