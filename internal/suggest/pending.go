package suggest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Outcome is the result of one request.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Pending runs at most one request at a time off the render loop. The render
// loop collects the outcome with Poll, which also clears the loading flag.
type Pending[T any] struct {
	loading atomic.Bool
	results chan Outcome[T]

	ctx    context.Context
	cancel context.CancelFunc
}

func NewPending[T any]() *Pending[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pending[T]{
		results: make(chan Outcome[T], 1),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (p *Pending[T]) Loading() bool { return p.loading.Load() }

// Start launches fn unless a request is already in flight or uncollected.
func (p *Pending[T]) Start(timeout time.Duration, fn func(ctx context.Context) (T, error)) bool {
	if !p.loading.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		var out Outcome[T]
		defer func() {
			if r := recover(); r != nil {
				out = Outcome[T]{Err: errors.Errorf("suggestion panicked: %v", r)}
			}
			p.results <- out
		}()
		ctx, cancel := context.WithTimeout(p.ctx, timeout)
		defer cancel()
		out.Value, out.Err = fn(ctx)
	}()
	return true
}

// Poll returns the finished outcome, if any, without blocking.
func (p *Pending[T]) Poll() (Outcome[T], bool) {
	select {
	case out := <-p.results:
		p.loading.Store(false)
		return out, true
	default:
		return Outcome[T]{}, false
	}
}

// Wait blocks for the outcome of the request in flight.
func (p *Pending[T]) Wait(ctx context.Context) (Outcome[T], error) {
	if !p.loading.Load() {
		return Outcome[T]{}, errors.New("no request in flight")
	}
	select {
	case out := <-p.results:
		p.loading.Store(false)
		return out, nil
	case <-ctx.Done():
		return Outcome[T]{}, ctx.Err()
	}
}

// Close cancels the request in flight.
func (p *Pending[T]) Close() {
	p.cancel()
}
