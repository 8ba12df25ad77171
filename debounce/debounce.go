// Package debounce provides a trailing-edge debouncer.
package debounce

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The default clock uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Debouncer.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock replaces the clock used to schedule deliveries.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// Debouncer delivers the most recent pushed value to fn once no new value has
// arrived for the configured delay. Intermediate values are dropped.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)
	clock Clock

	mu         sync.Mutex
	timer      Timer
	gen        uint64
	pending    T
	hasPending bool
	stopped    bool
}

// New creates a Debouncer that calls fn after delay of quiet.
func New[T any](delay time.Duration, fn func(T), opts ...Option) *Debouncer[T] {
	o := options{clock: realClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Debouncer[T]{delay: delay, fn: fn, clock: o.clock}
}

// Push records v as the latest value and restarts the quiet period.
// Pushes after Stop are ignored.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.cancelLocked()
	d.pending = v
	d.hasPending = true
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush delivers the pending value now, if any.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.stopped || !d.hasPending {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()
	d.fn(v)
}

// Cancel drops the pending value, if any. Later pushes work as usual.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.take()
}

// Stop cancels any pending delivery. No delivery happens after Stop returns.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.take()
}

// Pending reports whether a value is waiting to be delivered.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasPending
}

// fire runs on the clock's goroutine. A timer that was superseded after it
// started running sees a newer generation and does nothing.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.hasPending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	v := d.take()
	d.mu.Unlock()
	d.fn(v)
}

// take clears the pending value and returns it. Callers hold mu.
func (d *Debouncer[T]) take() T {
	d.cancelLocked()
	v := d.pending
	var zero T
	d.pending = zero
	d.hasPending = false
	return v
}

// cancelLocked stops the current timer and invalidates any in-flight fire.
func (d *Debouncer[T]) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
