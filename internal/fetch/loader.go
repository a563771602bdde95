// Package fetch runs one resource fetch at a time per page. Starting a new
// fetch cancels the one in flight, and a result that is no longer the latest
// is dropped instead of overwriting fresher state.
package fetch

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a fetch whose result arrived after a newer
// fetch had started, or after the loader was closed.
var ErrSuperseded = errors.New("fetch superseded")

// Ticket identifies one started fetch.
type Ticket struct {
	ctx context.Context
	seq uint64
}

// Context is cancelled when a newer fetch starts or the loader closes.
func (t Ticket) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Loader 单个资源的请求序列
// Loader sequences fetches of a single resource
type Loader struct {
	mu     sync.Mutex
	parent context.Context
	stop   context.CancelFunc
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

// NewLoader returns a loader whose fetches live no longer than parent.
func NewLoader(parent context.Context) *Loader {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := context.WithCancel(parent)
	return &Loader{parent: ctx, stop: stop}
}

// Start cancels the fetch in flight, if any, and begins a new one.
func (l *Loader) Start() Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
	if l.closed {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return Ticket{ctx: ctx, seq: l.seq}
	}
	ctx, cancel := context.WithCancel(l.parent)
	l.cancel = cancel
	return Ticket{ctx: ctx, seq: l.seq}
}

// Current reports whether t is still the latest fetch.
func (l *Loader) Current(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed && t.seq == l.seq
}

// Done releases t and reports whether its result may be applied.
func (l *Loader) Done(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || t.seq != l.seq {
		return false
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

// Close cancels the fetch in flight. Results arriving afterwards are
// dropped.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.stop()
}

// Do runs fn under a fresh ticket. fn's context is cancelled when ctx is,
// when a newer fetch starts, or when the loader closes. Do returns
// ErrSuperseded instead of fn's result when a newer fetch started while fn
// was running.
func Do[T any](ctx context.Context, l *Loader, fn func(ctx context.Context) (T, error)) (T, error) {
	t := l.Start()
	runCtx, cancel := context.WithCancel(t.Context())
	stop := context.AfterFunc(ctx, cancel)
	v, err := fn(runCtx)
	stop()
	cancel()

	var zero T
	if !l.Done(t) {
		return zero, ErrSuperseded
	}
	if err != nil {
		return zero, err
	}
	return v, nil
}

// IsSuperseded reports whether err means the result was dropped.
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
