// Package event is an in-process dispatcher for order lifecycle events.
package event

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/pizzeria/pkg/logger"
)

const (
	OrderCreated  = "order.created"
	OrderSent     = "order.sent"
	OrderFinished = "order.finished"
	OrderRemoved  = "order.removed"
)

// Event is the payload every listener receives.
type Event struct {
	Name    string
	OrderID string
	Table   int
	At      time.Time
}

// Handler receives an event.
type Handler func(ctx context.Context, e Event)

// Submitter runs tasks in the background. *workerpool.Pool satisfies it.
type Submitter interface {
	Submit(task func()) error
}

type listener struct {
	h     Handler
	async bool
}

// Bus dispatches events by name. The zero value is not usable; call New.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]listener
	pool     Submitter
}

func New() *Bus {
	return &Bus{handlers: map[string][]listener{}}
}

// NewWithPool returns a Bus whose ListenAsync handlers run on pool.
func NewWithPool(pool Submitter) *Bus {
	b := New()
	b.pool = pool
	return b
}

// Listen registers a handler that runs on the publisher's goroutine.
func (b *Bus) Listen(name string, h Handler) {
	b.add(name, listener{h: h})
}

// ListenAsync registers a handler that runs on the bus pool with a context
// detached from the request. Without a pool, or when the pool refuses the
// task, it runs inline like Listen.
func (b *Bus) ListenAsync(name string, h Handler) {
	b.add(name, listener{h: h, async: true})
}

func (b *Bus) add(name string, l listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], l)
}

// Publish dispatches e to all listeners of e.Name. A panicking listener is
// logged and does not stop the others or the caller.
func (b *Bus) Publish(ctx context.Context, e Event) {
	if b == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.RLock()
	ls := make([]listener, len(b.handlers[e.Name]))
	copy(ls, b.handlers[e.Name])
	b.mu.RUnlock()

	for _, l := range ls {
		if l.async && b.pool != nil {
			h, detached := l.h, context.WithoutCancel(ctx)
			if err := b.pool.Submit(func() { dispatch(detached, h, e) }); err == nil {
				continue
			}
		}
		dispatch(ctx, l.h, e)
	}
}

func dispatch(ctx context.Context, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithCtx(ctx).Error("event listener panicked", "event", e.Name, "panic", r)
		}
	}()
	h(ctx, e)
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]listener{}
}
