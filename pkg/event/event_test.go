package event_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pizzeria/pkg/event"
	"github.com/shashiranjanraj/pizzeria/pkg/workerpool"
)

func TestPublishReachesListenersOfThatName(t *testing.T) {
	bus := event.New()

	var sent, finished []event.Event
	bus.Listen(event.OrderSent, func(_ context.Context, e event.Event) { sent = append(sent, e) })
	bus.Listen(event.OrderFinished, func(_ context.Context, e event.Event) { finished = append(finished, e) })

	bus.Publish(context.Background(), event.Event{Name: event.OrderSent, OrderID: "o-1", Table: 5})

	assert.Len(t, sent, 1)
	assert.Empty(t, finished)
	assert.Equal(t, "o-1", sent[0].OrderID)
	assert.False(t, sent[0].At.IsZero())
}

func TestPanickingListenerDoesNotStopOthers(t *testing.T) {
	bus := event.New()
	calls := 0
	bus.Listen(event.OrderRemoved, func(context.Context, event.Event) { panic("boom") })
	bus.Listen(event.OrderRemoved, func(context.Context, event.Event) { calls++ })

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), event.Event{Name: event.OrderRemoved})
	})
	assert.Equal(t, 1, calls)
}

func TestFlushAndNilBus(t *testing.T) {
	bus := event.New()
	calls := 0
	bus.Listen(event.OrderCreated, func(context.Context, event.Event) { calls++ })
	bus.Flush()
	bus.Publish(context.Background(), event.Event{Name: event.OrderCreated})
	assert.Zero(t, calls)

	var nilBus *event.Bus
	assert.NotPanics(t, func() {
		nilBus.Publish(context.Background(), event.Event{Name: event.OrderCreated})
	})
}

func TestListenAsyncRunsOnPool(t *testing.T) {
	pool := workerpool.New(2)
	bus := event.NewWithPool(pool)

	var got atomic.Value
	done := make(chan struct{})
	bus.ListenAsync(event.OrderFinished, func(ctx context.Context, e event.Event) {
		got.Store(e.OrderID)
		assert.NoError(t, ctx.Err())
		close(done)
	})

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, event.Event{Name: event.OrderFinished, OrderID: "o-9"})
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async listener never ran")
	}
	pool.Shutdown()
	assert.Equal(t, "o-9", got.Load())
}

func TestListenAsyncWithoutPoolRunsInline(t *testing.T) {
	bus := event.New()
	calls := 0
	bus.ListenAsync(event.OrderSent, func(context.Context, event.Event) { calls++ })

	bus.Publish(context.Background(), event.Event{Name: event.OrderSent})
	assert.Equal(t, 1, calls)
}

func TestListenAsyncFallsBackWhenPoolClosed(t *testing.T) {
	pool := workerpool.New(1)
	pool.Shutdown()
	bus := event.NewWithPool(pool)
	calls := 0
	bus.ListenAsync(event.OrderSent, func(context.Context, event.Event) { calls++ })

	bus.Publish(context.Background(), event.Event{Name: event.OrderSent})
	assert.Equal(t, 1, calls)
}
