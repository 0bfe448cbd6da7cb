package dispatcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/zenithhr/procurement-workflow/internal/domain/event"
)

func TestDispatch_RunsHandlersInOrder(t *testing.T) {
	d := New()
	defer d.Close()

	var order []string
	d.Subscribe(event.TypeStageChanged, "first", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "first")
		return nil
	})
	d.Subscribe(event.TypeStageChanged, "second", func(ctx context.Context, evt *event.Event) error {
		order = append(order, "second")
		return nil
	})

	err := d.Dispatch(context.Background(), event.New(event.TypeStageChanged, "r1", nil))
	if err != nil {
		t.Fatalf("Dispatch() failed: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("handler order = %v, want [first second]", order)
	}
}

func TestDispatch_StopsOnFirstError(t *testing.T) {
	d := New()
	defer d.Close()

	boom := errors.New("boom")
	var secondRan bool

	d.Subscribe(event.TypeStageChanged, "failing", func(ctx context.Context, evt *event.Event) error {
		return boom
	})
	d.Subscribe(event.TypeStageChanged, "after", func(ctx context.Context, evt *event.Event) error {
		secondRan = true
		return nil
	})

	err := d.Dispatch(context.Background(), event.New(event.TypeStageChanged, "r1", nil))
	if !errors.Is(err, boom) {
		t.Errorf("Dispatch() error = %v, want wrapped boom", err)
	}
	if secondRan {
		t.Error("handler after the failure should not have run")
	}
}

func TestDispatch_IgnoresOtherEventTypes(t *testing.T) {
	d := New()
	defer d.Close()

	var called bool
	d.Subscribe(event.TypeRequestCreated, "h", func(ctx context.Context, evt *event.Event) error {
		called = true
		return nil
	})

	if err := d.Dispatch(context.Background(), event.New(event.TypeStageChanged, "r1", nil)); err != nil {
		t.Fatalf("Dispatch() failed: %v", err)
	}
	if called {
		t.Error("handler for a different type was called")
	}
}

func TestDispatch_RecoversFromPanic(t *testing.T) {
	d := New()
	defer d.Close()

	d.Subscribe(event.TypeStageChanged, "panicking", func(ctx context.Context, evt *event.Event) error {
		panic("handler exploded")
	})

	err := d.Dispatch(context.Background(), event.New(event.TypeStageChanged, "r1", nil))
	if err == nil {
		t.Error("Dispatch() should surface the panic as an error")
	}
}

func TestDispatchAsync_WaitsOnClose(t *testing.T) {
	d := New()

	var count atomic.Int32
	var wg sync.WaitGroup
	wg.Add(1)

	d.Subscribe(event.TypeStageChanged, "slow", func(ctx context.Context, evt *event.Event) error {
		wg.Wait()
		count.Add(1)
		return nil
	})

	d.DispatchAsync(context.Background(), event.New(event.TypeStageChanged, "r1", nil))
	wg.Done()

	if err := d.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if count.Load() != 1 {
		t.Errorf("async handler ran %d times, want 1", count.Load())
	}
}

func TestUnsubscribe_RemovesHandlerByName(t *testing.T) {
	d := New()
	defer d.Close()

	var called bool
	d.Subscribe(event.TypeStageChanged, "h", func(ctx context.Context, evt *event.Event) error {
		called = true
		return nil
	})
	d.Unsubscribe(event.TypeStageChanged, "h")

	if err := d.Dispatch(context.Background(), event.New(event.TypeStageChanged, "r1", nil)); err != nil {
		t.Fatalf("Dispatch() failed: %v", err)
	}
	if called {
		t.Error("unsubscribed handler was called")
	}
}

func TestDispatch_AfterCloseFails(t *testing.T) {
	d := New()
	if err := d.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if err := d.Dispatch(context.Background(), event.New(event.TypeStageChanged, "r1", nil)); err == nil {
		t.Error("Dispatch() after Close() should fail")
	}
	if err := d.Close(); err == nil {
		t.Error("second Close() should fail")
	}
}
