package audit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// Dispatcher feeds security events to a sink from a single background
// goroutine so request paths never wait on sink I/O. A nil dispatcher is
// valid and drops everything, so disabled audit costs one nil check per
// emit.
type Dispatcher struct {
	sink       Sink
	queue      chan Event
	quit       chan struct{}
	dropIfFull bool

	stopping atomic.Bool
	lost     atomic.Uint64
	stopOnce sync.Once
	drained  sync.WaitGroup
}

func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	if sink == nil {
		sink = NoOpSink{}
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = 1
	}

	d := &Dispatcher{
		sink:       sink,
		queue:      make(chan Event, size),
		quit:       make(chan struct{}),
		dropIfFull: cfg.DropIfFull,
	}

	d.drained.Add(1)
	go d.forward()

	return d
}

// forward is the single consumer. On shutdown it flushes whatever is still
// buffered before returning, so Close never loses an accepted event.
func (d *Dispatcher) forward() {
	defer d.drained.Done()

	for {
		select {
		case ev := <-d.queue:
			d.sink.Emit(context.Background(), ev)
		case <-d.quit:
			d.flush()
			return
		}
	}
}

func (d *Dispatcher) flush() {
	for {
		select {
		case ev := <-d.queue:
			d.sink.Emit(context.Background(), ev)
		default:
			return
		}
	}
}

// Emit queues one event. With DropIfFull a full buffer discards the event
// and counts the loss; otherwise Emit waits for space, the caller's context,
// or shutdown, whichever comes first.
func (d *Dispatcher) Emit(ctx context.Context, ev Event) {
	if d == nil || d.stopping.Load() {
		return
	}

	if d.dropIfFull {
		select {
		case d.queue <- ev:
		case <-d.quit:
		default:
			d.lost.Add(1)
		}
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case d.queue <- ev:
	case <-ctx.Done():
	case <-d.quit:
	}
}

// Close stops intake, drains the buffer, and waits for the forwarder to
// exit. Safe to call more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.stopOnce.Do(func() {
		d.stopping.Store(true)
		close(d.quit)
		d.drained.Wait()
	})
}

// Dropped reports how many events were discarded on a full buffer.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.lost.Load()
}
