package watch

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when NewDebouncer is given none.
const DefaultDelay = 100 * time.Millisecond

// Debouncer holds back events for a path until no further event for that
// path has arrived for delay, then emits one Event whose Op is the union
// of everything seen.
type Debouncer struct {
	delay time.Duration
	out   chan Event

	mu     sync.Mutex
	queue  map[string]*batch
	closed bool

	done      chan struct{}
	loopDone  chan struct{}
	closeOnce sync.Once
}

type batch struct {
	ev    Event
	timer *time.Timer
}

// NewDebouncer consumes in until in is closed or Close is called.
func NewDebouncer(in <-chan Event, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{
		delay:    delay,
		out:      make(chan Event, 100),
		queue:    make(map[string]*batch),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	go d.consume(in)
	return d
}

// Events returns the channel of merged events. Close closes it.
func (d *Debouncer) Events() <-chan Event {
	return d.out
}

// Close discards anything still queued and stops the debouncer.
func (d *Debouncer) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		for _, b := range d.queue {
			b.timer.Stop()
		}
		clear(d.queue)
		d.mu.Unlock()

		close(d.done)
		<-d.loopDone
		close(d.out)
	})
}

// Flush emits every queued event now instead of waiting out the delay.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, b := range d.queue {
		b.timer.Stop()
		d.emitLocked(path)
	}
}

// PendingCount returns how many paths have an event waiting.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

func (d *Debouncer) consume(in <-chan Event) {
	defer close(d.loopDone)
	for {
		select {
		case <-d.done:
			return
		case ev, ok := <-in:
			if !ok {
				return
			}
			d.add(ev)
		}
	}
}

func (d *Debouncer) add(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	if b, ok := d.queue[ev.Path]; ok {
		b.ev.Op |= ev.Op
		b.ev.Timestamp = ev.Timestamp
		b.timer.Reset(d.delay)
		return
	}
	path := ev.Path
	d.queue[path] = &batch{
		ev: ev,
		timer: time.AfterFunc(d.delay, func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.emitLocked(path)
		}),
	}
}

// emitLocked moves the batch for path to the output channel. A full
// channel loses the event rather than blocking under the lock.
func (d *Debouncer) emitLocked(path string) {
	b, ok := d.queue[path]
	if !ok || d.closed {
		return
	}
	delete(d.queue, path)
	trySend(d.out, b.ev)
}
