package watch

import (
	"testing"
	"time"
)

func TestDebouncer_Coalesces(t *testing.T) {
	in := make(chan Event, 10)
	d := NewDebouncer(in, 50*time.Millisecond)
	defer d.Close()

	now := time.Now()
	in <- Event{Path: "/a", Op: OpCreate, Timestamp: now}
	in <- Event{Path: "/a", Op: OpWrite, Timestamp: now}
	in <- Event{Path: "/a", Op: OpChmod, Timestamp: now}

	select {
	case ev := <-d.Events():
		if ev.Path != "/a" || ev.Op != OpCreate|OpWrite|OpChmod {
			t.Errorf("event = %+v, want combined ops on /a", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced event")
	}

	select {
	case ev := <-d.Events():
		t.Errorf("unexpected second event %+v", ev)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncer_SeparatePaths(t *testing.T) {
	in := make(chan Event, 10)
	d := NewDebouncer(in, 20*time.Millisecond)
	defer d.Close()

	in <- Event{Path: "/a", Op: OpWrite}
	in <- Event{Path: "/b", Op: OpWrite}

	seen := map[string]bool{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case ev := <-d.Events():
			seen[ev.Path] = true
		case <-timeout:
			t.Fatalf("timed out, saw %v", seen)
		}
	}
}

func TestDebouncer_Flush(t *testing.T) {
	in := make(chan Event, 10)
	d := NewDebouncer(in, time.Hour)
	defer d.Close()

	in <- Event{Path: "/a", Op: OpWrite}

	deadline := time.Now().Add(2 * time.Second)
	for d.PendingCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("event never became pending")
		}
		time.Sleep(time.Millisecond)
	}

	d.Flush()
	if d.PendingCount() != 0 {
		t.Errorf("PendingCount = %d after Flush", d.PendingCount())
	}
	select {
	case ev := <-d.Events():
		if ev.Path != "/a" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Error("Flush did not deliver the pending event")
	}
}

func TestDebouncer_Close(t *testing.T) {
	in := make(chan Event, 10)
	d := NewDebouncer(in, 0)
	if d.delay != DefaultDelay {
		t.Errorf("delay = %v, want %v", d.delay, DefaultDelay)
	}

	d.Close()
	d.Close()
	if _, ok := <-d.Events(); ok {
		t.Error("events channel should be closed")
	}

	// The input closing first also ends the loop.
	in2 := make(chan Event)
	d2 := NewDebouncer(in2, time.Millisecond)
	close(in2)
	d2.Close()
}
