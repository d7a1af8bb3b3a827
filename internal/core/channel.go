package core

import "sync"

// DefaultInputBuffer is the number of events an InputChannel holds before
// it starts dropping the oldest ones.
const DefaultInputBuffer = 64

// InputChannel is the explicit path from host UI controls into the active
// state machine. Hosts Send from their event handlers; the session drains it
// once per tick. Send never blocks.
type InputChannel struct {
	events    chan InputEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewInputChannel creates a channel buffering up to size events.
func NewInputChannel(size int) *InputChannel {
	if size < 1 {
		size = DefaultInputBuffer
	}
	return &InputChannel{
		events: make(chan InputEvent, size),
		done:   make(chan struct{}),
	}
}

// Send queues an event. If the buffer is full the oldest event is dropped.
// Events sent after Close are discarded.
func (c *InputChannel) Send(ev InputEvent) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.events <- ev:
	default:
		select {
		case <-c.events:
		default:
		}
		select {
		case c.events <- ev:
		default:
		}
	}
}

// Drain moves every queued event into a fresh frame.
func (c *InputChannel) Drain() InputFrame {
	var frame InputFrame
	for {
		select {
		case ev := <-c.events:
			frame.Push(ev)
		default:
			return frame
		}
	}
}

// Discard drops every queued event.
func (c *InputChannel) Discard() {
	for {
		select {
		case <-c.events:
		default:
			return
		}
	}
}

// Close stops accepting events. Safe to call multiple times.
func (c *InputChannel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Closed reports whether Close has been called.
func (c *InputChannel) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
