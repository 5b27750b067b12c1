package engine

import (
	"sync/atomic"
	"time"
)

// EventType identifies a game event. Hosts poll the queue once per frame
// and map these to audio/haptic feedback; the core performs no I/O.
type EventType int

const (
	// EventRopeCut fires when a blade stroke severs a rope link.
	// Payload: physics.CutEvent
	EventRopeCut EventType = iota
	// EventTileHit fires for every tile a blade trace touched.
	// Payload: []core.ID of the hit tiles
	EventTileHit
	// EventTileTriggered fires when chain resolution triggers a cluster.
	// Payload: []core.ID of the triggered tiles
	EventTileTriggered
	// EventTileCleared fires when cleared tiles are reported by resolution.
	// Payload: []core.ID
	EventTileCleared
	// EventFruitSliced fires when a stroke splits a whole fruit.
	// Payload: core.ID of the fruit
	EventFruitSliced
	// EventFruitExpired fires when a fruit times out or its halves are spent.
	// Payload: core.ID of the fruit
	EventFruitExpired
	// EventScore fires when a resolver call produced a score delta.
	// Payload: int
	EventScore
)

// String returns the event type name for debugging
func (e EventType) String() string {
	switch e {
	case EventRopeCut:
		return "RopeCut"
	case EventTileHit:
		return "TileHit"
	case EventTileTriggered:
		return "TileTriggered"
	case EventTileCleared:
		return "TileCleared"
	case EventFruitSliced:
		return "FruitSliced"
	case EventFruitExpired:
		return "FruitExpired"
	case EventScore:
		return "Score"
	default:
		return "Unknown"
	}
}

// GameEvent is one queued event. Events are immutable once created; Frame
// lets consumers drop stale entries after falling behind.
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     uint64
	Timestamp time.Time
}

const eventQueueCap = 256

// EventQueue is a fixed-size lock-free ring buffer. Push is safe for
// concurrent producers via a CAS claim loop; Consume is single-consumer
// (the frame loop). When the buffer is full the oldest events are
// overwritten.
type EventQueue struct {
	events [eventQueueCap]GameEvent
	head   atomic.Uint64
	tail   atomic.Uint64
}

// NewEventQueue returns an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push claims the next slot with a CAS loop and writes the event. If the
// writer has lapped the reader, the head is advanced best-effort so the
// consumer only ever sees the newest eventQueueCap entries.
func (eq *EventQueue) Push(event GameEvent) {
	for {
		tail := eq.tail.Load()
		if !eq.tail.CompareAndSwap(tail, tail+1) {
			continue
		}
		eq.events[tail%eventQueueCap] = event

		head := eq.head.Load()
		if tail+1-head > eventQueueCap {
			eq.head.CompareAndSwap(head, tail+1-eventQueueCap)
		}
		return
	}
}

// Consume returns all pending events in FIFO order and marks them read.
// Returns nil when the queue is empty.
func (eq *EventQueue) Consume() []GameEvent {
	head := eq.head.Load()
	tail := eq.tail.Load()
	available := tail - head
	if available == 0 {
		return nil
	}
	if available > eventQueueCap {
		available = eventQueueCap
		head = tail - eventQueueCap
	}

	result := make([]GameEvent, available)
	for i := uint64(0); i < available; i++ {
		result[i] = eq.events[(head+i)%eventQueueCap]
	}

	for !eq.head.CompareAndSwap(head, tail) {
		head = eq.head.Load()
		tail = eq.tail.Load()
		if tail == head {
			break
		}
	}
	return result
}

// Peek returns a snapshot of pending events without consuming them
func (eq *EventQueue) Peek() []GameEvent {
	head := eq.head.Load()
	tail := eq.tail.Load()
	available := tail - head
	if available == 0 {
		return nil
	}
	if available > eventQueueCap {
		available = eventQueueCap
		head = tail - eventQueueCap
	}

	result := make([]GameEvent, available)
	for i := uint64(0); i < available; i++ {
		result[i] = eq.events[(head+i)%eventQueueCap]
	}
	return result
}

// Len returns the number of pending events, capped at the buffer size
func (eq *EventQueue) Len() int {
	available := eq.tail.Load() - eq.head.Load()
	if available > eventQueueCap {
		return eventQueueCap
	}
	return int(available)
}
