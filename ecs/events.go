package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventSpawned = "spawned"

// SpawnEvent is emitted when the spawner adds a body.
type SpawnEvent struct {
	Entity      Entity
	Constructor string
	// Serial counts spawns from 1.
	Serial int
}

// EventQueue is a simple FIFO queue, cleared when the next frame starts.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Take removes and returns the events of one type, keeping the rest queued.
func (q *EventQueue) Take(typ string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var taken []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			taken = append(taken, evt)
		} else {
			kept = append(kept, evt)
		}
	}
	q.items = kept
	return taken
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
