package ecs

// EventType names a gameplay event.
type EventType string

const (
	EventPickupCollected  EventType = "pickup_collected"
	EventPickupsRespawned EventType = "pickups_respawned"
	EventHazardSpawned    EventType = "hazard_spawned"
	EventGameOver         EventType = "game_over"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Value  int
}

// EventQueue is a simple FIFO queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
