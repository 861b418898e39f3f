package ecs

// EventType names something that happened during a frame.
type EventType string

const (
	EventFlyModeToggled EventType = "fly_mode_toggled"
	EventLanded         EventType = "landed"
	EventJumped         EventType = "jumped"
)

// Event is a frame notification for code outside the system pipeline, such as
// logging or HUD. Systems never read events; they share state through
// components.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a FIFO of events, kept as a manager resource.
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

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Emit pushes evt onto m's EventQueue resource, if it has one.
func Emit(m *Manager, evt Event) {
	if q, err := GetResource[EventQueue](m); err == nil {
		q.Push(evt)
	}
}
