package types

// Event is a state mutation returned by an action, in the wire shape the
// dialogue engine expects back from the webhook.
type Event struct {
	Event string `json:"event"`
	Name  string `json:"name,omitempty"`
	Value any    `json:"value"`
}

const EventSlot = "slot"

// SetSlot builds a slot event. A nil value clears the slot.
func SetSlot(name string, value any) Event {
	return Event{Event: EventSlot, Name: name, Value: value}
}
