package types

import "strconv"

// Tracker is the snapshot of one conversation turn as the dialogue engine
// sees it: who is talking, what they last said, and the current slot
// values. Actions only read from it; mutations travel back as slot events.
type Tracker struct {
	SenderID      string         `json:"sender_id"`
	Slots         map[string]any `json:"slots"`
	LatestMessage Message        `json:"latest_message"`
}

type Message struct {
	Text     string   `json:"text"`
	Intent   Intent   `json:"intent"`
	Entities []Entity `json:"entities"`
}

type Intent struct {
	Name string `json:"name"`
}

type Entity struct {
	Entity string `json:"entity"`
	Value  string `json:"value"`
}

// Slot returns the raw slot value. Absent and nil both count as unset.
func (t *Tracker) Slot(name string) (any, bool) {
	if t.Slots == nil {
		return nil, false
	}
	v, ok := t.Slots[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// StringSlot returns a slot as text. Non-string and empty values count as
// unset.
func (t *Tracker) StringSlot(name string) (string, bool) {
	v, ok := t.Slot(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// IntSlot returns a numeric slot, tolerating the float64 that JSON
// decoding produces and numbers stored as text. Anything else is 0.
func (t *Tracker) IntSlot(name string) int {
	v, ok := t.Slot(name)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}

// EntityValue returns the first recognized entity with the given name
// from the latest message.
func (t *Tracker) EntityValue(name string) (string, bool) {
	for _, e := range t.LatestMessage.Entities {
		if e.Entity == name && e.Value != "" {
			return e.Value, true
		}
	}
	return "", false
}
