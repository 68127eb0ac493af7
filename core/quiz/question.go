// Package quiz implements the trivia game core: the question queue, the
// presentation shuffle and the answer evaluation. Everything here is a
// pure function of its inputs; the per-session state lives in slots owned
// by the caller.
package quiz

import (
	"encoding/json"
	"fmt"
)

// Question is one fetched trivia record. It is immutable once fetched and
// the distractors keep the source order; shuffling happens at presentation
// time only.
type Question struct {
	Prompt        string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Distractors   []string `json:"incorrect_answers"`
}

// Queue holds the questions still to be asked, consumed front to back.
// An empty queue signals end of game.
type Queue []Question

func (q Queue) Empty() bool {
	return len(q) == 0
}

// PopFront returns the first question and the shortened queue. ok is
// false on an empty queue.
func (q Queue) PopFront() (Question, Queue, bool) {
	if len(q) == 0 {
		return Question{}, q, false
	}
	return q[0], q[1:], true
}

// EncodeSlot serializes the queue for the trivia_data slot.
func (q Queue) EncodeSlot() string {
	if q == nil {
		q = Queue{}
	}
	b, err := json.Marshal(q)
	if err != nil {
		// queues only hold strings, this cannot happen
		return "[]"
	}
	return string(b)
}

// DecodeSlot parses a trivia_data slot value back into a queue. Unset
// slots decode to an empty queue. Both the serialized form EncodeSlot
// produces and an already-decoded JSON list are accepted, since some
// dialogue engines store structured slot values natively.
func DecodeSlot(v any) (Queue, error) {
	switch value := v.(type) {
	case nil:
		return Queue{}, nil
	case string:
		if value == "" {
			return Queue{}, nil
		}
		var q Queue
		if err := json.Unmarshal([]byte(value), &q); err != nil {
			return nil, fmt.Errorf("malformed trivia queue slot: %w", err)
		}
		return q, nil
	case Queue:
		return value, nil
	case []any:
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("malformed trivia queue slot: %w", err)
		}
		var q Queue
		if err := json.Unmarshal(b, &q); err != nil {
			return nil, fmt.Errorf("malformed trivia queue slot: %w", err)
		}
		return q, nil
	}
	return nil, fmt.Errorf("malformed trivia queue slot: unexpected type %T", v)
}
