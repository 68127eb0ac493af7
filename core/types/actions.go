package types

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Action is a handler the dialogue engine invokes by name once an intent
// has been recognized. A handler reads the tracker snapshot, optionally
// calls an external API, and returns the responses to utter plus the slot
// mutations to persist. It never keeps state between calls.
type Action interface {
	Run(ctx context.Context, tracker *Tracker) (ActionResult, error)
	Definition() ActionDefinition
}

// ActionDefinition describes an action and the parameters it reads from
// the conversation, in the same schema format the dialogue engine uses
// for its domain declaration.
type ActionDefinition struct {
	Properties  map[string]jsonschema.Definition
	Required    []string
	Name        ActionDefinitionName
	Description string
}

type ActionDefinitionName string

func (a ActionDefinitionName) Is(name string) bool {
	return string(a) == name
}

func (a ActionDefinitionName) String() string {
	return string(a)
}

// ActionResult carries everything a handler produced during one turn:
// user-visible responses for the message sink and slot events for the
// session store.
type ActionResult struct {
	Responses []string
	Events    []Event
}

// Utter queues a user-visible message. Multiple utterances per turn are
// fine, they are delivered in order.
func (r *ActionResult) Utter(text string) {
	r.Responses = append(r.Responses, text)
}

// SetSlot queues a slot mutation. A nil value clears the slot.
func (r *ActionResult) SetSlot(name string, value any) {
	r.Events = append(r.Events, SetSlot(name, value))
}

type Actions []Action

func (a Actions) Find(name string) Action {
	for _, action := range a {
		if action.Definition().Name.Is(name) {
			return action
		}
	}
	return nil
}

func (a Actions) Definitions() []ActionDefinition {
	defs := make([]ActionDefinition, 0, len(a))
	for _, action := range a {
		defs = append(defs, action.Definition())
	}
	return defs
}
