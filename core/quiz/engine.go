package quiz

import (
	"fmt"
	"math/rand"
	"strings"
)

// Presented is one question as shown to the user, options shuffled and
// labeled A-D.
type Presented struct {
	Prompt        string
	Options       []string
	CorrectLabel  string
	CorrectAnswer string
}

// Label maps an option position to its letter: 0->A, 1->B, 2->C, 3->D.
func Label(i int) string {
	return string(rune('A' + i))
}

// Text renders the question with its labeled options, one per line.
func (p Presented) Text() string {
	var b strings.Builder
	b.WriteString(p.Prompt)
	for i, opt := range p.Options {
		fmt.Fprintf(&b, "\n%s) %s", Label(i), opt)
	}
	return b.String()
}

// Engine serves questions from a queue. The random source is injected so
// callers can pin the shuffle.
type Engine struct {
	rng *rand.Rand
}

func NewEngine(src rand.Source) *Engine {
	return &Engine{rng: rand.New(src)}
}

// Next pops the front question and builds its presentation from a uniform
// random permutation of the correct answer and the distractors, so every
// ordering of the options is equally likely. ok is false when the queue
// is exhausted. The caller persists the shortened queue and the correct
// label for the forthcoming answer check.
func (e *Engine) Next(q Queue) (Presented, Queue, bool) {
	record, rest, ok := q.PopFront()
	if !ok {
		return Presented{}, rest, false
	}

	answers := append([]string{record.CorrectAnswer}, record.Distractors...)
	p := Presented{
		Prompt:        record.Prompt,
		Options:       make([]string, len(answers)),
		CorrectAnswer: record.CorrectAnswer,
	}
	for pos, src := range e.rng.Perm(len(answers)) {
		p.Options[pos] = answers[src]
		if src == 0 {
			p.CorrectLabel = Label(pos)
		}
	}
	return p, rest, true
}
