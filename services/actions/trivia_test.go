package actions_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lingobot/actionserver/core/quiz"
	"github.com/lingobot/actionserver/core/types"
	"github.com/lingobot/actionserver/services/actions"
)

var _ = Describe("Trivia actions", func() {
	questions := quiz.Queue{
		{Prompt: "What is the capital of France?", CorrectAnswer: "Paris", Distractors: []string{"London", "Berlin", "Madrid"}},
		{Prompt: "2+2?", CorrectAnswer: "4", Distractors: []string{"3", "5", "22"}},
	}

	newTracker := func(slots map[string]any) *types.Tracker {
		return &types.Tracker{SenderID: "tester", Slots: slots}
	}

	Describe("starting a quiz", func() {
		It("fetches a batch and fills the queue slot", func() {
			fetcher := &stubFetcher{queue: questions}
			start := actions.NewStartQuiz(nil).WithFetcher(fetcher)

			result, err := start.Run(context.Background(), newTracker(nil))
			Expect(err).ToNot(HaveOccurred())
			Expect(fetcher.calls).To(Equal(1))

			data, ok := slotEvent(result.Events, actions.SlotTriviaData)
			Expect(ok).To(BeTrue())
			Expect(data.Value).To(Equal(questions.EncodeSlot()))

			score, ok := slotEvent(result.Events, actions.SlotScore)
			Expect(ok).To(BeTrue())
			Expect(score.Value).To(Equal(0))
		})

		It("is idempotent while a game is running", func() {
			fetcher := &stubFetcher{queue: questions}
			start := actions.NewStartQuiz(nil).WithFetcher(fetcher)
			slots := map[string]any{}

			result, err := start.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			applyEvents(slots, result.Events)
			firstData := slots[actions.SlotTriviaData]

			result, err = start.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Events).To(BeEmpty())
			Expect(fetcher.calls).To(Equal(1))

			applyEvents(slots, result.Events)
			Expect(slots[actions.SlotTriviaData]).To(Equal(firstData))
		})

		It("degrades to a failure message when the source is down", func() {
			fetcher := &stubFetcher{err: errors.New("boom")}
			start := actions.NewStartQuiz(nil).WithFetcher(fetcher)

			result, err := start.Run(context.Background(), newTracker(nil))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Events).To(BeEmpty())
			Expect(result.Responses).To(HaveLen(1))
			Expect(result.Responses[0]).To(ContainSubstring("couldn't reach"))
		})
	})

	Describe("asking questions", func() {
		It("serves the front question and stores the expected answer", func() {
			ask := actions.NewAskQuestionWithSource(rand.NewSource(1))
			slots := map[string]any{actions.SlotTriviaData: questions.EncodeSlot()}

			result, err := ask.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Responses).To(HaveLen(1))
			Expect(result.Responses[0]).To(ContainSubstring("capital of France"))

			applyEvents(slots, result.Events)

			letter, ok := slots[actions.SlotCorrectLetter].(string)
			Expect(ok).To(BeTrue())
			Expect(letter).To(BeElementOf("A", "B", "C", "D"))
			Expect(slots[actions.SlotCorrectAnswer]).To(Equal("Paris"))

			// presented option under the stored letter is the correct answer
			lines := strings.Split(result.Responses[0], "\n")
			Expect(lines[int(letter[0]-'A')+1]).To(Equal(fmt.Sprintf("%s) Paris", letter)))

			remaining, decodeErr := quiz.DecodeSlot(slots[actions.SlotTriviaData])
			Expect(decodeErr).ToNot(HaveOccurred())
			Expect(remaining).To(HaveLen(1))
		})

		It("recovers from a corrupt queue slot", func() {
			ask := actions.NewAskQuestion(nil)
			slots := map[string]any{actions.SlotTriviaData: "not json"}

			result, err := ask.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Events).To(BeEmpty())
			Expect(result.Responses[0]).To(ContainSubstring("start quiz"))
		})
	})

	Describe("checking answers", func() {
		It("reports missing information before any question was asked", func() {
			check := actions.NewCheckAnswer(nil)

			result, err := check.Run(context.Background(), newTracker(nil))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Responses[0]).To(ContainSubstring("missing some information"))

			_, hasScore := slotEvent(result.Events, actions.SlotScore)
			Expect(hasScore).To(BeFalse())
		})

		It("accepts the answer letter case-insensitively", func() {
			check := actions.NewCheckAnswer(nil)
			slots := map[string]any{
				actions.SlotAnswer:        "b",
				actions.SlotCorrectLetter: "B",
				actions.SlotCorrectAnswer: "Paris",
				actions.SlotScore:         2,
			}

			result, err := check.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Responses[0]).To(ContainSubstring("Correct!"))
			Expect(result.Responses[0]).To(ContainSubstring("Your score: 3"))

			score, ok := slotEvent(result.Events, actions.SlotScore)
			Expect(ok).To(BeTrue())
			Expect(score.Value).To(Equal(3))
		})

		It("keeps the score on a wrong answer", func() {
			check := actions.NewCheckAnswer(nil)
			slots := map[string]any{
				actions.SlotAnswer:        "A",
				actions.SlotCorrectLetter: "B",
				actions.SlotCorrectAnswer: "Paris",
				actions.SlotScore:         2,
			}

			result, err := check.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Responses[0]).To(ContainSubstring("Not quite"))

			score, ok := slotEvent(result.Events, actions.SlotScore)
			Expect(ok).To(BeTrue())
			Expect(score.Value).To(Equal(2))
		})

		It("falls back to the latest message text when the answer slot is unset", func() {
			check := actions.NewCheckAnswer(nil)
			tracker := &types.Tracker{
				Slots: map[string]any{
					actions.SlotCorrectLetter: "C",
					actions.SlotCorrectAnswer: "4",
				},
				LatestMessage: types.Message{Text: "c"},
			}

			result, err := check.Run(context.Background(), tracker)
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Responses[0]).To(ContainSubstring("Correct!"))
		})
	})

	Describe("a full game", func() {
		It("plays through one question and resets at the end", func() {
			single := quiz.Queue{questions[0]}
			fetcher := &stubFetcher{queue: single}
			start := actions.NewStartQuiz(nil).WithFetcher(fetcher)
			ask := actions.NewAskQuestionWithSource(rand.NewSource(7))
			check := actions.NewCheckAnswer(nil)
			slots := map[string]any{}

			result, err := start.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			applyEvents(slots, result.Events)

			result, err = ask.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			applyEvents(slots, result.Events)

			slots[actions.SlotAnswer] = strings.ToLower(slots[actions.SlotCorrectLetter].(string))
			result, err = check.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			applyEvents(slots, result.Events)
			Expect(slots[actions.SlotScore]).To(Equal(1))

			// the queue is spent now, the next ask wraps up and resets
			result, err = ask.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Responses[0]).To(ContainSubstring("Final score: 1"))
			applyEvents(slots, result.Events)

			Expect(slots).ToNot(HaveKey(actions.SlotTriviaData))
			Expect(slots[actions.SlotScore]).To(Equal(0))

			// a fresh start fetches a new batch
			result, err = start.Run(context.Background(), newTracker(slots))
			Expect(err).ToNot(HaveOccurred())
			Expect(fetcher.calls).To(Equal(2))
			_, ok := slotEvent(result.Events, actions.SlotTriviaData)
			Expect(ok).To(BeTrue())
		})
	})
})
