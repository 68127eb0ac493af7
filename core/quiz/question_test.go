package quiz_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lingobot/actionserver/core/quiz"
)

var _ = Describe("Question queue", func() {
	queue := quiz.Queue{
		{Prompt: "Q1", CorrectAnswer: "A1", Distractors: []string{"x", "y", "z"}},
		{Prompt: "Q2", CorrectAnswer: "A2", Distractors: []string{"x", "y", "z"}},
	}

	It("pops from the front", func() {
		first, rest, ok := queue.PopFront()
		Expect(ok).To(BeTrue())
		Expect(first.Prompt).To(Equal("Q1"))
		Expect(rest).To(HaveLen(1))
		Expect(rest[0].Prompt).To(Equal("Q2"))
	})

	It("reports an empty queue", func() {
		_, _, ok := quiz.Queue{}.PopFront()
		Expect(ok).To(BeFalse())
		Expect(quiz.Queue{}.Empty()).To(BeTrue())
		Expect(queue.Empty()).To(BeFalse())
	})

	Context("slot serialization", func() {
		It("round-trips through the slot encoding", func() {
			decoded, err := quiz.DecodeSlot(queue.EncodeSlot())
			Expect(err).ToNot(HaveOccurred())
			Expect(decoded).To(Equal(queue))
		})

		It("decodes unset slots to an empty queue", func() {
			decoded, err := quiz.DecodeSlot(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(decoded).To(BeEmpty())

			decoded, err = quiz.DecodeSlot("")
			Expect(err).ToNot(HaveOccurred())
			Expect(decoded).To(BeEmpty())
		})

		It("accepts a natively stored JSON list", func() {
			native := []any{
				map[string]any{
					"question":          "Q1",
					"correct_answer":    "A1",
					"incorrect_answers": []any{"x", "y", "z"},
				},
			}
			decoded, err := quiz.DecodeSlot(native)
			Expect(err).ToNot(HaveOccurred())
			Expect(decoded).To(HaveLen(1))
			Expect(decoded[0].Prompt).To(Equal("Q1"))
			Expect(decoded[0].Distractors).To(Equal([]string{"x", "y", "z"}))
		})

		It("rejects garbage", func() {
			_, err := quiz.DecodeSlot("not json")
			Expect(err).To(HaveOccurred())

			_, err = quiz.DecodeSlot(42)
			Expect(err).To(HaveOccurred())
		})
	})
})
