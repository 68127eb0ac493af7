package state_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lingobot/actionserver/core/state"
	"github.com/lingobot/actionserver/core/types"
)

var _ = Describe("Session pool", func() {
	var pool *state.SessionPool

	BeforeEach(func() {
		pool = state.NewSessionPool(time.Hour)
	})

	AfterEach(func() {
		pool.Stop()
	})

	It("mirrors applied slot events per sender", func() {
		pool.Apply("alice", []types.Event{
			types.SetSlot("score", 3),
			types.SetSlot("answer", "b"),
		})
		pool.Apply("bob", []types.Event{
			types.SetSlot("score", 1),
		})

		Expect(pool.Snapshot("alice")).To(Equal(map[string]any{"score": 3, "answer": "b"}))
		Expect(pool.Snapshot("bob")).To(Equal(map[string]any{"score": 1}))
	})

	It("clears a slot on a nil value", func() {
		pool.Apply("alice", []types.Event{types.SetSlot("score", 3)})
		pool.Apply("alice", []types.Event{types.SetSlot("score", nil)})

		Expect(pool.Snapshot("alice")).To(BeEmpty())
	})

	It("ignores non-slot events", func() {
		pool.Apply("alice", []types.Event{{Event: "restart"}})

		Expect(pool.Snapshot("alice")).To(BeEmpty())
	})

	It("hands out copies, not the live map", func() {
		pool.Apply("alice", []types.Event{types.SetSlot("score", 3)})

		snapshot := pool.Snapshot("alice")
		snapshot["score"] = 99

		Expect(pool.Snapshot("alice")).To(Equal(map[string]any{"score": 3}))
	})

	It("drops a session on reset", func() {
		pool.Apply("alice", []types.Event{types.SetSlot("score", 3)})
		pool.Reset("alice")

		Expect(pool.Snapshot("alice")).To(BeEmpty())
	})

	It("sweeps idle sessions", func() {
		shortLived := state.NewSessionPool(time.Millisecond)
		defer shortLived.Stop()

		shortLived.Apply("alice", []types.Event{types.SetSlot("score", 3)})
		Eventually(func() map[string]any {
			shortLived.Sweep()
			return shortLived.Snapshot("alice")
		}).Should(BeEmpty())
	})
})
