// Package state mirrors per-sender slot values between turns, so thin
// clients that do not round-trip the tracker still get a working session.
// The mirror is never the source of truth: incoming tracker slots always
// win over mirrored ones.
package state

import (
	"sync"
	"time"

	"github.com/mudler/xlog"
	"github.com/robfig/cron/v3"

	"github.com/lingobot/actionserver/core/types"
)

type SessionPool struct {
	mu       sync.Mutex
	slots    map[string]map[string]any
	lastSeen map[string]time.Time
	duration time.Duration
	cron     *cron.Cron
}

// NewSessionPool creates a pool whose sessions expire after
// sessionDuration of inactivity. Expired sessions are swept periodically
// in the background until Stop is called.
func NewSessionPool(sessionDuration time.Duration) *SessionPool {
	p := &SessionPool{
		slots:    map[string]map[string]any{},
		lastSeen: map[string]time.Time{},
		duration: sessionDuration,
		cron:     cron.New(),
	}
	p.cron.AddFunc("@every 1m", p.Sweep)
	p.cron.Start()
	return p
}

func (p *SessionPool) Stop() {
	p.cron.Stop()
}

// Snapshot returns a copy of the mirrored slots for a sender. The copy is
// the caller's to mutate.
func (p *SessionPool) Snapshot(senderID string) map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := map[string]any{}
	for k, v := range p.slots[senderID] {
		snapshot[k] = v
	}
	return snapshot
}

// Apply records the slot events of one turn for a sender and marks the
// session active. Nil slot values clear the mirrored entry.
func (p *SessionPool) Apply(senderID string, events []types.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, e := range events {
		if e.Event != types.EventSlot {
			continue
		}
		if p.slots[senderID] == nil {
			p.slots[senderID] = map[string]any{}
		}
		if e.Value == nil {
			delete(p.slots[senderID], e.Name)
			continue
		}
		p.slots[senderID][e.Name] = e.Value
	}
	p.lastSeen[senderID] = time.Now()
}

// Reset drops a sender's session entirely.
func (p *SessionPool) Reset(senderID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.slots, senderID)
	delete(p.lastSeen, senderID)
}

// Sweep removes sessions idle for longer than the pool's duration. It
// runs on the background schedule and can be triggered manually.
func (p *SessionPool) Sweep() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, seen := range p.lastSeen {
		if seen.Add(p.duration).Before(time.Now()) {
			xlog.Debug("Expiring idle session", "sender", id)
			delete(p.slots, id)
			delete(p.lastSeen, id)
		}
	}
}
