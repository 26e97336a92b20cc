package game

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// TurnScheduler runs deferred actions tagged with the turn token that was
// current at schedule time. Cancellation through a handle or CancelAll is
// best-effort: a timer can leave the clock's queue before Stop lands, so
// the owner must still compare the delivered token against its current
// token at fire time. That comparison is the authoritative guard.
type TurnScheduler struct {
	clock clock.Clock

	mu      sync.Mutex
	handles map[uint64][]*TimerHandle
}

// NewTurnScheduler returns a scheduler driven by clk.
func NewTurnScheduler(clk clock.Clock) *TurnScheduler {
	return &TurnScheduler{
		clock:   clk,
		handles: make(map[uint64][]*TimerHandle),
	}
}

// TimerHandle is the cancellation handle for one scheduled action.
type TimerHandle struct {
	token uint64
	timer *clock.Timer
	sched *TurnScheduler
}

// Stop cancels the deferred action if it has not fired yet.
func (h *TimerHandle) Stop() {
	if h.timer != nil {
		h.timer.Stop()
	}
	h.sched.remove(h)
}

// Schedule runs action(token) after delay unless the handle is stopped
// first. The action receives the token it was scheduled under so it can
// re-validate against the session's current token.
func (ts *TurnScheduler) Schedule(delay time.Duration, token uint64, action func(token uint64)) *TimerHandle {
	h := &TimerHandle{token: token, sched: ts}
	ts.mu.Lock()
	ts.handles[token] = append(ts.handles[token], h)
	ts.mu.Unlock()

	h.timer = ts.clock.AfterFunc(delay, func() {
		ts.remove(h)
		action(token)
	})
	return h
}

// CancelAll stops every outstanding action scheduled under token.
func (ts *TurnScheduler) CancelAll(token uint64) {
	ts.mu.Lock()
	handles := ts.handles[token]
	delete(ts.handles, token)
	ts.mu.Unlock()

	for _, h := range handles {
		if h.timer != nil {
			h.timer.Stop()
		}
	}
}

// Outstanding reports how many actions are still scheduled under token.
func (ts *TurnScheduler) Outstanding(token uint64) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.handles[token])
}

func (ts *TurnScheduler) remove(h *TimerHandle) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	list := ts.handles[h.token]
	for i, other := range list {
		if other == h {
			ts.handles[h.token] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(ts.handles[h.token]) == 0 {
		delete(ts.handles, h.token)
	}
}
