package capture

import (
	"fmt"
	"sync/atomic"

	"github.com/tofworks/aperture/internal/frames"
	"github.com/tofworks/aperture/internal/monitoring"
)

// Callback receives one frame for one stage. It runs synchronously on the
// capture goroutine; the frame is valid only until the callback returns.
type Callback func(s *Session, f frames.Frame, stage frames.Stage)

// callbackTable is a fixed-size table of per-stage callback slots plus the
// subscription bitmask. The mask is atomic so Start's precondition check
// and the loop's per-iteration snapshot observe registrations without a
// race; slot writes themselves are not synchronised against a running
// loop — register callbacks before Start.
type callbackTable struct {
	slots [frames.StageCount]Callback
	mask  atomic.Uint32
}

// register installs cb for the stage, overwriting any previous callback
// (last writer wins, with a warning).
func (t *callbackTable) register(sessionID string, stage frames.Stage, cb Callback) error {
	if !stage.Valid() {
		return fmt.Errorf("%w: %d for session %s", ErrInvalidStage, int(stage), sessionID)
	}
	if t.slots[stage] != nil {
		monitoring.Logf("session %s already has a %s callback; overwriting it", sessionID, stage)
	}
	t.slots[stage] = cb
	t.mask.Or(uint32(stage.Bit()))
	return nil
}

// clearAll empties every slot and the mask. Idempotent.
func (t *callbackTable) clearAll() {
	for i := range t.slots {
		t.slots[i] = nil
	}
	t.mask.Store(0)
}

// snapshot returns the current subscription mask.
func (t *callbackTable) snapshot() frames.StageMask {
	return frames.StageMask(t.mask.Load())
}

// anySubscribed reports whether any stage has a registered callback.
func (t *callbackTable) anySubscribed() bool {
	return t.mask.Load() != 0
}

// shouldRun reports whether the stage's bit is still pending and a
// callback is registered for it.
func (t *callbackTable) shouldRun(pending frames.StageMask, stage frames.Stage) bool {
	return pending.Has(stage) && t.slots[stage] != nil
}

// invoke calls the stage's callback when shouldRun holds, then clears the
// stage's bit from pending unconditionally. It reports whether the
// callback fired and whether any deeper stage still has an unmet
// subscriber.
func (t *callbackTable) invoke(s *Session, pending *frames.StageMask, stage frames.Stage, f frames.Frame) (fired, more bool) {
	if t.shouldRun(*pending, stage) {
		t.slots[stage](s, f, stage)
		fired = true
	}
	*pending &^= stage.Bit()
	return fired, *pending != 0
}
