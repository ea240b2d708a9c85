package capture

import (
	"sync"
	"time"

	"github.com/tofworks/aperture/internal/frames"
	"github.com/tofworks/aperture/internal/monitoring"
)

// CaptureStats tracks capture-loop counters with thread-safe operations.
// The capture goroutine writes; callers may read or log from any
// goroutine.
type CaptureStats struct {
	mu              sync.Mutex
	framesCaptured  int64
	captureFailures int64
	delivered       [frames.StageCount]int64
	abandoned       [frames.StageCount]int64
	lastReset       time.Time
}

// NewCaptureStats creates a CaptureStats instance.
func NewCaptureStats() *CaptureStats {
	return &CaptureStats{lastReset: time.Now()}
}

// AddFrame records one successful raw acquisition.
func (cs *CaptureStats) AddFrame() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.framesCaptured++
}

// AddCaptureFailure records a failed raw acquisition.
func (cs *CaptureStats) AddCaptureFailure() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.captureFailures++
}

// AddDelivered records a callback delivery for the stage.
func (cs *CaptureStats) AddDelivered(stage frames.Stage) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.delivered[stage]++
}

// AddAbandoned records an iteration abandoned because the stage's external
// operation failed.
func (cs *CaptureStats) AddAbandoned(stage frames.Stage) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.abandoned[stage]++
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	FramesCaptured  int64
	CaptureFailures int64
	Delivered       [frames.StageCount]int64
	Abandoned       [frames.StageCount]int64
	Elapsed         time.Duration
}

// Snapshot returns the current counters without resetting them.
func (cs *CaptureStats) Snapshot() StatsSnapshot {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return StatsSnapshot{
		FramesCaptured:  cs.framesCaptured,
		CaptureFailures: cs.captureFailures,
		Delivered:       cs.delivered,
		Abandoned:       cs.abandoned,
		Elapsed:         time.Since(cs.lastReset),
	}
}

// GetAndReset returns the current counters and restarts the measurement
// window.
func (cs *CaptureStats) GetAndReset() StatsSnapshot {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	snap := StatsSnapshot{
		FramesCaptured:  cs.framesCaptured,
		CaptureFailures: cs.captureFailures,
		Delivered:       cs.delivered,
		Abandoned:       cs.abandoned,
		Elapsed:         time.Since(cs.lastReset),
	}
	cs.framesCaptured = 0
	cs.captureFailures = 0
	cs.delivered = [frames.StageCount]int64{}
	cs.abandoned = [frames.StageCount]int64{}
	cs.lastReset = time.Now()
	return snap
}

// LogStats logs the counters for the current window and resets them.
func (cs *CaptureStats) LogStats(sensorID string) {
	snap := cs.GetAndReset()
	rate := 0.0
	if snap.Elapsed > 0 {
		rate = float64(snap.FramesCaptured) / snap.Elapsed.Seconds()
	}
	monitoring.Logf("sensor %s: %d frames (%.1f/s), %d capture failures, delivered raw=%d processed=%d depth=%d cloud=%d over %v",
		sensorID,
		snap.FramesCaptured,
		rate,
		snap.CaptureFailures,
		snap.Delivered[frames.StageRawUnprocessed],
		snap.Delivered[frames.StageRawProcessed],
		snap.Delivered[frames.StageDepth],
		snap.Delivered[frames.StagePointCloud],
		snap.Elapsed.Round(time.Millisecond))
}
