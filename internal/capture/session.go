package capture

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tofworks/aperture/internal/frames"
	"github.com/tofworks/aperture/internal/monitoring"
	"github.com/tofworks/aperture/internal/projection"
)

// SessionConfig carries the capabilities and identity a capture session is
// bound to.
type SessionConfig struct {
	SensorID   string // human-readable sensor identifier (default "tof0")
	Driver     Driver
	Programmer Programmer
	Streamer   Streamer
}

// Session owns the background execution of the capture pipeline for one
// sensor. Exactly two actors touch a session: the caller's goroutine
// (Start/Stop/Wait/Reset/registration) and the single capture goroutine
// running the staged loop.
type Session struct {
	id       string
	sensorID string

	driver     Driver
	programmer Programmer
	streamer   Streamer

	callbacks callbackTable
	params    *parameterSet
	stats     *CaptureStats
	projector projection.Projector

	rawPool       *frames.Pool
	processedPool *frames.Pool
	depthPool     *frames.Pool
	cloudPool     *frames.Pool

	running      atomic.Bool // set by Stop/Start, read every iteration
	threadActive atomic.Bool // set by the capture goroutine only
	done         chan struct{}

	frameSeq uint64 // touched only by the capture goroutine
}

// NewSession creates a session bound to the given capabilities, with empty
// callback table and parameter set and one buffer pool per pipeline stage.
func NewSession(cfg SessionConfig) *Session {
	if cfg.SensorID == "" {
		cfg.SensorID = "tof0"
	}
	return &Session{
		id:         uuid.NewString(),
		sensorID:   cfg.SensorID,
		driver:     cfg.Driver,
		programmer: cfg.Programmer,
		streamer:   cfg.Streamer,
		params:     newParameterSet(),
		stats:      NewCaptureStats(),
		rawPool: frames.NewPool(frames.StageRawUnprocessed, func() frames.Frame {
			return &frames.RawFrame{}
		}),
		processedPool: frames.NewPool(frames.StageRawProcessed, func() frames.Frame {
			return &frames.ProcessedFrame{}
		}),
		depthPool: frames.NewPool(frames.StageDepth, func() frames.Frame {
			return &frames.DepthFrame{}
		}),
		cloudPool: frames.NewPool(frames.StagePointCloud, func() frames.Frame {
			return &frames.PointCloudFrame{}
		}),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// SensorID returns the sensor identifier the session was configured with.
func (s *Session) SensorID() string { return s.sensorID }

// Stats returns the session's capture counters.
func (s *Session) Stats() *CaptureStats { return s.stats }

// Running reports whether the session has been started and not yet stopped.
func (s *Session) Running() bool { return s.running.Load() }

// ThreadActive reports whether the capture goroutine is currently live.
func (s *Session) ThreadActive() bool { return s.threadActive.Load() }

// RegisterCallback installs cb for the stage. Registration is not
// synchronised against a running capture loop; register all callbacks
// before Start.
func (s *Session) RegisterCallback(stage frames.Stage, cb Callback) error {
	return s.callbacks.register(s.id, stage, cb)
}

// ClearCallbacks empties every callback slot and the subscription mask.
func (s *Session) ClearCallbacks() {
	s.callbacks.clearAll()
}

// AnyCallbackRegistered reports whether at least one stage is subscribed.
func (s *Session) AnyCallbackRegistered() bool {
	return s.callbacks.anySubscribed()
}

// AddParameters registers the batch of parameters. The whole batch is
// rejected on any name collision; no partial insert occurs.
func (s *Session) AddParameters(params ...Parameter) error {
	return s.params.add(params...)
}

// Parameter returns the parameter registered under name, if any.
func (s *Session) Parameter(name string) (Parameter, bool) {
	return s.params.get(name)
}

// ParameterNames returns the registered parameter names in sorted order.
func (s *Session) ParameterNames() []string {
	return s.params.names()
}

// Start validates preconditions, starts hardware acquisition and launches
// the capture goroutine. The session state is unchanged on failure. A
// restart after Stop first joins the previous capture goroutine, so the
// old loop can never observe the new running flag or race hardware
// acquisition with its successor.
func (s *Session) Start() error {
	if s.driver == nil {
		return ErrNoDriver
	}
	if !s.callbacks.anySubscribed() {
		monitoring.Logf("session %s: register a callback before starting capture", s.id)
		return ErrNoCallback
	}
	if s.running.Load() {
		return ErrAlreadyRunning
	}
	// After Stop the previous goroutine may still be finishing its last
	// iteration; running is already false, so this join is bounded.
	if s.done != nil {
		<-s.done
	}
	if err := s.driver.Start(); err != nil {
		return fmt.Errorf("capture: driver start: %w", err)
	}

	s.running.Store(true)
	done := make(chan struct{})
	s.done = done
	go s.captureThread(done)
	return nil
}

// Stop signals the capture loop to exit before its next iteration and
// returns immediately. It does not wait for the in-flight iteration.
func (s *Session) Stop() {
	s.running.Store(false)
}

// Wait blocks until the capture goroutine has finished, but only when one
// is currently active. Calling Wait before any Start, or after the
// goroutine has already exited, returns immediately.
func (s *Session) Wait() {
	if s.threadActive.Load() {
		<-s.done
	}
}

// Reset stops capture and resets the device through the programmer. On
// success the programmer and streamer are released and the session must be
// reconfigured via Configure before the next Start; on failure both are
// retained so the caller can retry.
func (s *Session) Reset() error {
	s.Stop()

	if s.programmer == nil {
		return fmt.Errorf("%w: no programmer configured for session %s", ErrResetFailed, s.id)
	}
	if err := s.programmer.Reset(); err != nil {
		monitoring.Logf("session %s: failed to reset device: %v", s.id, err)
		return fmt.Errorf("%w: %v", ErrResetFailed, err)
	}

	if s.streamer != nil {
		if err := s.streamer.Close(); err != nil {
			monitoring.Logf("session %s: streamer close: %v", s.id, err)
		}
	}
	s.programmer = nil
	s.streamer = nil
	return nil
}

// Configure installs new programmer and streamer capabilities after a
// successful Reset.
func (s *Session) Configure(p Programmer, st Streamer) {
	s.programmer = p
	s.streamer = st
}

// Close stops capture, joins the capture goroutine and releases all pooled
// buffers and registered parameters. The session must not be used after
// Close.
func (s *Session) Close() error {
	s.Stop()
	s.Wait()

	s.rawPool.Clear()
	s.processedPool.Clear()
	s.depthPool.Clear()
	s.cloudPool.Clear()
	s.params.clear()
	return nil
}

// captureThread marks the loop live for Wait, runs it and closes done on
// exit. The channel is passed in rather than read from the session so a
// goroutine from an earlier Start can never close its successor's channel.
func (s *Session) captureThread(done chan struct{}) {
	s.threadActive.Store(true)
	s.captureLoop()
	s.threadActive.Store(false)
	close(done)
}

// captureLoop runs stage iterations until Stop, then performs the hardware
// stop exactly once.
func (s *Session) captureLoop() {
	for s.running.Load() {
		s.captureOnce()
	}
	if err := s.driver.Stop(); err != nil {
		monitoring.Logf("session %s: driver stop: %v", s.id, err)
	}
}

// captureOnce executes one pipeline iteration. Stages run strictly in
// order raw→processed→depth→point-cloud; a failed external operation
// abandons the iteration, and each delivered stage clears its pending bit
// so the chain short-circuits once no deeper stage has an unmet
// subscriber.
func (s *Session) captureOnce() {
	pending := s.callbacks.snapshot()

	// Fast path: nothing subscribed, or only the unprocessed stage. One
	// pooled raw capture, no conversion work.
	if pending == 0 || pending == frames.StageRawUnprocessed.Bit() {
		f := s.rawPool.Get().(*frames.RawFrame)
		defer s.rawPool.Put(f)

		if err := s.driver.CaptureRaw(f); err != nil {
			s.stats.AddCaptureFailure()
			return
		}
		s.stamp(&f.Header)
		s.stats.AddFrame()
		s.deliver(&pending, frames.StageRawUnprocessed, f)
		return
	}

	// Full path. The raw frame is a scratch input to processing, not a
	// delivered artifact, so it is allocated fresh rather than pooled.
	raw := &frames.RawFrame{}
	if err := s.driver.CaptureRaw(raw); err != nil {
		s.stats.AddCaptureFailure()
		return
	}
	s.stamp(&raw.Header)
	s.stats.AddFrame()

	if !s.deliver(&pending, frames.StageRawUnprocessed, raw) {
		return
	}

	processed := s.processedPool.Get().(*frames.ProcessedFrame)
	defer s.processedPool.Put(processed)
	if err := s.driver.ProcessRaw(raw, processed); err != nil {
		s.stats.AddAbandoned(frames.StageRawProcessed)
		return
	}
	processed.Header = raw.Header

	if !s.deliver(&pending, frames.StageRawProcessed, processed) {
		return
	}

	depth := s.depthPool.Get().(*frames.DepthFrame)
	defer s.depthPool.Put(depth)
	if err := s.driver.ToDepth(processed, depth); err != nil {
		s.stats.AddAbandoned(frames.StageDepth)
		return
	}
	depth.Header = processed.Header

	if !s.deliver(&pending, frames.StageDepth, depth) {
		return
	}

	cloud := s.cloudPool.Get().(*frames.PointCloudFrame)
	defer s.cloudPool.Put(cloud)
	thetaMax, err := s.driver.FieldOfView()
	if err != nil {
		monitoring.Logf("session %s: could not get field of view: %v", s.id, err)
		s.stats.AddAbandoned(frames.StagePointCloud)
		return
	}
	if err := s.projector.Project(depth, thetaMax, cloud); err != nil {
		monitoring.Logf("session %s: point cloud projection: %v", s.id, err)
		s.stats.AddAbandoned(frames.StagePointCloud)
		return
	}

	// Final stage; the continuation result has nothing deeper to gate.
	s.deliver(&pending, frames.StagePointCloud, cloud)
}

// deliver invokes the stage's callback when it is still pending and
// subscribed, clears the stage's bit, and reports whether any deeper stage
// still has an unmet subscriber.
func (s *Session) deliver(pending *frames.StageMask, stage frames.Stage, f frames.Frame) bool {
	fired, more := s.callbacks.invoke(s, pending, stage, f)
	if fired {
		s.stats.AddDelivered(stage)
	}
	return more
}

// stamp assigns the next frame identity for this session.
func (s *Session) stamp(h *frames.Header) {
	s.frameSeq++
	h.Seq = s.frameSeq
	h.ID = fmt.Sprintf("%s-frame-%d", s.sensorID, s.frameSeq)
	h.Timestamp = time.Now()
}
