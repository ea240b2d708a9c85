package capture

import "github.com/tofworks/aperture/internal/frames"

// Driver is the set of hardware capabilities the capture core requires.
// Each operation is expected to be bounded; the loop maps a per-iteration
// failure to "abandon this iteration and retry" rather than stopping the
// session.
type Driver interface {
	// Start begins hardware acquisition.
	Start() error
	// Stop ends hardware acquisition. Called once when the capture loop
	// exits.
	Stop() error
	// CaptureRaw fills out with one unprocessed sensor acquisition.
	CaptureRaw(out *frames.RawFrame) error
	// ProcessRaw converts an unprocessed acquisition into processed
	// phase/amplitude samples.
	ProcessRaw(in *frames.RawFrame, out *frames.ProcessedFrame) error
	// ToDepth converts processed samples into a per-pixel depth frame.
	ToDepth(in *frames.ProcessedFrame, out *frames.DepthFrame) error
	// FieldOfView returns the sensor's field-of-view half-angle in
	// radians.
	FieldOfView() (float64, error)
}

// Programmer is the device-control capability used only during Reset.
type Programmer interface {
	Reset() error
}

// Streamer is the data-stream capability held by a session solely so it
// can be released after a successful Reset.
type Streamer interface {
	Close() error
}
