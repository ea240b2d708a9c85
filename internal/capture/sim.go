package capture

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/tofworks/aperture/internal/frames"
)

// SimDriver implements Driver with deterministic synthetic acquisitions.
// It provides fine-grained control over per-capability failures, pacing and
// call counts, for tests and for the demo binary.
//
// Raw frames encode one little-endian (phase, amplitude) uint16 pair per
// pixel. Phase carries the configured depth in millimetres; amplitude is
// the pixel index plus one, so row-major ordering is observable end to end.
type SimDriver struct {
	mu sync.Mutex

	width, height int
	fov           float64 // field-of-view half-angle, radians
	depthValue    float32 // metres, constant across the frame
	frameDelay    time.Duration

	startErr, captureErr, processErr, depthErr, fovErr error

	counts SimCounts
}

// SimCounts records how many times each capability was invoked.
type SimCounts struct {
	Start, Stop, Capture, Process, Depth, FOV int
}

// NewSimDriver creates a simulated driver for a w×h sensor with a 45°
// half-angle field of view and a constant 1m scene depth.
func NewSimDriver(w, h int) *SimDriver {
	return &SimDriver{
		width:      w,
		height:     h,
		fov:        0.785398163397448, // π/4
		depthValue: 1.0,
	}
}

// SetFieldOfView sets the half-angle (radians) reported by FieldOfView.
func (d *SimDriver) SetFieldOfView(rad float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fov = rad
}

// SetDepthValue sets the constant scene depth in metres.
func (d *SimDriver) SetDepthValue(m float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depthValue = m
}

// SetFrameDelay adds pacing to each raw capture.
func (d *SimDriver) SetFrameDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frameDelay = delay
}

// FailStart makes Start return err until cleared with nil.
func (d *SimDriver) FailStart(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.startErr = err
}

// FailCapture makes CaptureRaw return err until cleared with nil.
func (d *SimDriver) FailCapture(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.captureErr = err
}

// FailProcess makes ProcessRaw return err until cleared with nil.
func (d *SimDriver) FailProcess(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.processErr = err
}

// FailDepth makes ToDepth return err until cleared with nil.
func (d *SimDriver) FailDepth(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depthErr = err
}

// FailFieldOfView makes FieldOfView return err until cleared with nil.
func (d *SimDriver) FailFieldOfView(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fovErr = err
}

// Counts returns a copy of the per-capability call counters.
func (d *SimDriver) Counts() SimCounts {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts
}

// Start implements Driver.
func (d *SimDriver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts.Start++
	return d.startErr
}

// Stop implements Driver.
func (d *SimDriver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts.Stop++
	return nil
}

// CaptureRaw implements Driver. The output is w*h little-endian
// (phase, amplitude) pairs.
func (d *SimDriver) CaptureRaw(out *frames.RawFrame) error {
	d.mu.Lock()
	d.counts.Capture++
	err := d.captureErr
	w, h := d.width, d.height
	depthMM := uint16(d.depthValue * 1000)
	delay := d.frameDelay
	d.mu.Unlock()

	if err != nil {
		return err
	}
	if delay > 0 {
		time.Sleep(delay)
	}

	n := w * h * 4
	if cap(out.Data) < n {
		out.Data = make([]byte, n)
	} else {
		out.Data = out.Data[:n]
	}
	for i := 0; i < w*h; i++ {
		binary.LittleEndian.PutUint16(out.Data[i*4:], depthMM)
		binary.LittleEndian.PutUint16(out.Data[i*4+2:], uint16(i+1))
	}
	return nil
}

// ProcessRaw implements Driver: it splits raw sample pairs into phase and
// amplitude channels.
func (d *SimDriver) ProcessRaw(in *frames.RawFrame, out *frames.ProcessedFrame) error {
	d.mu.Lock()
	d.counts.Process++
	err := d.processErr
	d.mu.Unlock()
	if err != nil {
		return err
	}

	n := len(in.Data) / 4
	if cap(out.Phase) < n {
		out.Phase = make([]uint16, n)
	} else {
		out.Phase = out.Phase[:n]
	}
	if cap(out.Amplitude) < n {
		out.Amplitude = make([]uint16, n)
	} else {
		out.Amplitude = out.Amplitude[:n]
	}
	for i := 0; i < n; i++ {
		out.Phase[i] = binary.LittleEndian.Uint16(in.Data[i*4:])
		out.Amplitude[i] = binary.LittleEndian.Uint16(in.Data[i*4+2:])
	}
	return nil
}

// ToDepth implements Driver: phase millimetres become metres.
func (d *SimDriver) ToDepth(in *frames.ProcessedFrame, out *frames.DepthFrame) error {
	d.mu.Lock()
	d.counts.Depth++
	err := d.depthErr
	w, h := d.width, d.height
	d.mu.Unlock()
	if err != nil {
		return err
	}

	out.Resize(w, h)
	for i := 0; i < len(in.Phase) && i < w*h; i++ {
		out.Depth[i] = float32(in.Phase[i]) / 1000
		out.Amplitude[i] = float32(in.Amplitude[i])
	}
	return nil
}

// FieldOfView implements Driver.
func (d *SimDriver) FieldOfView() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts.FOV++
	if d.fovErr != nil {
		return 0, d.fovErr
	}
	return d.fov, nil
}

// SimProgrammer implements Programmer with an injectable reset failure.
type SimProgrammer struct {
	mu         sync.Mutex
	resetErr   error
	resetCalls int
}

// FailReset makes Reset return err until cleared with nil.
func (p *SimProgrammer) FailReset(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetErr = err
}

// ResetCalls returns how many times Reset has been invoked.
func (p *SimProgrammer) ResetCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resetCalls
}

// Reset implements Programmer.
func (p *SimProgrammer) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetCalls++
	return p.resetErr
}

// SimStreamer implements Streamer and records whether it was closed.
type SimStreamer struct {
	mu     sync.Mutex
	closed bool
}

// Closed reports whether Close has been called.
func (st *SimStreamer) Closed() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.closed
}

// Close implements Streamer.
func (st *SimStreamer) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.closed = true
	return nil
}
