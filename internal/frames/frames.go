package frames

import (
	"fmt"
	"time"
)

// Stage identifies one step of the capture pipeline. Stages run strictly in
// declaration order within an iteration.
type Stage int

const (
	// StageRawUnprocessed is the sensor acquisition output before any processing.
	StageRawUnprocessed Stage = iota
	// StageRawProcessed is the driver-processed raw frame.
	StageRawProcessed
	// StageDepth is the per-pixel depth+amplitude representation.
	StageDepth
	// StagePointCloud is the projected XYZ-intensity representation.
	StagePointCloud

	// StageCount is the number of pipeline stages.
	StageCount
)

// StageMask is a bitset of pipeline stages.
type StageMask uint32

// Bit returns the mask bit for the stage.
func (s Stage) Bit() StageMask { return 1 << s }

// Valid reports whether s names a real pipeline stage.
func (s Stage) Valid() bool { return s >= 0 && s < StageCount }

func (s Stage) String() string {
	switch s {
	case StageRawUnprocessed:
		return "raw_unprocessed"
	case StageRawProcessed:
		return "raw_processed"
	case StageDepth:
		return "depth"
	case StagePointCloud:
		return "point_cloud"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Has reports whether the stage's bit is present in the mask.
func (m StageMask) Has(s Stage) bool { return m&s.Bit() != 0 }

// Header carries the identity shared by every frame representation derived
// from one sensor acquisition.
type Header struct {
	ID        string    // per-session frame identifier, e.g. "tof0-frame-42"
	Seq       uint64    // monotonic acquisition sequence number
	Timestamp time.Time // acquisition wall time
}

// Head returns the header; it makes every frame variant satisfy Frame.
func (h *Header) Head() *Header { return h }

// Frame is the capability shared by all stage outputs. Concrete variants are
// tagged by Kind so pools can test reusability with a plain comparison.
type Frame interface {
	Kind() Stage
	Head() *Header
}

// RawFrame holds unprocessed sensor samples exactly as acquired.
type RawFrame struct {
	Header
	Data []byte
}

// Kind returns StageRawUnprocessed.
func (f *RawFrame) Kind() Stage { return StageRawUnprocessed }

// ProcessedFrame holds driver-processed samples split into per-pixel phase
// and amplitude channels.
type ProcessedFrame struct {
	Header
	Phase     []uint16
	Amplitude []uint16
}

// Kind returns StageRawProcessed.
func (f *ProcessedFrame) Kind() Stage { return StageRawProcessed }

// DepthFrame holds per-pixel depth and amplitude, row-major, len = Width*Height.
type DepthFrame struct {
	Header
	Width     int
	Height    int
	Depth     []float32
	Amplitude []float32
}

// Kind returns StageDepth.
func (f *DepthFrame) Kind() Stage { return StageDepth }

// Resize grows or reslices the depth and amplitude storage to w×h pixels,
// reusing existing capacity where possible.
func (f *DepthFrame) Resize(w, h int) {
	f.Width, f.Height = w, h
	n := w * h
	if cap(f.Depth) < n {
		f.Depth = make([]float32, n)
	} else {
		f.Depth = f.Depth[:n]
	}
	if cap(f.Amplitude) < n {
		f.Amplitude = make([]float32, n)
	} else {
		f.Amplitude = f.Amplitude[:n]
	}
}

// IntensityPoint is one projected pixel: a 3D coordinate plus intensity.
type IntensityPoint struct {
	X, Y, Z   float32
	Intensity float32
}

// PointCloudFrame holds one IntensityPoint per source pixel in the same
// row-major order as the depth frame it was projected from.
type PointCloudFrame struct {
	Header
	Points []IntensityPoint
}

// Kind returns StagePointCloud.
func (f *PointCloudFrame) Kind() Stage { return StagePointCloud }

// Resize grows or reslices the point storage to n entries.
func (f *PointCloudFrame) Resize(n int) {
	if cap(f.Points) < n {
		f.Points = make([]IntensityPoint, n)
	} else {
		f.Points = f.Points[:n]
	}
}
