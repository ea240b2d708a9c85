package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/tofworks/aperture/internal/frames"
)

// ErrNoFieldOfView is returned when the sensor cannot supply a usable
// field-of-view half-angle (missing or zero).
var ErrNoFieldOfView = errors.New("projection: no field of view")

// ErrEmptyDepthFrame is returned when the source depth frame has no pixels.
var ErrEmptyDepthFrame = errors.New("projection: empty depth frame")

// Projector converts depth+amplitude frames into XYZ-intensity point clouds.
// The zero value is ready to use.
type Projector struct{}

// Project fills dst with one IntensityPoint per pixel of src, row-major,
// using a spherical projection with field-of-view half-angle thetaMax
// (radians). dst inherits src's header and is resized to Width*Height
// points in place.
//
// Pixels on the centre column (x == w/2) have no defined azimuth under the
// raw atan quotient; Atan2 resolves them to ±π/2 by the sign of the row
// offset, and the exact centre pixel to phi = 0.
func (Projector) Project(src *frames.DepthFrame, thetaMax float64, dst *frames.PointCloudFrame) error {
	if src == nil || src.Width <= 0 || src.Height <= 0 {
		return ErrEmptyDepthFrame
	}
	if thetaMax == 0 || math.IsNaN(thetaMax) {
		return ErrNoFieldOfView
	}

	w, h := src.Width, src.Height
	n := w * h
	if len(src.Depth) < n || len(src.Amplitude) < n {
		return fmt.Errorf("projection: depth frame payload %dx%d short: depth=%d amplitude=%d",
			w, h, len(src.Depth), len(src.Amplitude))
	}

	dst.Header = src.Header
	dst.Resize(n)

	scaleMax := math.Sqrt(float64(w*w)/4 + float64(h*h)/4)
	focalLength := scaleMax / math.Tan(thetaMax)

	index := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x1 := float64(x - w/2)
			y1 := float64(y - h/2)

			phi := math.Atan2(y1, x1)
			theta := math.Atan(math.Hypot(x1, y1) / focalLength)

			r := float64(src.Depth[index])
			sinTheta, cosTheta := math.Sincos(theta)

			p := &dst.Points[index]
			p.X = float32(r * sinTheta * math.Cos(phi))
			p.Y = float32(r * sinTheta * math.Sin(phi))
			p.Z = float32(r * cosTheta)
			p.Intensity = src.Amplitude[index]
			index++
		}
	}

	return nil
}
