package projection

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tofworks/aperture/internal/frames"
)

// CloudSummary holds aggregate statistics over one point cloud, used by the
// capture statistics logger and by tests.
type CloudSummary struct {
	Points        int
	MeanRange     float64 // mean distance from the sensor origin
	StdDevRange   float64
	MeanIntensity float64
	Centroid      [3]float64
}

// Summarize computes aggregate statistics for a point cloud. An empty cloud
// yields the zero summary.
func Summarize(cloud *frames.PointCloudFrame) CloudSummary {
	if cloud == nil || len(cloud.Points) == 0 {
		return CloudSummary{}
	}

	n := len(cloud.Points)
	ranges := make([]float64, n)
	intensities := make([]float64, n)
	var cx, cy, cz float64

	for i, p := range cloud.Points {
		x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
		ranges[i] = math.Sqrt(x*x + y*y + z*z)
		intensities[i] = float64(p.Intensity)
		cx += x
		cy += y
		cz += z
	}

	mean, std := stat.MeanStdDev(ranges, nil)
	// MeanStdDev returns NaN for a single sample; report zero spread instead.
	if math.IsNaN(std) {
		std = 0
	}

	fn := float64(n)
	return CloudSummary{
		Points:        n,
		MeanRange:     mean,
		StdDevRange:   std,
		MeanIntensity: stat.Mean(intensities, nil),
		Centroid:      [3]float64{cx / fn, cy / fn, cz / fn},
	}
}
