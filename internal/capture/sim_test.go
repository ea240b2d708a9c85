package capture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tofworks/aperture/internal/frames"
)

func TestSimDriverPipelineIsDeterministic(t *testing.T) {
	driver := NewSimDriver(3, 2)
	driver.SetDepthValue(1.25)

	var raw frames.RawFrame
	require.NoError(t, driver.CaptureRaw(&raw))
	assert.Len(t, raw.Data, 3*2*4)

	var processed frames.ProcessedFrame
	require.NoError(t, driver.ProcessRaw(&raw, &processed))
	require.Len(t, processed.Phase, 6)

	var depth frames.DepthFrame
	require.NoError(t, driver.ToDepth(&processed, &depth))
	assert.Equal(t, 3, depth.Width)
	assert.Equal(t, 2, depth.Height)
	for i := 0; i < 6; i++ {
		assert.InDelta(t, 1.25, depth.Depth[i], 1e-6, "pixel %d depth", i)
		// Amplitude carries the row-major pixel index plus one.
		assert.Equal(t, float32(i+1), depth.Amplitude[i], "pixel %d amplitude", i)
	}

	fov, err := driver.FieldOfView()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/4, fov, 1e-9)
}

func TestSimDriverReusesFrameStorage(t *testing.T) {
	driver := NewSimDriver(4, 4)

	var raw frames.RawFrame
	require.NoError(t, driver.CaptureRaw(&raw))
	ptr := &raw.Data[0]
	require.NoError(t, driver.CaptureRaw(&raw))
	assert.Same(t, ptr, &raw.Data[0], "second capture should reuse the buffer")
}
