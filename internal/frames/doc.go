// Package frames owns the frame data model for the capture pipeline.
//
// Responsibilities: the pipeline stage enumeration and subscription masks,
// the tagged frame variants produced by each stage (raw, processed, depth,
// point cloud), and the per-stage buffer pool that recycles frame storage
// across capture iterations.
//
// Frames handed to a callback are valid only for the duration of that
// synchronous call; the capture loop reuses the underlying storage on the
// next iteration.
package frames
