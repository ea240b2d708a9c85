// Package capture owns the acquisition/conversion core of the depth-camera
// driver: the capture session lifecycle (start/stop/wait/reset), the staged
// frame-processing loop with per-stage subscriber short-circuiting, the
// callback subscription table, and the parameter set.
//
// The core talks to hardware only through the Driver, Programmer and
// Streamer capability interfaces; hardware-specific transports live
// elsewhere. SimDriver provides a deterministic in-memory implementation
// for tests and demos.
package capture
