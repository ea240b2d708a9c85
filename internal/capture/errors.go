package capture

import "errors"

var (
	// ErrNoCallback is returned by Start when no stage has a registered
	// callback. There is nothing to deliver, so the loop never launches.
	ErrNoCallback = errors.New("capture: no callback registered")

	// ErrAlreadyRunning is returned by Start when the session has been
	// started and not yet stopped. Starting again after Stop is allowed;
	// Start joins the previous capture goroutine first.
	ErrAlreadyRunning = errors.New("capture: session already running")

	// ErrNoDriver is returned by Start when the session was built without
	// a driver capability.
	ErrNoDriver = errors.New("capture: no driver configured")

	// ErrInvalidStage is returned when a callback registration names a
	// stage outside the pipeline.
	ErrInvalidStage = errors.New("capture: invalid stage")

	// ErrDuplicateParameter is returned by AddParameters when any name in
	// the batch collides with an existing parameter or repeats within the
	// batch. The whole batch is rejected; no partial insert occurs.
	ErrDuplicateParameter = errors.New("capture: duplicate parameter")

	// ErrResetFailed is returned by Reset when the device programmer
	// cannot reset the hardware. The programmer and streamer are retained
	// so the caller can retry.
	ErrResetFailed = errors.New("capture: device reset failed")
)
