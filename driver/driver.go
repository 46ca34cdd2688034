// Package driver defines the contract between mjpegcam and a hardware capture
// source: a pool of frame buffers that can be acquired and released, plus a
// sensor accepting parameter changes.
//
// Implementations are not required to be safe for concurrent use. Callers that
// acquire frames from more than one goroutine must serialize Acquire and
// Release themselves.
package driver

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrNoBuffer is returned by Acquire when no frame buffer is available.
	ErrNoBuffer = errors.New("No frame buffer available")

	// ErrNotInitialized is returned when a driver is used before Init.
	ErrNotInitialized = errors.New("Driver not initialized")
)

// Status is a driver call result. Zero means success.
type Status int

const (
	StatusOK          Status = 0
	StatusFailed      Status = -1
	StatusUnsupported Status = -2
	StatusBusy        Status = -3
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusUnsupported:
		return "unsupported"
	case StatusBusy:
		return "busy"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Buffer is a frame buffer checked out of a Driver's pool. Its bytes are only
// valid until the buffer is handed back through Driver.Release.
type Buffer interface {
	Bytes() []byte
}

// Driver is a hardware capture source.
type Driver interface {
	// Init configures the hardware and starts capture.
	Init(cfg Config) error

	// Deinit stops capture and frees the buffer pool.
	Deinit() error

	// Sensor returns the attached sensor, or nil if there is none.
	Sensor() Sensor

	// Acquire checks out the next filled frame buffer. Returns ErrNoBuffer
	// (possibly wrapped) when none is available.
	Acquire() (Buffer, error)

	// Release returns a buffer obtained from Acquire to the pool.
	Release(buf Buffer)
}

// Sensor accepts parameter changes. Each call maps to exactly one hardware
// operation.
type Sensor interface {
	// FrameSize reports the currently active frame size.
	FrameSize() FrameSize

	SetFrameSize(fs FrameSize) Status

	SetControl(id ControlID, value int) Status
}

// Config holds the settings applied by Driver.Init.
type Config struct {
	// Device path, e.g. "/dev/video0". Ignored by drivers without one.
	Device string

	FrameSize FrameSize

	// JPEG quality, 0 (best) to 63 (worst).
	JPEGQuality int

	// Number of frame buffers in the pool.
	BufferCount int
}
