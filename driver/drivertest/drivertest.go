// Package drivertest provides an in-memory driver.Driver for tests. It counts
// every hardware call so tests can check buffer conservation and call counts.
package drivertest

import (
	"sync"

	"github.com/lanikai/mjpegcam/driver"
)

// Buffer is a frame buffer handed out by Driver.
type Buffer struct {
	ID   int
	data []byte
}

func (b *Buffer) Bytes() []byte {
	return b.data
}

// Driver is a fake capture source. Frames are served from Frames in order; once
// they run out, Acquire fails with driver.ErrNoBuffer unless Loop is set.
type Driver struct {
	// Frames to serve, in order.
	Frames [][]byte

	// Serve Frames over and over instead of running dry.
	Loop bool

	// Number of buffers in the pool. Acquire fails while all of them are out.
	// Zero means unlimited.
	PoolSize int

	// Sensor to report. Nil simulates a missing sensor.
	FakeSensor *Sensor

	// Error returned from Init, if any.
	InitErr error

	mu          sync.Mutex
	next        int
	outstanding map[*Buffer]bool
	acquired    int
	released    int
	maxInFlight int
	initialized bool
	cfg         driver.Config
}

// New returns a fake driver serving the given frames, with an attached sensor.
func New(frames ...[]byte) *Driver {
	return &Driver{
		Frames:     frames,
		FakeSensor: NewSensor(driver.FrameSizeVGA),
	}
}

// NewSized returns a fake driver serving n frames of the given sizes. Each frame
// is filled with a byte pattern derived from its index.
func NewSized(sizes ...int) *Driver {
	frames := make([][]byte, len(sizes))
	for i, n := range sizes {
		frame := make([]byte, n)
		for j := range frame {
			frame[j] = byte(i + j)
		}
		frames[i] = frame
	}
	return New(frames...)
}

func (d *Driver) Init(cfg driver.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.InitErr != nil {
		return d.InitErr
	}
	d.cfg = cfg
	d.initialized = true
	if d.FakeSensor != nil && cfg.FrameSize.Valid() {
		d.FakeSensor.frameSize = cfg.FrameSize
	}
	return nil
}

func (d *Driver) Deinit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized {
		return driver.ErrNotInitialized
	}
	d.initialized = false
	return nil
}

// Config returns the configuration last passed to Init.
func (d *Driver) Config() driver.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

func (d *Driver) Sensor() driver.Sensor {
	// Avoid returning a typed nil.
	if d.FakeSensor == nil {
		return nil
	}
	return d.FakeSensor
}

func (d *Driver) Acquire() (driver.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.PoolSize > 0 && len(d.outstanding) >= d.PoolSize {
		return nil, driver.ErrNoBuffer
	}
	if d.next >= len(d.Frames) {
		if !d.Loop || len(d.Frames) == 0 {
			return nil, driver.ErrNoBuffer
		}
		d.next = 0
	}

	buf := &Buffer{ID: d.acquired, data: d.Frames[d.next]}
	d.next++
	d.acquired++

	if d.outstanding == nil {
		d.outstanding = make(map[*Buffer]bool)
	}
	d.outstanding[buf] = true
	if len(d.outstanding) > d.maxInFlight {
		d.maxInFlight = len(d.outstanding)
	}
	return buf, nil
}

func (d *Driver) Release(b driver.Buffer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf, ok := b.(*Buffer)
	if !ok || !d.outstanding[buf] {
		panic("drivertest: release of a buffer that is not checked out")
	}
	delete(d.outstanding, buf)
	d.released++
}

// Acquired returns the number of successful Acquire calls.
func (d *Driver) Acquired() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.acquired
}

// Released returns the number of Release calls.
func (d *Driver) Released() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}

// Outstanding returns the number of buffers currently checked out.
func (d *Driver) Outstanding() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.outstanding)
}

// MaxInFlight returns the largest number of buffers that were ever checked out
// at the same time.
func (d *Driver) MaxInFlight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxInFlight
}
