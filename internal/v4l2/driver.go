// +build linux

package v4l2

import (
	errors "golang.org/x/xerrors"

	"github.com/lanikai/mjpegcam/driver"
)

// Driver is a driver.Driver for a V4L2 capture device producing Motion JPEG,
// such as a UVC webcam. Acquire dequeues a filled kernel buffer and Release
// queues it again, so frames are never copied.
type Driver struct {
	dev *device
	cfg driver.Config

	// Frame size currently applied to the device.
	frameSize driver.FrameSize

	// Buffers checked out by Acquire.
	outstanding map[int]bool

	// Bumped whenever the buffers are remapped, so that stale buffers released
	// afterwards are ignored.
	generation int
}

type buffer struct {
	index      int
	generation int
	data       []byte
}

func (b *buffer) Bytes() []byte {
	return b.data
}

func New() *Driver {
	return &Driver{
		frameSize: driver.FrameSizeInvalid,
	}
}

// Init opens the device, selects MJPEG at the configured frame size and starts
// streaming.
func (d *Driver) Init(cfg driver.Config) error {
	if d.dev != nil {
		return errors.Errorf("%s already open", d.cfg.Device)
	}
	if !cfg.FrameSize.Valid() {
		return errors.Errorf("invalid frame size %d", int(cfg.FrameSize))
	}

	dev, err := openDevice(cfg.Device, cfg.BufferCount)
	if err != nil {
		return err
	}
	if err := dev.checkCapabilities(); err != nil {
		dev.Close()
		return err
	}

	d.dev = dev
	d.cfg = cfg
	d.outstanding = make(map[int]bool)
	if err := d.configure(cfg.FrameSize); err != nil {
		d.dev = nil
		dev.Close()
		return err
	}

	if err := dev.setControl(V4L2_CID_JPEG_COMPRESSION_QUALITY, jpegQuality(cfg.JPEGQuality)); err != nil {
		log.Warn("%s: cannot set JPEG quality: %v", cfg.Device, err)
	}

	log.Info("Opened %s: %s, %d buffers", cfg.Device, d.frameSize, len(dev.buffers))
	return nil
}

// Apply the frame size and start streaming.
func (d *Driver) configure(fs driver.FrameSize) error {
	width, height, err := d.dev.setPixelFormat(fs.Width(), fs.Height(), V4L2_PIX_FMT_MJPEG)
	if err != nil {
		return errors.Errorf("set format %s: %w", fs, err)
	}

	applied, ok := driver.FindFrameSize(width, height)
	if !ok {
		log.Warn("%s: requested %dx%d, got %dx%d", d.cfg.Device, fs.Width(), fs.Height(), width, height)
	} else if applied != fs {
		log.Warn("%s: requested %s, got %s", d.cfg.Device, fs, applied)
	}
	d.frameSize = applied

	if err := d.dev.Start(); err != nil {
		return err
	}
	d.generation++
	return nil
}

func (d *Driver) Deinit() error {
	if d.dev == nil {
		return driver.ErrNotInitialized
	}
	if n := len(d.outstanding); n > 0 {
		log.Warn("%s: closing with %d buffers checked out", d.cfg.Device, n)
	}

	err := d.dev.Close()
	d.dev = nil
	d.outstanding = nil
	d.frameSize = driver.FrameSizeInvalid
	d.generation++
	return err
}

// Sensor returns nil until the device has been opened.
func (d *Driver) Sensor() driver.Sensor {
	if d.dev == nil {
		return nil
	}
	return (*sensor)(d)
}

// Acquire blocks until the device fills a buffer.
func (d *Driver) Acquire() (driver.Buffer, error) {
	if d.dev == nil {
		return nil, driver.ErrNotInitialized
	}
	if len(d.outstanding) >= len(d.dev.buffers) {
		return nil, driver.ErrNoBuffer
	}

	index, n, err := d.dev.dequeue()
	if err != nil {
		return nil, errors.Errorf("dequeue: %w", err)
	}
	if index < 0 || index >= len(d.dev.buffers) || n > len(d.dev.buffers[index]) {
		return nil, errors.Errorf("dequeue: bad buffer %d (%d bytes)", index, n)
	}

	d.outstanding[index] = true
	return &buffer{
		index:      index,
		generation: d.generation,
		data:       d.dev.buffers[index][:n],
	}, nil
}

func (d *Driver) Release(b driver.Buffer) {
	buf, ok := b.(*buffer)
	if !ok {
		panic("v4l2: release of a foreign buffer")
	}
	if d.dev == nil || buf.generation != d.generation {
		// The buffer was unmapped when streaming stopped.
		return
	}
	if !d.outstanding[buf.index] {
		panic("v4l2: release of a buffer that is not checked out")
	}

	delete(d.outstanding, buf.index)
	buf.data = nil
	if err := d.dev.enqueue(buf.index); err != nil {
		log.Error("%s: enqueue buffer %d: %v", d.cfg.Device, buf.index, err)
	}
}

// The sensor view of a Driver.
type sensor Driver

func (s *sensor) FrameSize() driver.FrameSize {
	return s.frameSize
}

// SetFrameSize restarts streaming at the new size. The device cannot change
// format while its buffers are mapped, so this fails with StatusBusy while any
// frame is checked out.
func (s *sensor) SetFrameSize(fs driver.FrameSize) driver.Status {
	d := (*Driver)(s)
	if !fs.Valid() {
		return driver.StatusFailed
	}
	if len(d.outstanding) > 0 {
		return driver.StatusBusy
	}

	prev := d.frameSize
	if err := d.dev.Stop(); err != nil {
		log.Error("%s: %v", d.cfg.Device, err)
		return driver.StatusFailed
	}
	if err := d.configure(fs); err != nil {
		log.Error("%s: %v", d.cfg.Device, err)

		// Try to get streaming again at the previous size.
		d.dev.Stop()
		if prev.Valid() {
			if err := d.configure(prev); err != nil {
				log.Error("%s: cannot restore %s: %v", d.cfg.Device, prev, err)
			}
		}
		return statusOf(errors.Unwrap(err))
	}
	return driver.StatusOK
}

func (s *sensor) SetControl(id driver.ControlID, value int) driver.Status {
	m, ok := controlMap[id]
	if !ok {
		return driver.StatusUnsupported
	}

	v := int32(value)
	if m.value != nil {
		v = m.value(value)
	}
	if err := s.dev.setControl(m.cid, v); err != nil {
		log.Debug("%s: set %s (%08x) = %d: %v", s.cfg.Device, id, m.cid, v, err)
		return statusOf(err)
	}
	return driver.StatusOK
}
