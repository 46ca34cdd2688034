// +build linux

package v4l2

import (
	"unsafe"

	"golang.org/x/sys/unix"
	errors "golang.org/x/xerrors"
)

// A V4L2 character device with a ring of memory-mapped capture buffers.
type device struct {
	// Device path, usually "/dev/video0".
	path string

	// File descriptor of v4l2 device.
	fd int

	// Number of requested kernel driver buffers. The driver may grant more.
	numBuffers int

	// Memory-mapped buffers, indexed like the kernel's.
	buffers [][]byte

	streaming bool
}

func openDevice(path string, numBuffers int) (*device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0666)
	if err != nil {
		return nil, err
	}

	if numBuffers < 1 {
		numBuffers = 1
	}
	return &device{
		path:       path,
		fd:         fd,
		numBuffers: numBuffers,
	}, nil
}

func (dev *device) Close() error {
	if err := dev.Stop(); err != nil {
		unix.Close(dev.fd)
		return err
	}

	return unix.Close(dev.fd)
}

func (dev *device) ioctl(request uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(
			unix.SYS_IOCTL,
			uintptr(dev.fd),
			request,
			uintptr(arg),
		)
		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		default:
			return errno
		}
	}
}

// Check that the device can capture video by streaming I/O.
func (dev *device) checkCapabilities() error {
	var caps v4l2_capability
	if err := dev.ioctl(VIDIOC_QUERYCAP, unsafe.Pointer(&caps)); err != nil {
		return errors.Errorf("query capabilities: %w", err)
	}

	c := caps.capabilities
	if c&V4L2_CAP_DEVICE_CAPS != 0 {
		c = caps.device_caps
	}
	if c&V4L2_CAP_VIDEO_CAPTURE == 0 {
		return errors.Errorf("%s is not a video capture device", dev.path)
	}
	if c&V4L2_CAP_STREAMING == 0 {
		return errors.Errorf("%s does not support streaming I/O", dev.path)
	}
	return nil
}

// Set the capture format. The driver may adjust the dimensions; the ones
// actually applied are returned.
func (dev *device) setPixelFormat(width, height int, format uint32) (int, int, error) {
	f := v4l2_format{
		typ: V4L2_BUF_TYPE_VIDEO_CAPTURE,
	}
	*f.pix() = v4l2_pix_format{
		width:       uint32(width),
		height:      uint32(height),
		pixelformat: format,
		field:       V4L2_FIELD_ANY,
	}
	if err := dev.ioctl(VIDIOC_S_FMT, unsafe.Pointer(&f)); err != nil {
		return 0, 0, err
	}

	pix := f.pix()
	if pix.pixelformat != format {
		return 0, 0, errors.Errorf("%s refused pixel format %08x", dev.path, format)
	}
	return int(pix.width), int(pix.height), nil
}

func (dev *device) setControl(id uint32, value int32) error {
	ctrl := v4l2_control{
		id:    id,
		value: value,
	}
	return dev.ioctl(VIDIOC_S_CTRL, unsafe.Pointer(&ctrl))
}

// Query buffer parameters.
func (dev *device) queryBuffer(n uint32) (length, offset uint32, err error) {
	qb := v4l2_buffer{
		index:  n,
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	if err = dev.ioctl(VIDIOC_QUERYBUF, unsafe.Pointer(&qb)); err != nil {
		return
	}
	return qb.length, qb.offset(), nil
}

// Request n kernel buffers memory-mapped to user-space. Returns the number
// granted.
func (dev *device) requestBuffers(n int) (int, error) {
	rb := v4l2_requestbuffers{
		count:  uint32(n),
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	err := dev.ioctl(VIDIOC_REQBUFS, unsafe.Pointer(&rb))
	return int(rb.count), err
}

func (dev *device) mapMemory() error {
	if dev.buffers != nil {
		panic("v4l2 device: memory already mapped")
	}

	granted, err := dev.requestBuffers(dev.numBuffers)
	if err != nil {
		return errors.Errorf("request buffers: %w", err)
	}
	if granted < 1 {
		return errors.Errorf("%s granted no buffers", dev.path)
	}

	for i := 0; i < granted; i++ {
		length, offset, err := dev.queryBuffer(uint32(i))
		if err != nil {
			return errors.Errorf("query buffer %d: %w", i, err)
		}

		mem, err := unix.Mmap(
			dev.fd,
			int64(offset),
			int(length),
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_SHARED,
		)
		if err != nil {
			return errors.Errorf("map buffer %d: %w", i, err)
		}
		dev.buffers = append(dev.buffers, mem)
	}
	return nil
}

func (dev *device) unmapMemory() error {
	for _, mem := range dev.buffers {
		if err := unix.Munmap(mem); err != nil {
			return err
		}
	}
	dev.buffers = nil

	_, err := dev.requestBuffers(0)
	return err
}

func (dev *device) enqueue(index int) error {
	qbuf := v4l2_buffer{
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
		index:  uint32(index),
	}
	return dev.ioctl(VIDIOC_QBUF, unsafe.Pointer(&qbuf))
}

// Dequeue the next filled buffer. Blocks until one is available.
func (dev *device) dequeue() (index, n int, err error) {
	dqbuf := v4l2_buffer{
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	err = dev.ioctl(VIDIOC_DQBUF, unsafe.Pointer(&dqbuf))
	return int(dqbuf.index), int(dqbuf.bytesused), err
}

func (dev *device) enableStream() error {
	typ := V4L2_BUF_TYPE_VIDEO_CAPTURE
	return dev.ioctl(VIDIOC_STREAMON, unsafe.Pointer(&typ))
}

func (dev *device) disableStream() error {
	// Disable stream (dequeues any outstanding buffers as well)
	typ := V4L2_BUF_TYPE_VIDEO_CAPTURE
	return dev.ioctl(VIDIOC_STREAMOFF, unsafe.Pointer(&typ))
}

// Start video capture.
func (dev *device) Start() error {
	if err := dev.mapMemory(); err != nil {
		dev.unmapMemory()
		return err
	}

	for i := range dev.buffers {
		if err := dev.enqueue(i); err != nil {
			dev.unmapMemory()
			return errors.Errorf("enqueue buffer %d: %w", i, err)
		}
	}

	if err := dev.enableStream(); err != nil {
		dev.unmapMemory()
		return errors.Errorf("stream on: %w", err)
	}
	dev.streaming = true
	return nil
}

// Stop video capture and unmap all buffers.
func (dev *device) Stop() error {
	if !dev.streaming {
		return nil
	}
	if err := dev.disableStream(); err != nil {
		return errors.Errorf("stream off: %w", err)
	}
	dev.streaming = false

	return dev.unmapMemory()
}
