package mjpegcam

import (
	"bytes"
	"io"
	"time"

	"github.com/lanikai/mjpegcam/driver"
	"github.com/lanikai/mjpegcam/internal/mjpeg"
)

/*
A Frame owns one hardware frame buffer. The buffer goes back to the driver
when the Frame is released, and not before; until then the bytes may be read
without copying.

Example usage:

	frame, err := cam.Capture()
	if err != nil {
		return err
	}
	defer frame.Release()
	err = frame.WriteTimeout(conn, 5*time.Second)

Release is safe to call more than once; only the first call reaches the driver.
*/
type Frame struct {
	buf     driver.Buffer
	data    []byte
	release func(driver.Buffer)
}

func newFrame(buf driver.Buffer, release func(driver.Buffer)) *Frame {
	return &Frame{
		buf:     buf,
		data:    buf.Bytes(),
		release: release,
	}
}

// Size returns the frame length in bytes.
func (f *Frame) Size() int {
	return len(f.data)
}

// Bytes returns the frame contents. The slice aliases the hardware buffer and
// must not be used after Release.
func (f *Frame) Bytes() []byte {
	return f.data
}

// IsJPEG reports whether the frame starts with a JPEG start-of-image marker.
func (f *Frame) IsJPEG() bool {
	return bytes.HasPrefix(f.data, []byte{0xff, 0xd8})
}

// WriteTimeout writes the whole frame to w, failing with mjpeg.ErrTimeout if
// that takes longer than timeout. On failure part of the frame may already have
// been written.
func (f *Frame) WriteTimeout(w io.Writer, timeout time.Duration) error {
	return mjpeg.WriteTimeout(w, f.data, timeout)
}

// WriteTo implements io.WriterTo, with no time limit.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.data)
	return int64(n), err
}

// Release hands the buffer back to the driver.
func (f *Frame) Release() {
	if f.release == nil {
		return
	}
	release := f.release
	f.release = nil
	f.data = nil
	release(f.buf)
	f.buf = nil
}
