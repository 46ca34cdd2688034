package mjpegcam

import (
	"bytes"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/mjpegcam/driver"
	"github.com/lanikai/mjpegcam/driver/drivertest"
)

func TestCaptureAndRelease(t *testing.T) {
	d := drivertest.NewSized(1234)
	cam := New(d)

	frame, err := cam.Capture()
	require.NoError(t, err)
	assert.Equal(t, 1234, frame.Size())
	assert.Len(t, frame.Bytes(), 1234)
	assert.Equal(t, 1, d.Outstanding())

	frame.Release()
	assert.Equal(t, 0, d.Outstanding())
	assert.Nil(t, frame.Bytes())

	// Only the first release reaches the driver.
	frame.Release()
	assert.Equal(t, 1, d.Released())
}

func TestCaptureExhausted(t *testing.T) {
	d := drivertest.NewSized()
	cam := New(d)

	frame, err := cam.Capture()
	assert.Nil(t, frame)
	assert.Equal(t, driver.ErrNoBuffer, pkgerrors.Cause(err))
	assert.Equal(t, 0, d.Acquired())
}

// Returns (nil, nil) from Acquire, which a careless driver might do.
type nilBufferDriver struct {
	*drivertest.Driver
}

func (nilBufferDriver) Acquire() (driver.Buffer, error) {
	return nil, nil
}

func TestCaptureNilBuffer(t *testing.T) {
	cam := New(nilBufferDriver{drivertest.NewSized(1)})

	frame, err := cam.Capture()
	assert.Nil(t, frame)
	assert.Equal(t, driver.ErrNoBuffer, pkgerrors.Cause(err))
}

func TestFrameWriteTimeout(t *testing.T) {
	d := drivertest.New([]byte("not really a jpeg"))
	cam := New(d)

	frame, err := cam.Capture()
	require.NoError(t, err)
	defer frame.Release()

	var out bytes.Buffer
	assert.NoError(t, frame.WriteTimeout(&out, time.Second))
	assert.Equal(t, "not really a jpeg", out.String())
	assert.False(t, frame.IsJPEG())
}

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestFrameReleasedAfterFailedWrite(t *testing.T) {
	d := drivertest.NewSized(10)
	cam := New(d)

	frame, err := cam.Capture()
	require.NoError(t, err)

	assert.Error(t, frame.WriteTimeout(brokenWriter{}, time.Second))
	frame.Release()

	assert.Equal(t, 1, d.Acquired())
	assert.Equal(t, 1, d.Released())
}

func TestFrameWriterTo(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0x01, 0x02, 0xff, 0xd9}
	cam := New(drivertest.New(jpeg))

	frame, err := cam.Capture()
	require.NoError(t, err)
	defer frame.Release()

	var out bytes.Buffer
	n, err := frame.WriteTo(&out)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(jpeg)), n)
	assert.Equal(t, jpeg, out.Bytes())
	assert.True(t, frame.IsJPEG())
}

func TestBeginEnd(t *testing.T) {
	d := drivertest.NewSized(1)
	cam := New(d)

	cfg := DefaultConfig()
	cfg.Resolution = ResolutionSVGA
	cfg.BufferCount = 3
	require.NoError(t, cam.Begin(cfg))

	assert.Equal(t, driver.Config{
		Device:      "/dev/video0",
		FrameSize:   driver.FrameSizeSVGA,
		JPEGQuality: 12,
		BufferCount: 3,
	}, d.Config())

	assert.NoError(t, cam.End())
	assert.Error(t, cam.End())
}

func TestBeginFailure(t *testing.T) {
	d := drivertest.NewSized(1)
	d.InitErr = errors.New("no such device")

	err := New(d).Begin(DefaultConfig())
	assert.EqualError(t, err, "Init /dev/video0: no such device")
}
