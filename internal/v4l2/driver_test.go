// +build linux

package v4l2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/lanikai/mjpegcam/driver"
)

func TestPixelFormat(t *testing.T) {
	assert.EqualValues(t, 0x47504a4d, V4L2_PIX_FMT_MJPEG)
}

func TestJPEGQuality(t *testing.T) {
	assert.EqualValues(t, 100, jpegQuality(0))
	assert.EqualValues(t, 81, jpegQuality(12))
	assert.EqualValues(t, 1, jpegQuality(63))
	assert.EqualValues(t, 100, jpegQuality(-5))
	assert.EqualValues(t, 1, jpegQuality(99))
}

func TestExposureMode(t *testing.T) {
	assert.Equal(t, V4L2_EXPOSURE_APERTURE_PRIORITY, exposureMode(1))
	assert.Equal(t, V4L2_EXPOSURE_MANUAL, exposureMode(0))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, driver.StatusOK, statusOf(nil))
	assert.Equal(t, driver.StatusUnsupported, statusOf(unix.EINVAL))
	assert.Equal(t, driver.StatusBusy, statusOf(unix.EBUSY))
	assert.Equal(t, driver.StatusFailed, statusOf(unix.EIO))
}

func TestUnmappedControls(t *testing.T) {
	for _, id := range []driver.ControlID{
		driver.ControlGainCeiling,
		driver.ControlLensCorrection,
		driver.ControlBlackPixelCorrection,
		driver.ControlWhitePixelCorrection,
	} {
		_, ok := controlMap[id]
		assert.False(t, ok, id.String())
	}
}

func TestDriverBeforeInit(t *testing.T) {
	d := New()

	assert.Nil(t, d.Sensor())
	assert.Equal(t, driver.ErrNotInitialized, d.Deinit())

	buf, err := d.Acquire()
	assert.Nil(t, buf)
	assert.Equal(t, driver.ErrNotInitialized, err)
}

func TestInitMissingDevice(t *testing.T) {
	d := New()
	err := d.Init(driver.Config{
		Device:      "/dev/does-not-exist",
		FrameSize:   driver.FrameSizeVGA,
		BufferCount: 2,
	})
	assert.Error(t, err)
	assert.Nil(t, d.Sensor())
}

func TestInitInvalidFrameSize(t *testing.T) {
	err := New().Init(driver.Config{
		Device:    "/dev/video0",
		FrameSize: driver.FrameSizeInvalid,
	})
	assert.EqualError(t, err, "invalid frame size -1")
}
