// +build linux

package v4l2

import (
	"golang.org/x/sys/unix"

	"github.com/lanikai/mjpegcam/driver"
)

type controlMapping struct {
	cid uint32

	// Converts the sensor value to the V4L2 control value. Nil passes it
	// through.
	value func(int) int32
}

// Sensor controls with a V4L2 equivalent. Controls missing here are reported
// as unsupported.
var controlMap = map[driver.ControlID]controlMapping{
	driver.ControlAutoGain:       {V4L2_CID_AUTOGAIN, nil},
	driver.ControlAutoExposure:   {V4L2_CID_EXPOSURE_AUTO, exposureMode},
	driver.ControlGain:           {V4L2_CID_GAIN, nil},
	driver.ControlExposure:       {V4L2_CID_EXPOSURE_ABSOLUTE, nil},
	driver.ControlVerticalFlip:   {V4L2_CID_VFLIP, nil},
	driver.ControlHorizontalFlip: {V4L2_CID_HFLIP, nil},
	driver.ControlQuality:        {V4L2_CID_JPEG_COMPRESSION_QUALITY, jpegQuality},
	driver.ControlBrightness:     {V4L2_CID_BRIGHTNESS, nil},
	driver.ControlSaturation:     {V4L2_CID_SATURATION, nil},
	driver.ControlContrast:       {V4L2_CID_CONTRAST, nil},
	driver.ControlSharpness:      {V4L2_CID_SHARPNESS, nil},
}

// UVC cameras generally offer aperture priority as their only automatic mode.
func exposureMode(on int) int32 {
	if on != 0 {
		return V4L2_EXPOSURE_APERTURE_PRIORITY
	}
	return V4L2_EXPOSURE_MANUAL
}

// Maps 0 (best) to 63 (worst) onto the V4L2 scale of 1 (worst) to 100 (best).
func jpegQuality(q int) int32 {
	if q < 0 {
		q = 0
	}
	v := 100 - q*100/63
	if v < 1 {
		v = 1
	}
	return int32(v)
}

func statusOf(err error) driver.Status {
	switch err {
	case nil:
		return driver.StatusOK
	case unix.EINVAL, unix.ENOTTY:
		return driver.StatusUnsupported
	case unix.EBUSY:
		return driver.StatusBusy
	default:
		return driver.StatusFailed
	}
}
